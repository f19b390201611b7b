package main

import (
	"fmt"
	"os"

	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
	"github.com/finleysg/bhmc-admin-sub001/internal/usecase"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
)

func eventIDFlagDef() cli.Flag {
	return &cli.Int64Flag{
		Name:     eventIDFlag,
		Aliases:  []string{"e"},
		Usage:    "Local event id",
		Required: true,
	}
}

func eventCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Link a local event to its Golf Genius event and rebuild rounds and tournaments",
		Flags: []cli.Flag{eventIDFlagDef()},
		Action: func(cCtx *cli.Context) error {
			out, err := rt.app.EventSync.SyncEvent(cCtx.Context, cCtx.Int64(eventIDFlag))
			if err != nil {
				return err
			}
			return writeJSON(os.Stdout, out)
		},
	}
}

func exportCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export registered players to the Golf Genius event roster",
		Flags: []cli.Flag{eventIDFlagDef()},
		Action: func(cCtx *cli.Context) error {
			eventID := cCtx.Int64(eventIDFlag)
			stream, err := rt.app.RosterExport.StartExport(cCtx.Context, eventID)
			if err != nil {
				return err
			}
			if err := streamProgress(cCtx.Context, os.Stdout, stream); err != nil {
				return err
			}
			outcome, err := rt.app.ExportOutcome(eventID)
			if err != nil {
				return err
			}
			return finishOutcome(outcome.Status, outcome.Result, outcome.Error)
		},
	}
}

func membersCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "members",
		Usage: "Store Golf Genius member card ids on club members matched by GHIN",
		Action: func(cCtx *cli.Context) error {
			out, err := rt.app.MemberSync.SyncMembers(cCtx.Context, sseReporter(os.Stdout))
			if err != nil {
				return err
			}
			return writeJSON(os.Stdout, out)
		},
	}
}

func playerCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "Link one player to the Golf Genius master roster by email",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: playerIDFlag, Aliases: []string{"p"}, Usage: "Local player id", Required: true},
		},
		Action: func(cCtx *cli.Context) error {
			out, err := rt.app.MemberSync.SyncPlayer(cCtx.Context, cCtx.Int64(playerIDFlag))
			if err != nil {
				return err
			}
			return writeJSON(os.Stdout, out)
		},
	}
}

func scoresCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "scores",
		Usage: "Import hole by hole scores from Golf Genius tee sheets",
		Flags: []cli.Flag{eventIDFlagDef()},
		Action: func(cCtx *cli.Context) error {
			eventID := cCtx.Int64(eventIDFlag)
			stream, err := rt.app.ScoresImport.StartImport(cCtx.Context, eventID)
			if err != nil {
				return err
			}
			if err := streamProgress(cCtx.Context, os.Stdout, stream); err != nil {
				return err
			}
			outcome, err := rt.app.ScoresOutcome(eventID)
			if err != nil {
				return err
			}
			return finishOutcome(outcome.Status, outcome.Result, outcome.Error)
		},
	}
}

func resultsCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "results",
		Usage: "Import tournament results and payouts from Golf Genius",
		Flags: []cli.Flag{
			eventIDFlagDef(),
			&cli.StringFlag{
				Name:  formatsFlag,
				Usage: "Comma separated formats to import (points, skins, user_scored or proxy, stroke, team, quota); all when empty",
			},
		},
		Action: func(cCtx *cli.Context) error {
			formats, err := usecase.ParseFormats(cCtx.String(formatsFlag))
			if err != nil {
				return err
			}
			eventID := cCtx.Int64(eventIDFlag)
			stream, err := rt.app.ResultsImport.StartImport(cCtx.Context, eventID, formats...)
			if err != nil {
				return err
			}
			if err := streamProgress(cCtx.Context, os.Stdout, stream); err != nil {
				return err
			}
			outcome, err := rt.app.ResultsOutcome(eventID)
			if err != nil {
				return err
			}
			return finishOutcome(outcome.Status, outcome.Result, outcome.Error)
		},
	}
}

func scheduleCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Run member sync on MEMBER_SYNC_SCHEDULE until interrupted",
		Action: func(cCtx *cli.Context) error {
			schedule := rt.app.Config.MemberSyncSchedule
			if schedule == "" {
				return fmt.Errorf("MEMBER_SYNC_SCHEDULE is not set")
			}

			logger := rt.logger.Named("member_sync_schedule")
			cronLog := cronLogger{logger: logger}
			c := cron.New(
				cron.WithLogger(cronLog),
				cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
			)
			if _, err := c.AddFunc(schedule, func() {
				out, err := rt.app.MemberSync.SyncMembers(cCtx.Context, nil)
				if err != nil {
					logger.ErrorContext(cCtx.Context, "scheduled member sync failed", "error", err)
					return
				}
				logger.InfoContext(cCtx.Context, "scheduled member sync finished",
					"updated", out.Updated,
					"skipped", out.Skipped,
					"errors", len(out.Errors),
				)
			}); err != nil {
				return fmt.Errorf("schedule member sync %q: %w", schedule, err)
			}

			c.Start()
			logger.Info("member sync scheduled", "schedule", schedule)
			<-cCtx.Context.Done()
			<-c.Stop().Done()
			logger.Info("member sync schedule stopped")
			return nil
		},
	}
}

func finishOutcome(status progress.Status, result any, errMsg string) error {
	if err := writeJSON(os.Stdout, result); err != nil {
		return err
	}
	if status == progress.StatusError {
		return fmt.Errorf("operation failed: %s", errMsg)
	}
	return nil
}
