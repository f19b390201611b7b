package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
)

type ResultsImportService struct {
	provider   GolfGeniusProvider
	eventRepo  event.Repository
	playerRepo player.Repository
	resultRepo result.Repository
	tracker    *progress.Tracker[ImportResult]
	logger     *logging.Logger
}

func NewResultsImportService(
	provider GolfGeniusProvider,
	eventRepo event.Repository,
	playerRepo player.Repository,
	resultRepo result.Repository,
	tracker *progress.Tracker[ImportResult],
	logger *logging.Logger,
) *ResultsImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsImportService{
		provider:   provider,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		resultRepo: resultRepo,
		tracker:    tracker,
		logger:     logger,
	}
}

func (s *ResultsImportService) StartImport(ctx context.Context, eventID int64, formats ...result.Format) (*progress.Stream, error) {
	return startTracked(ctx, s.tracker, eventID, "results import", s.logger, func(ctx context.Context, report Reporter) (ImportResult, error) {
		return s.ImportResults(ctx, eventID, formats, report)
	})
}

type plannedTournament struct {
	tournament event.Tournament
	round      event.Round
	format     result.Format
}

// ImportResults replaces the stored results of each tournament with the provider's
// current leaderboard. Tournaments are processed one at a time; formats, when given,
// limits the import to those formats.
func (s *ResultsImportService) ImportResults(ctx context.Context, eventID int64, formats []result.Format, report Reporter) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsImportService.ImportResults")
	defer span.End()

	ev, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return ImportResult{}, err
	}
	if !ev.Linked() {
		return ImportResult{}, fmt.Errorf("%w: event_id=%d is not linked to a Golf Genius event", ErrInvalidInput, eventID)
	}

	planned, err := s.plan(ctx, eventID, formats)
	if err != nil {
		return ImportResult{}, err
	}

	out := ImportResult{EventID: eventID, Operation: "Results import", Total: len(planned)}
	report.emit(out.Total, 0, fmt.Sprintf("Importing results for %d tournaments", out.Total))

	resolve := s.memberCardResolver(ctx)
	for i, item := range planned {
		t := item.tournament
		rows, err := s.importTournament(ctx, ev, item, resolve, &out)
		if err != nil {
			out.addError(t.RemoteID, t.Name, err)
			s.logger.WarnContext(ctx, "tournament results import failed", "event_id", eventID, "tournament_id", t.ID, "error", err)
		} else {
			out.Created += rows
		}
		report.emit(out.Total, i+1, fmt.Sprintf("Imported %s", t.Name))
	}

	s.logger.InfoContext(ctx, "results import finished",
		"event_id", eventID,
		"tournaments", out.Total,
		"rows", out.Created,
		"skipped", out.Skipped,
		"blind_skipped", out.BlindSkipped,
		"errors", len(out.Errors),
	)
	return out, nil
}

func (s *ResultsImportService) plan(ctx context.Context, eventID int64, formats []result.Format) ([]plannedTournament, error) {
	rounds, err := s.eventRepo.ListRounds(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rounds event_id=%d: %w", eventID, err)
	}
	roundsByID := make(map[int64]event.Round, len(rounds))
	for _, r := range rounds {
		roundsByID[r.ID] = r
	}

	tournaments, err := s.eventRepo.ListTournaments(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tournaments event_id=%d: %w", eventID, err)
	}

	wanted := make(map[result.Format]struct{}, len(formats))
	for _, f := range formats {
		wanted[f] = struct{}{}
	}

	out := make([]plannedTournament, 0, len(tournaments))
	for _, t := range tournaments {
		format, ok := result.InferFormat(t.Format)
		if !ok {
			s.logger.WarnContext(ctx, "skip tournament with unsupported format", "tournament_id", t.ID, "format", t.Format)
			continue
		}
		if _, keep := wanted[format]; len(wanted) > 0 && !keep {
			continue
		}
		round, ok := roundsByID[t.RoundID]
		if !ok || round.RemoteID == "" || t.RemoteID == "" {
			s.logger.WarnContext(ctx, "skip tournament without golf genius link", "tournament_id", t.ID)
			continue
		}
		out = append(out, plannedTournament{tournament: t, round: round, format: format})
	}
	return out, nil
}

func (s *ResultsImportService) importTournament(
	ctx context.Context,
	ev event.Event,
	item plannedTournament,
	resolve result.Resolver,
	out *ImportResult,
) (int, error) {
	parser, err := result.ParserFor(item.format)
	if err != nil {
		return 0, err
	}

	payload, err := s.provider.GetTournamentResults(ctx, ev.RemoteID, item.round.RemoteID, item.tournament.RemoteID)
	if err != nil {
		return 0, fmt.Errorf("fetch golf genius results: %w", err)
	}

	batch, err := result.Process(parser, payload, item.tournament.ID, resolve)
	if err != nil {
		return 0, err
	}
	for _, itemErr := range batch.Errors {
		out.Errors = append(out.Errors, ImportError{ItemID: itemErr.MemberCardID, ItemName: itemErr.Name, Error: itemErr.Message})
	}
	out.Skipped += batch.Skipped
	out.BlindSkipped += batch.BlindSkipped

	if err := s.resultRepo.ReplaceForTournament(ctx, item.tournament.ID, batch.Rows); err != nil {
		return 0, fmt.Errorf("save results tournament_id=%d: %w", item.tournament.ID, err)
	}
	return len(batch.Rows), nil
}

// memberCardResolver looks players up by member card id, remembering hits and misses for the run.
func (s *ResultsImportService) memberCardResolver(ctx context.Context) result.Resolver {
	type lookup struct {
		player player.Player
		found  bool
	}
	seen := make(map[string]lookup)

	return func(card result.MemberCard) (player.Player, error) {
		cardID := strings.TrimSpace(card.MemberCardID)
		if cardID == "" {
			return player.Player{}, fmt.Errorf("result has no member card id")
		}
		if hit, ok := seen[cardID]; ok {
			if !hit.found {
				return player.Player{}, fmt.Errorf("no player linked to member card %s", cardID)
			}
			return hit.player, nil
		}

		p, found, err := s.playerRepo.FindByRemoteID(ctx, cardID)
		if err != nil {
			return player.Player{}, fmt.Errorf("find player by member card %s: %w", cardID, err)
		}
		seen[cardID] = lookup{player: p, found: found}
		if !found {
			return player.Player{}, fmt.Errorf("no player linked to member card %s", cardID)
		}
		return p, nil
	}
}

// ParseFormats reads a comma separated list of result formats.
func ParseFormats(raw string) ([]result.Format, error) {
	var out []result.Format
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := result.ParseFormat(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out = append(out, f)
	}
	return out, nil
}
