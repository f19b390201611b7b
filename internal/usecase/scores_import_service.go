package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/registration"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
	"golang.org/x/sync/errgroup"
)

const teeSheetFetchConcurrency = 4

type ScoresImportService struct {
	provider         GolfGeniusProvider
	eventRepo        event.Repository
	registrationRepo registration.Repository
	playerRepo       player.Repository
	scorecardRepo    scorecard.Repository
	tracker          *progress.Tracker[ImportResult]
	logger           *logging.Logger
}

func NewScoresImportService(
	provider GolfGeniusProvider,
	eventRepo event.Repository,
	registrationRepo registration.Repository,
	playerRepo player.Repository,
	scorecardRepo scorecard.Repository,
	tracker *progress.Tracker[ImportResult],
	logger *logging.Logger,
) *ScoresImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoresImportService{
		provider:         provider,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		playerRepo:       playerRepo,
		scorecardRepo:    scorecardRepo,
		tracker:          tracker,
		logger:           logger,
	}
}

func (s *ScoresImportService) StartImport(ctx context.Context, eventID int64) (*progress.Stream, error) {
	return startTracked(ctx, s.tracker, eventID, "scores import", s.logger, func(ctx context.Context, report Reporter) (ImportResult, error) {
		return s.ImportScores(ctx, eventID, report)
	})
}

type roundTeeSheet struct {
	round   event.Round
	players []ExternalTeeSheetPlayer
}

// ImportScores stores a gross and a net score per played hole for every tee sheet
// player of every linked round.
func (s *ScoresImportService) ImportScores(ctx context.Context, eventID int64, report Reporter) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoresImportService.ImportScores")
	defer span.End()

	ev, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return ImportResult{}, err
	}
	if !ev.Linked() {
		return ImportResult{}, fmt.Errorf("%w: event_id=%d is not linked to a Golf Genius event", ErrInvalidInput, eventID)
	}

	rounds, err := s.eventRepo.ListRounds(ctx, eventID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list rounds event_id=%d: %w", eventID, err)
	}
	linked := rounds[:0:0]
	for _, r := range rounds {
		if r.RemoteID != "" {
			linked = append(linked, r)
		}
	}
	if len(linked) == 0 {
		return ImportResult{}, fmt.Errorf("%w: event_id=%d has no rounds linked to Golf Genius, run event sync first", ErrInvalidInput, eventID)
	}

	sheets, err := s.fetchTeeSheets(ctx, ev.RemoteID, linked)
	if err != nil {
		return ImportResult{}, err
	}

	resolver, err := s.newPlayerResolver(ctx, eventID)
	if err != nil {
		return ImportResult{}, err
	}

	out := ImportResult{EventID: eventID, Operation: "Scores import"}
	for _, sheet := range sheets {
		out.Total += len(sheet.players)
	}
	report.emit(out.Total, 0, fmt.Sprintf("Importing scores for %d players", out.Total))

	holes := make(map[int64][]scorecard.Hole)
	processed := 0
	for _, sheet := range sheets {
		for _, tp := range sheet.players {
			processed++
			itemID := firstNonEmpty(tp.RosterID, tp.MemberCardID, tp.ExternalID)

			p, ok, err := resolver.resolve(ctx, tp)
			if err != nil {
				out.addError(itemID, tp.Name, err)
				continue
			}
			if !ok {
				out.addError(itemID, tp.Name, fmt.Errorf("no local player matches tee sheet entry"))
				continue
			}
			if !hasAnyScore(tp.Scores) {
				out.Skipped++
				continue
			}

			card, err := s.buildScorecard(ctx, eventID, sheet.round, p, tp, holes)
			if err != nil {
				out.addError(itemID, tp.Name, err)
				continue
			}
			created, err := s.scorecardRepo.Upsert(ctx, card)
			if err != nil {
				out.addError(itemID, tp.Name, fmt.Errorf("save scorecard: %w", err))
				continue
			}
			if created {
				out.Created++
			} else {
				out.Updated++
			}
		}
		report.emit(out.Total, processed, fmt.Sprintf("Imported round %s", sheet.round.Name))
	}

	s.logger.InfoContext(ctx, "scores import finished",
		"event_id", eventID,
		"created", out.Created,
		"updated", out.Updated,
		"skipped", out.Skipped,
		"errors", len(out.Errors),
	)
	return out, nil
}

func (s *ScoresImportService) fetchTeeSheets(ctx context.Context, remoteEventID string, rounds []event.Round) ([]roundTeeSheet, error) {
	sheets := make([]roundTeeSheet, len(rounds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(teeSheetFetchConcurrency)
	for i, r := range rounds {
		g.Go(func() error {
			players, err := s.provider.GetTeeSheet(gctx, remoteEventID, r.RemoteID)
			if err != nil {
				return fmt.Errorf("get golf genius tee sheet round=%s: %w", r.RemoteID, err)
			}
			sheets[i] = roundTeeSheet{round: r, players: players}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}

func (s *ScoresImportService) buildScorecard(
	ctx context.Context,
	eventID int64,
	round event.Round,
	p player.Player,
	tp ExternalTeeSheetPlayer,
	holeCache map[int64][]scorecard.Hole,
) (scorecard.Scorecard, error) {
	course, ok, err := s.scorecardRepo.FindCourseByName(ctx, tp.CourseName)
	if err != nil {
		return scorecard.Scorecard{}, fmt.Errorf("find course %q: %w", tp.CourseName, err)
	}
	if !ok {
		return scorecard.Scorecard{}, fmt.Errorf("course not found: %q", tp.CourseName)
	}
	tee, ok, err := s.scorecardRepo.FindTee(ctx, course.ID, tp.TeeName)
	if err != nil {
		return scorecard.Scorecard{}, fmt.Errorf("find tee %q: %w", tp.TeeName, err)
	}
	if !ok {
		return scorecard.Scorecard{}, fmt.Errorf("tee not found: %q on course %q", tp.TeeName, course.Name)
	}

	holes, cached := holeCache[course.ID]
	if !cached {
		holes, err = s.scorecardRepo.ListHoles(ctx, course.ID)
		if err != nil {
			return scorecard.Scorecard{}, fmt.Errorf("list holes course %q: %w", course.Name, err)
		}
		holeCache[course.ID] = holes
	}
	byNumber := make(map[int]scorecard.Hole, len(holes))
	for _, h := range holes {
		byNumber[h.Number] = h
	}

	scores, err := holeScores(tp, byNumber)
	if err != nil {
		return scorecard.Scorecard{}, err
	}

	courseHandicap, _ := strconv.Atoi(strings.TrimSpace(tp.CourseHandicap))
	return scorecard.Scorecard{
		EventID:        eventID,
		RoundID:        round.ID,
		PlayerID:       p.ID,
		CourseID:       course.ID,
		TeeID:          tee.ID,
		HandicapIndex:  strings.TrimSpace(tp.HandicapIndex),
		CourseHandicap: courseHandicap,
		Scores:         scores,
	}, nil
}

// holeScores emits a gross row and a net row (gross minus handicap dots) for each played hole.
func holeScores(tp ExternalTeeSheetPlayer, holes map[int]scorecard.Hole) ([]scorecard.HoleScore, error) {
	out := make([]scorecard.HoleScore, 0, len(tp.Scores)*2)
	for i, gross := range tp.Scores {
		if gross == nil {
			continue
		}
		number := i + 1
		hole, ok := holes[number]
		if !ok {
			return nil, fmt.Errorf("hole %d not found on course %q", number, tp.CourseName)
		}
		dots := 0
		if i < len(tp.HandicapDots) {
			dots = tp.HandicapDots[i]
		}
		out = append(out,
			scorecard.HoleScore{HoleID: hole.ID, HoleNumber: number, Score: *gross},
			scorecard.HoleScore{HoleID: hole.ID, HoleNumber: number, Score: *gross - dots, IsNet: true},
		)
	}
	return out, nil
}

func hasAnyScore(scores []*int) bool {
	for _, s := range scores {
		if s != nil {
			return true
		}
	}
	return false
}

// playerResolver finds the local player behind a tee sheet entry: by registration
// slot id, then by handicap id, then by provider roster id.
type playerResolver struct {
	playerRepo     player.Repository
	bySlotID       map[string]player.Player
	byRosterMember map[string]player.Player
}

func (s *ScoresImportService) newPlayerResolver(ctx context.Context, eventID int64) (*playerResolver, error) {
	slots, err := s.registrationRepo.ListRegisteredSlots(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registered slots event_id=%d: %w", eventID, err)
	}
	r := &playerResolver{
		playerRepo:     s.playerRepo,
		bySlotID:       make(map[string]player.Player, len(slots)),
		byRosterMember: make(map[string]player.Player, len(slots)),
	}
	for _, slot := range slots {
		if slot.Player.ID <= 0 {
			continue
		}
		r.bySlotID[strconv.FormatInt(slot.ID, 10)] = slot.Player
		if slot.RemoteID != "" {
			r.byRosterMember[slot.RemoteID] = slot.Player
		}
	}
	return r, nil
}

func (r *playerResolver) resolve(ctx context.Context, tp ExternalTeeSheetPlayer) (player.Player, bool, error) {
	if p, ok := r.bySlotID[strings.TrimSpace(tp.ExternalID)]; ok {
		return p, true, nil
	}
	if player.HasGHIN(tp.GHIN) {
		p, ok, err := r.playerRepo.FindByGHIN(ctx, player.NormalizeGHIN(tp.GHIN))
		if err != nil {
			return player.Player{}, false, fmt.Errorf("find player by ghin: %w", err)
		}
		if ok {
			return p, true, nil
		}
	}
	if p, ok := r.byRosterMember[strings.TrimSpace(tp.RosterID)]; ok {
		return p, true, nil
	}
	if cardID := strings.TrimSpace(tp.MemberCardID); cardID != "" {
		p, ok, err := r.playerRepo.FindByRemoteID(ctx, cardID)
		if err != nil {
			return player.Player{}, false, fmt.Errorf("find player by member card: %w", err)
		}
		if ok {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
