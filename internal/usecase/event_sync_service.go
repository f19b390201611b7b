package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

const defaultRoundFetchConcurrency = 4

type EventSyncResult struct {
	EventID       int64  `json:"eventId"`
	RemoteEventID string `json:"remoteEventId"`
	PortalURL     string `json:"portalUrl"`
	Rounds        int    `json:"rounds"`
	Tournaments   int    `json:"tournaments"`
}

type EventSyncService struct {
	provider         GolfGeniusProvider
	resolver         *EventResolver
	eventRepo        event.Repository
	resultRepo       result.Repository
	fetchConcurrency int
	logger           *logging.Logger
}

func NewEventSyncService(
	provider GolfGeniusProvider,
	resolver *EventResolver,
	eventRepo event.Repository,
	resultRepo result.Repository,
	logger *logging.Logger,
) *EventSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EventSyncService{
		provider:         provider,
		resolver:         resolver,
		eventRepo:        eventRepo,
		resultRepo:       resultRepo,
		fetchConcurrency: defaultRoundFetchConcurrency,
		logger:           logger,
	}
}

type remoteRound struct {
	round       ExternalRound
	tournaments []ExternalTournament
}

// SyncEvent links a local event to its provider event and rebuilds its rounds and
// tournaments from the provider. Existing results, tournaments and rounds are removed first.
func (s *EventSyncService) SyncEvent(ctx context.Context, eventID int64) (EventSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventSyncService.SyncEvent")
	defer span.End()

	local, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return EventSyncResult{}, err
	}

	remote, err := s.resolver.Resolve(ctx, local.StartDateKey(), local.Name)
	if err != nil {
		return EventSyncResult{}, fmt.Errorf("resolve golf genius event for event_id=%d: %w", eventID, err)
	}

	rounds, err := s.fetchRounds(ctx, remote.ID)
	if err != nil {
		return EventSyncResult{}, err
	}

	if err := s.resultRepo.DeleteByEvent(ctx, eventID); err != nil {
		return EventSyncResult{}, fmt.Errorf("delete results event_id=%d: %w", eventID, err)
	}
	if err := s.eventRepo.DeleteTournamentsByEvent(ctx, eventID); err != nil {
		return EventSyncResult{}, fmt.Errorf("delete tournaments event_id=%d: %w", eventID, err)
	}
	if err := s.eventRepo.DeleteRoundsByEvent(ctx, eventID); err != nil {
		return EventSyncResult{}, fmt.Errorf("delete rounds event_id=%d: %w", eventID, err)
	}

	out := EventSyncResult{EventID: eventID, RemoteEventID: remote.ID}
	for _, rr := range rounds {
		created, err := s.eventRepo.CreateRound(ctx, event.Round{
			EventID:  eventID,
			RemoteID: rr.round.ID,
			Number:   rr.round.Index,
			Name:     rr.round.Name,
			Date:     parseRoundDate(rr.round.Date, local.StartDate),
		})
		if err != nil {
			return EventSyncResult{}, fmt.Errorf("create round remote_id=%s event_id=%d: %w", rr.round.ID, eventID, err)
		}
		out.Rounds++

		for _, t := range rr.tournaments {
			format := strings.ToLower(strings.TrimSpace(t.Format))
			if inferred, ok := result.InferFormat(t.Format); ok {
				format = string(inferred)
			}
			if _, err := s.eventRepo.CreateTournament(ctx, event.Tournament{
				EventID:  eventID,
				RoundID:  created.ID,
				RemoteID: t.ID,
				Name:     t.Name,
				Format:   format,
				IsNet:    isNetHandicap(t.HandicapFormat),
			}); err != nil {
				return EventSyncResult{}, fmt.Errorf("create tournament remote_id=%s event_id=%d: %w", t.ID, eventID, err)
			}
			out.Tournaments++
		}
	}

	out.PortalURL = portalURL(remote.Website)
	if err := s.eventRepo.UpdateRemoteLink(ctx, eventID, remote.ID, out.PortalURL); err != nil {
		return EventSyncResult{}, fmt.Errorf("update remote link event_id=%d: %w", eventID, err)
	}

	s.logger.InfoContext(ctx, "event synced with golf genius",
		"event_id", eventID,
		"remote_event_id", remote.ID,
		"rounds", out.Rounds,
		"tournaments", out.Tournaments,
	)
	return out, nil
}

// fetchRounds reads every remote round with its tournaments before anything local is touched.
func (s *EventSyncService) fetchRounds(ctx context.Context, remoteEventID string) ([]remoteRound, error) {
	rounds, err := s.provider.ListRounds(ctx, remoteEventID)
	if err != nil {
		return nil, fmt.Errorf("list golf genius rounds remote_event_id=%s: %w", remoteEventID, err)
	}

	mapper := iter.Mapper[ExternalRound, remoteRound]{MaxGoroutines: s.fetchConcurrency}
	out, err := mapper.MapErr(rounds, func(r *ExternalRound) (remoteRound, error) {
		tournaments, err := s.provider.ListTournaments(ctx, remoteEventID, r.ID)
		if err != nil {
			return remoteRound{}, fmt.Errorf("list golf genius tournaments round=%s: %w", r.ID, err)
		}
		return remoteRound{round: *r, tournaments: tournaments}, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func loadEvent(ctx context.Context, repo event.Repository, eventID int64) (event.Event, error) {
	if eventID <= 0 {
		return event.Event{}, fmt.Errorf("%w: event id must be greater than zero", ErrInvalidInput)
	}
	ev, ok, err := repo.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event event_id=%d: %w", eventID, err)
	}
	if !ok {
		return event.Event{}, fmt.Errorf("%w: event_id=%d", ErrNotFound, eventID)
	}
	return ev, nil
}

func portalURL(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	lower := strings.ToLower(website)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return website
	}
	return "https://" + strings.TrimPrefix(website, "//")
}

func parseRoundDate(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 10 {
		if parsed, err := time.Parse(time.DateOnly, raw[:10]); err == nil {
			return parsed
		}
	}
	return fallback
}

func isNetHandicap(handicapFormat string) bool {
	lower := strings.ToLower(strings.TrimSpace(handicapFormat))
	if lower == "" || strings.Contains(lower, "gross") {
		return false
	}
	return true
}
