package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/platform/cache"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/fuzzy"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
)

// DefaultMinEventSimilarity is the lowest name similarity accepted when several
// provider events share the local event date. No margin over the runner-up is required.
const DefaultMinEventSimilarity = 0.3

const seasonsCacheKey = "golfgenius:seasons"

type EventResolverConfig struct {
	CategoryID     string
	SeasonCacheTTL time.Duration
	MinSimilarity  float64
}

// EventResolver binds a local event to exactly one provider event.
type EventResolver struct {
	provider      GolfGeniusProvider
	categoryID    string
	minSimilarity float64
	seasons       *cache.Store[[]ExternalSeason]
	now           func() time.Time
	logger        *logging.Logger
}

func NewEventResolver(provider GolfGeniusProvider, cfg EventResolverConfig, logger *logging.Logger) *EventResolver {
	if logger == nil {
		logger = logging.Default()
	}
	ttl := cfg.SeasonCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	minSimilarity := cfg.MinSimilarity
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinEventSimilarity
	}

	return &EventResolver{
		provider:      provider,
		categoryID:    strings.TrimSpace(cfg.CategoryID),
		minSimilarity: minSimilarity,
		seasons:       cache.NewStore[[]ExternalSeason](ttl),
		now:           time.Now,
		logger:        logger,
	}
}

func (r *EventResolver) WithClock(now func() time.Time) *EventResolver {
	if now != nil {
		r.now = now
		r.seasons.WithClock(now)
	}
	return r
}

// CurrentSeason returns the provider season for the current calendar year.
func (r *EventResolver) CurrentSeason(ctx context.Context) (ExternalSeason, error) {
	seasons, err := r.seasons.GetOrLoad(ctx, seasonsCacheKey, r.provider.ListSeasons)
	if err != nil {
		return ExternalSeason{}, fmt.Errorf("load golf genius seasons: %w", err)
	}

	year := strconv.Itoa(r.now().Year())
	var named *ExternalSeason
	for i := range seasons {
		season := seasons[i]
		name := strings.TrimSpace(season.Name)
		if season.Current && name != year {
			return ExternalSeason{}, fmt.Errorf("%w: Golf Genius current season %q does not match the current year: %s", ErrConflict, name, year)
		}
		if name == year && named == nil {
			named = &seasons[i]
		}
	}
	if named == nil {
		return ExternalSeason{}, fmt.Errorf("%w: No Golf Genius season found for the current year: %s", ErrNotFound, year)
	}
	return *named, nil
}

// Resolve finds the provider event on dateKey (YYYY-MM-DD), using name to break ties.
func (r *EventResolver) Resolve(ctx context.Context, dateKey, name string) (ExternalEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventResolver.Resolve")
	defer span.End()

	dateKey = strings.TrimSpace(dateKey)
	if len(dateKey) < 10 {
		return ExternalEvent{}, fmt.Errorf("%w: event date %q must be YYYY-MM-DD", ErrInvalidInput, dateKey)
	}
	dateKey = dateKey[:10]

	season, err := r.CurrentSeason(ctx)
	if err != nil {
		return ExternalEvent{}, err
	}

	events, err := r.provider.ListEvents(ctx, season.ID, r.categoryID)
	if err != nil {
		return ExternalEvent{}, fmt.Errorf("list golf genius events season=%s: %w", season.Name, err)
	}

	matches := make([]ExternalEvent, 0, 2)
	for _, ev := range events {
		if ev.DateKey() == dateKey {
			matches = append(matches, ev)
		}
	}

	switch len(matches) {
	case 0:
		return ExternalEvent{}, fmt.Errorf("%w: no Golf Genius event found on %s", ErrNotFound, dateKey)
	case 1:
		return matches[0], nil
	}

	return r.pickByName(ctx, matches, dateKey, name)
}

func (r *EventResolver) pickByName(ctx context.Context, matches []ExternalEvent, dateKey, name string) (ExternalEvent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ExternalEvent{}, fmt.Errorf("%w: %d Golf Genius events found on %s and no event name to disambiguate", ErrConflict, len(matches), dateKey)
	}

	for _, ev := range matches {
		if strings.EqualFold(strings.TrimSpace(ev.Name), name) {
			return ev, nil
		}
	}

	best, bestScore := -1, -1.0
	for i, ev := range matches {
		if score := fuzzy.Similarity(name, ev.Name); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < r.minSimilarity {
		return ExternalEvent{}, fmt.Errorf("%w: %d Golf Genius events found on %s, none confidently matches %q", ErrConflict, len(matches), dateKey, name)
	}

	r.logger.InfoContext(ctx, "resolved golf genius event by name similarity",
		"date", dateKey,
		"name", name,
		"remote_name", matches[best].Name,
		"score", bestScore,
	)
	return matches[best], nil
}
