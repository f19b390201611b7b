package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/registration"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
	"github.com/panjf2000/ants/v2"
)

const defaultRosterExportConcurrency = 10

type RosterExportConfig struct {
	// Concurrency caps in-flight provider calls; each batch is this size and
	// completes before the next starts.
	Concurrency int
}

type RosterExportService struct {
	provider         GolfGeniusProvider
	eventRepo        event.Repository
	registrationRepo registration.Repository
	tracker          *progress.Tracker[ExportResult]
	concurrency      int
	logger           *logging.Logger
}

func NewRosterExportService(
	provider GolfGeniusProvider,
	eventRepo event.Repository,
	registrationRepo registration.Repository,
	tracker *progress.Tracker[ExportResult],
	cfg RosterExportConfig,
	logger *logging.Logger,
) *RosterExportService {
	if logger == nil {
		logger = logging.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultRosterExportConcurrency
	}

	return &RosterExportService{
		provider:         provider,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		tracker:          tracker,
		concurrency:      concurrency,
		logger:           logger,
	}
}

// StartExport runs Export in the background and returns its progress stream.
func (s *RosterExportService) StartExport(ctx context.Context, eventID int64) (*progress.Stream, error) {
	return startTracked(ctx, s.tracker, eventID, "roster export", s.logger, func(ctx context.Context, report Reporter) (ExportResult, error) {
		return s.Export(ctx, eventID, report)
	})
}

// rosterIndex finds existing provider roster members by slot id and by handicap id.
type rosterIndex struct {
	byExternalID map[string]ExternalRosterMember
	byGHIN       map[string]ExternalRosterMember
}

func newRosterIndex(members []ExternalRosterMember) rosterIndex {
	idx := rosterIndex{
		byExternalID: make(map[string]ExternalRosterMember, len(members)),
		byGHIN:       make(map[string]ExternalRosterMember, len(members)),
	}
	for _, m := range members {
		if ext := strings.TrimSpace(m.ExternalID); ext != "" {
			idx.byExternalID[ext] = m
		}
		if ghin := player.NormalizeGHIN(m.GHIN); ghin != "0" {
			idx.byGHIN[ghin] = m
		}
	}
	return idx
}

func (idx rosterIndex) find(slotID int64, ghin string) (ExternalRosterMember, bool) {
	if m, ok := idx.byExternalID[strconv.FormatInt(slotID, 10)]; ok {
		return m, true
	}
	if normalized := player.NormalizeGHIN(ghin); normalized != "0" {
		if m, ok := idx.byGHIN[normalized]; ok {
			return m, true
		}
	}
	return ExternalRosterMember{}, false
}

// Export creates or updates one provider roster member per registered player.
// Members already on the roster are matched by slot id, then by handicap id, so
// repeated runs update instead of creating duplicates.
func (s *RosterExportService) Export(ctx context.Context, eventID int64, report Reporter) (ExportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterExportService.Export")
	defer span.End()

	ev, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return ExportResult{}, err
	}
	if !ev.Linked() {
		return ExportResult{}, fmt.Errorf("%w: event_id=%d is not linked to a Golf Genius event", ErrInvalidInput, eventID)
	}

	fees, err := s.registrationRepo.ListEventFees(ctx, eventID)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list event fees event_id=%d: %w", eventID, err)
	}
	if len(fees) == 0 {
		return ExportResult{}, fmt.Errorf("%w: no event fees configured for event_id=%d", ErrInvalidInput, eventID)
	}

	slots, err := s.registrationRepo.ListRegisteredSlots(ctx, eventID)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list registered slots event_id=%d: %w", eventID, err)
	}

	existing, err := collectPages(ctx, func(ctx context.Context, page int) ([]ExternalRosterMember, error) {
		return s.provider.ListEventRoster(ctx, ev.RemoteID, page)
	})
	if err != nil {
		return ExportResult{}, fmt.Errorf("fetch golf genius roster remote_event_id=%s: %w", ev.RemoteID, err)
	}
	index := newRosterIndex(existing)

	out := ExportResult{EventID: eventID, Total: len(slots)}
	report.emit(out.Total, 0, fmt.Sprintf("Exporting %d players", out.Total))

	pool, err := ants.NewPool(s.concurrency)
	if err != nil {
		return ExportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	processed := 0
	for start := 0; start < len(slots); start += s.concurrency {
		end := min(start+s.concurrency, len(slots))

		var batch sync.WaitGroup
		for _, slot := range slots[start:end] {
			batch.Add(1)
			task := func() {
				defer batch.Done()
				outcome, exportErr := s.exportSlot(ctx, ev, fees, index, slot)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case exportErr != nil:
					out.Errors = append(out.Errors, ExportError{
						SlotID:   slot.ID,
						PlayerID: slot.Player.ID,
						Email:    slot.Player.Email,
						Error:    exportErr.Error(),
					})
				case outcome == slotCreated:
					out.Created++
				case outcome == slotUpdated:
					out.Updated++
				default:
					out.Skipped++
				}
			}
			if err := pool.Submit(task); err != nil {
				batch.Done()
				mu.Lock()
				out.Errors = append(out.Errors, ExportError{SlotID: slot.ID, PlayerID: slot.Player.ID, Email: slot.Player.Email, Error: err.Error()})
				mu.Unlock()
			}
		}
		batch.Wait()

		processed = end
		report.emit(out.Total, processed, fmt.Sprintf("Exported %d of %d players", processed, out.Total))
	}

	for _, item := range out.Errors {
		s.logger.WarnContext(ctx, "roster export item failed", "event_id", eventID, "slot_id", item.SlotID, "player_id", item.PlayerID, "error", item.Error)
	}
	s.logger.InfoContext(ctx, "roster export finished",
		"event_id", eventID,
		"created", out.Created,
		"updated", out.Updated,
		"skipped", out.Skipped,
		"errors", len(out.Errors),
	)
	return out, nil
}

type slotOutcome int

const (
	slotSkipped slotOutcome = iota
	slotCreated
	slotUpdated
)

func (s *RosterExportService) exportSlot(
	ctx context.Context,
	ev event.Event,
	fees []registration.Fee,
	index rosterIndex,
	slot registration.Slot,
) (slotOutcome, error) {
	if slot.Player.ID <= 0 {
		return slotSkipped, nil
	}

	input := rosterInputForSlot(slot, fees)
	if existing, ok := index.find(slot.ID, slot.Player.GHIN); ok {
		if err := s.provider.UpdateRosterMember(ctx, ev.RemoteID, existing.ID, input); err != nil {
			return slotSkipped, err
		}
		if slot.RemoteID != existing.ID {
			if err := s.registrationRepo.UpdateSlotRemoteID(ctx, slot.ID, existing.ID); err != nil {
				return slotSkipped, fmt.Errorf("store remote id slot_id=%d: %w", slot.ID, err)
			}
		}
		return slotUpdated, nil
	}

	remoteID, err := s.provider.CreateRosterMember(ctx, ev.RemoteID, input)
	if err != nil {
		return slotSkipped, err
	}
	if err := s.registrationRepo.UpdateSlotRemoteID(ctx, slot.ID, remoteID); err != nil {
		return slotSkipped, fmt.Errorf("store remote id slot_id=%d: %w", slot.ID, err)
	}
	return slotCreated, nil
}

// rosterInputForSlot exports each event fee as a Y/N custom field keyed by fee code.
func rosterInputForSlot(slot registration.Slot, fees []registration.Fee) RosterMemberInput {
	input := RosterMemberInput{
		ExternalID:   strconv.FormatInt(slot.ID, 10),
		FirstName:    slot.Player.FirstName,
		LastName:     slot.Player.LastName,
		Email:        slot.Player.Email,
		CustomFields: make(map[string]string, len(fees)),
	}
	if player.HasGHIN(slot.Player.GHIN) {
		input.GHIN = player.NormalizeGHIN(slot.Player.GHIN)
	}
	for _, fee := range fees {
		key := strings.TrimSpace(fee.Code)
		if key == "" {
			key = strings.TrimSpace(fee.Name)
		}
		value := "N"
		if slot.PaidFee(fee.ID) {
			value = "Y"
		}
		input.CustomFields[key] = value
	}
	return input
}

// collectPages reads provider pages starting at 1 until a page is shorter than ProviderPageSize.
func collectPages(ctx context.Context, fetch func(ctx context.Context, page int) ([]ExternalRosterMember, error)) ([]ExternalRosterMember, error) {
	var out []ExternalRosterMember
	for page := 1; ; page++ {
		items, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) < ProviderPageSize {
			return out, nil
		}
	}
}
