package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
)

// ExportError is a per-player failure recorded during roster export.
type ExportError struct {
	SlotID   int64  `json:"slotId"`
	PlayerID int64  `json:"playerId"`
	Email    string `json:"email,omitempty"`
	Error    string `json:"error"`
}

type ExportResult struct {
	EventID int64         `json:"eventId"`
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Skipped int           `json:"skipped"`
	Total   int           `json:"total"`
	Errors  []ExportError `json:"errors"`
}

func (r ExportResult) Summary() string {
	return fmt.Sprintf("Exported %d players: %d created, %d updated, %d skipped, %d errors",
		r.Total, r.Created, r.Updated, r.Skipped, len(r.Errors))
}

// ImportError is a per-item failure recorded during an import.
type ImportError struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Error    string `json:"error"`
}

type ImportResult struct {
	EventID      int64         `json:"eventId"`
	Operation    string        `json:"operation"`
	Created      int           `json:"created"`
	Updated      int           `json:"updated"`
	Skipped      int           `json:"skipped"`
	BlindSkipped int           `json:"blindSkipped,omitempty"`
	Total        int           `json:"total"`
	Errors       []ImportError `json:"errors"`
}

func (r ImportResult) Summary() string {
	return fmt.Sprintf("%s: %d created, %d updated, %d skipped, %d errors",
		r.Operation, r.Created, r.Updated, r.Skipped, len(r.Errors))
}

func (r *ImportResult) addError(itemID, itemName string, err error) {
	r.Errors = append(r.Errors, ImportError{ItemID: itemID, ItemName: itemName, Error: err.Error()})
}

// Reporter receives progress updates from a running operation.
type Reporter func(progress.Event)

func (r Reporter) emit(total, processed int, message string) {
	if r == nil {
		return
	}
	r(progress.Event{
		TotalUnits:     total,
		ProcessedUnits: processed,
		Status:         progress.StatusProcessing,
		Message:        message,
	})
}

// startTracked registers a progress stream for key and runs fn in the background.
// The run is detached from ctx cancellation; callers observe it through the stream.
func startTracked[R any](
	ctx context.Context,
	tracker *progress.Tracker[R],
	key int64,
	operation string,
	logger *logging.Logger,
	fn func(ctx context.Context, report Reporter) (R, error),
) (*progress.Stream, error) {
	if tracker == nil {
		return nil, fmt.Errorf("%w: progress tracker is not configured", ErrDependencyUnavailable)
	}

	stream, err := tracker.Start(key, 0)
	if err != nil {
		if errors.Is(err, progress.ErrAlreadyActive) {
			return nil, fmt.Errorf("%w: %s event_id=%d", ErrAlreadyRunning, operation, key)
		}
		return nil, err
	}

	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(runCtx, "tracked operation panicked", "operation", operation, "event_id", key, "panic", rec)
				tracker.Fail(key, fmt.Errorf("%s failed unexpectedly", operation))
			}
		}()

		out, runErr := fn(runCtx, func(ev progress.Event) { tracker.Emit(key, ev) })
		if runErr != nil {
			logger.WarnContext(runCtx, "tracked operation failed", "operation", operation, "event_id", key, "run_id", stream.RunID(), "error", runErr)
			tracker.Fail(key, runErr, out)
			return
		}
		logger.InfoContext(runCtx, "tracked operation finished", "operation", operation, "event_id", key, "run_id", stream.RunID())
		tracker.Complete(key, out)
	}()

	return stream, nil
}
