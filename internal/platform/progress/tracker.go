package progress

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/platform/cache"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/google/uuid"
)

var (
	ErrAlreadyActive = errors.New("operation already in progress")
	ErrNotFound      = errors.New("progress not found")
)

type Config struct {
	// StreamTTL bounds how long an unfinished stream stays registered.
	StreamTTL time.Duration
	// ResultTTL is how long a finished outcome can be fetched.
	ResultTTL time.Duration
	// CloseDelay keeps a finished stream visible for late readers.
	CloseDelay    time.Duration
	SweepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		StreamTTL:     5 * time.Minute,
		ResultTTL:     10 * time.Minute,
		CloseDelay:    time.Second,
		SweepInterval: 30 * time.Second,
	}
}

func normalizeConfig(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.StreamTTL <= 0 {
		cfg.StreamTTL = defaults.StreamTTL
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = defaults.ResultTTL
	}
	if cfg.CloseDelay < 0 {
		cfg.CloseDelay = 0
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaults.SweepInterval
	}
	return cfg
}

// Outcome is the stored end state of an operation.
type Outcome[R any] struct {
	Status     Status    `json:"status"`
	Result     R         `json:"result"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Summarizer lets a result describe itself in the terminal event message.
type Summarizer interface {
	Summary() string
}

type tracked struct {
	stream    *Stream
	last      Event
	expiresAt time.Time
	terminal  bool
	removeAt  time.Time
}

// Tracker owns at most one active progress stream per operation key and keeps
// finished outcomes for a while so a caller can fetch them after the stream ends.
type Tracker[R any] struct {
	cfg     Config
	mu      sync.Mutex
	streams map[int64]*tracked
	results *cache.Store[Outcome[R]]
	now     func() time.Time
	logger  *logging.Logger
}

func NewTracker[R any](cfg Config, logger *logging.Logger) *Tracker[R] {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = normalizeConfig(cfg)
	return &Tracker[R]{
		cfg:     cfg,
		streams: make(map[int64]*tracked),
		results: cache.NewStore[Outcome[R]](cfg.ResultTTL),
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock replaces the time source of the tracker and its result store.
func (t *Tracker[R]) WithClock(now func() time.Time) *Tracker[R] {
	if now != nil {
		t.now = now
		t.results.WithClock(now)
	}
	return t
}

// Start registers a stream for key and publishes the initial processing event.
func (t *Tracker[R]) Start(key int64, total int) (*Stream, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evictLocked(key)
	if _, ok := t.streams[key]; ok {
		return nil, fmt.Errorf("%w: key=%d", ErrAlreadyActive, key)
	}

	t.results.Delete(context.Background(), resultKey(key))

	stream := newStream(key, uuid.NewString())
	initial := Event{TotalUnits: total, Status: StatusProcessing, Message: "Starting"}
	stream.publish(initial)
	t.streams[key] = &tracked{
		stream:    stream,
		last:      initial,
		expiresAt: t.now().Add(t.cfg.StreamTTL),
	}
	return stream, nil
}

// Emit publishes ev on the active stream for key. It is a no-op when no stream is active.
func (t *Tracker[R]) Emit(key int64, ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evictLocked(key)
	item, ok := t.streams[key]
	if !ok || item.terminal {
		return
	}
	if ev.Status == "" || ev.Terminal() {
		ev.Status = StatusProcessing
	}
	if item.stream.publish(ev) {
		item.last = ev
	}
}

// Complete stores result and finishes the stream with a complete event.
func (t *Tracker[R]) Complete(key int64, result R) {
	message := "Complete"
	if s, ok := any(result).(Summarizer); ok {
		message = s.Summary()
	}
	t.finish(key, Outcome[R]{Status: StatusComplete, Result: result}, message)
}

// Fail stores err as the outcome and finishes the stream with an error event.
// An optional partial result is kept alongside the error for GetResult.
func (t *Tracker[R]) Fail(key int64, err error, partial ...R) {
	message := "operation failed"
	if err != nil {
		message = err.Error()
	}
	outcome := Outcome[R]{Status: StatusError, Error: message}
	if len(partial) > 0 {
		outcome.Result = partial[0]
	}
	t.finish(key, outcome, message)
}

func (t *Tracker[R]) finish(key int64, outcome Outcome[R], message string) {
	now := t.now()
	outcome.FinishedAt = now
	t.results.Set(context.Background(), resultKey(key), outcome)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.evictLocked(key)
	item, ok := t.streams[key]
	if !ok || item.terminal {
		return
	}

	terminal := Event{
		TotalUnits:     item.last.TotalUnits,
		ProcessedUnits: item.last.ProcessedUnits,
		Status:         outcome.Status,
		Message:        message,
	}
	if outcome.Status == StatusComplete {
		terminal.ProcessedUnits = terminal.TotalUnits
	}
	item.stream.publish(terminal)
	item.stream.close()
	item.last = terminal
	item.terminal = true
	item.removeAt = now.Add(t.cfg.CloseDelay)
}

func (t *Tracker[R]) GetStream(key int64) (*Stream, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evictLocked(key)
	item, ok := t.streams[key]
	if !ok {
		return nil, fmt.Errorf("%w: no progress stream for key=%d", ErrNotFound, key)
	}
	return item.stream, nil
}

func (t *Tracker[R]) GetResult(key int64) (Outcome[R], error) {
	outcome, ok := t.results.Get(context.Background(), resultKey(key))
	if !ok {
		return Outcome[R]{}, fmt.Errorf("%w: no result for key=%d", ErrNotFound, key)
	}
	return outcome, nil
}

// Sweep drops expired streams and outcomes.
func (t *Tracker[R]) Sweep() {
	t.mu.Lock()
	for key := range t.streams {
		t.evictLocked(key)
	}
	t.mu.Unlock()
	t.results.Sweep()
}

// Run sweeps periodically until ctx is done.
func (t *Tracker[R]) Run(ctx context.Context) {
	ticker := time.NewTicker(t.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}

func (t *Tracker[R]) evictLocked(key int64) {
	item, ok := t.streams[key]
	if !ok {
		return
	}
	now := t.now()
	if item.terminal {
		if !now.Before(item.removeAt) {
			delete(t.streams, key)
		}
		return
	}
	if now.Before(item.expiresAt) {
		return
	}

	t.logger.Warn("progress stream expired before completion", "key", key, "run_id", item.stream.RunID())
	item.stream.publish(Event{
		TotalUnits:     item.last.TotalUnits,
		ProcessedUnits: item.last.ProcessedUnits,
		Status:         StatusError,
		Message:        "progress stream expired",
	})
	item.stream.close()
	delete(t.streams, key)
}

func resultKey(key int64) string {
	return "result:" + strconv.FormatInt(key, 10)
}
