package main

import (
	"context"
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
	"github.com/finleysg/bhmc-admin-sub001/internal/usecase"
)

// streamProgress writes every event of stream as an SSE frame until the
// terminal event or until ctx is cancelled.
func streamProgress(ctx context.Context, w io.Writer, stream *progress.Stream) error {
	events, cancel := stream.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := writeFrame(w, ev); err != nil {
				return err
			}
		}
	}
}

func sseReporter(w io.Writer) usecase.Reporter {
	return func(ev progress.Event) {
		_ = writeFrame(w, ev)
	}
}

func writeFrame(w io.Writer, ev progress.Event) error {
	frame, err := ev.SSE()
	if err != nil {
		return fmt.Errorf("encode progress event: %w", err)
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write progress event: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	payload, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// cronLogger adapts the structured logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
