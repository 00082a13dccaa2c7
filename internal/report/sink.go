// Package report delivers a finished smoke run to its configured sinks.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shiiiru/betsmoke/internal/smoke"
)

// Sink receives a finished run.
type Sink interface {
	Name() string
	Publish(ctx context.Context, rep *smoke.Report) error
}

// PublishAll hands rep to every sink in order. A failing sink does not stop
// the others; all failures are logged and returned joined.
func PublishAll(ctx context.Context, rep *smoke.Report, logger *slog.Logger, sinks ...Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Publish(ctx, rep); err != nil {
			logger.Error("report sink failed", "sink", s.Name(), "run_id", rep.RunID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		logger.Debug("report published", "sink", s.Name(), "run_id", rep.RunID)
	}
	return errors.Join(errs...)
}

// Console prints the human-readable summary.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console sink writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Publish(_ context.Context, rep *smoke.Report) error {
	return rep.WriteSummary(c.w)
}
