// Command betsmoke runs the end-to-end smoke scenario against a betting API
// and can serve an in-memory reference backend to run it against.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shiiiru/betsmoke/internal/infra"
)

// errChecksFailed makes the process exit 1 without printing anything beyond
// the report.
var errChecksFailed = errors.New("smoke checks failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "betsmoke:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}
	root := &cobra.Command{
		Use:           "betsmoke",
		Short:         "End-to-end smoke tests for the betting API",
		Long:          `Drive a betting API through admin setup, user betting, bonus purchase and settlement, then report every check.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSmoke(cmd, opts)
		},
	}
	addRunFlags(root, opts)

	root.AddCommand(newRunCmd())
	root.AddCommand(newStubCmd())
	return root
}

// newLogger writes structured logs to w so stdout stays reserved for the
// human-readable report.
func newLogger(cfg *infra.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
