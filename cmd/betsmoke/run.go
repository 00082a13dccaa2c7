package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shiiiru/betsmoke/internal/apiclient"
	"github.com/shiiiru/betsmoke/internal/infra"
	"github.com/shiiiru/betsmoke/internal/report"
	"github.com/shiiiru/betsmoke/internal/smoke"
)

type runOptions struct {
	baseURL        string
	fixturesFile   string
	contractChecks bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the smoke scenario (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSmoke(cmd, opts)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "backend root URL (overrides SMOKE_BASE_URL)")
	cmd.Flags().StringVar(&opts.fixturesFile, "fixtures", "", "YAML fixtures file (overrides SMOKE_FIXTURES_FILE)")
	cmd.Flags().BoolVar(&opts.contractChecks, "contract-checks", false, "also run negative contract checks (overrides SMOKE_CONTRACT_CHECKS)")
}

// loadRunConfig reads the environment and applies any flags the user set.
func loadRunConfig(cmd *cobra.Command, opts *runOptions) (*infra.Config, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("fixtures") {
		cfg.FixturesFile = opts.fixturesFile
	}
	if flags.Changed("contract-checks") {
		cfg.ContractChecks = opts.contractChecks
	}
	return cfg, nil
}

func runSmoke(cmd *cobra.Command, opts *runOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadRunConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	fixtures, err := smoke.LoadFixtures(cfg.FixturesFile)
	if err != nil {
		return err
	}

	client := apiclient.New(cfg.APIURL(), cfg.RequestTimeout, logger)
	runner := smoke.NewRunner(client, smoke.Settings{
		BaseURL:         cfg.BaseURL,
		AdminEmail:      cfg.AdminEmail,
		AdminPassword:   cfg.AdminPassword,
		UserPassword:    cfg.UserPassword,
		StartingBalance: decimal.NewFromFloat(cfg.StartingBalance),
		ContractChecks:  cfg.ContractChecks,
	}, fixtures, out, logger)

	rep := runner.Run(ctx)

	sinks, closeSinks := buildSinks(ctx, cfg, out, logger)
	defer closeSinks()
	// Sink errors are already logged and never change the exit code.
	_ = report.PublishAll(ctx, rep, logger, sinks...)

	if !rep.Passed() {
		return errChecksFailed
	}
	return nil
}

// buildSinks returns the console sink plus every optional sink the config
// enables. A sink that cannot be set up is logged and skipped.
func buildSinks(ctx context.Context, cfg *infra.Config, out io.Writer, logger *slog.Logger) ([]report.Sink, func()) {
	sinks := []report.Sink{report.NewConsole(out)}
	var closers []func()

	if cfg.ReportDatabaseURL != "" {
		pg, err := report.NewPostgres(ctx, cfg.ReportDatabaseURL, logger)
		if err != nil {
			logger.Error("postgres report sink unavailable", "error", err)
		} else {
			sinks = append(sinks, pg)
			closers = append(closers, pg.Close)
		}
	}

	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	if producer.Enabled() {
		sinks = append(sinks, report.NewKafka(producer, cfg.KafkaTopic))
	}
	closers = append(closers, func() {
		if err := producer.Close(); err != nil {
			logger.Warn("close kafka producer", "error", err)
		}
	})

	if cfg.PushgatewayURL != "" {
		sinks = append(sinks, report.NewPushgateway(cfg.PushgatewayURL, cfg.PushgatewayJob))
	}

	return sinks, func() {
		for _, c := range closers {
			c()
		}
	}
}
