// Package smoke drives the betting API through a fixed end-to-end scenario
// and records one pass/fail result per check.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiiiru/betsmoke/internal/apiclient"
	"github.com/shiiiru/betsmoke/internal/domain"
)

// Settings holds the credentials and expectations of a run.
type Settings struct {
	BaseURL         string
	AdminEmail      string
	AdminPassword   string
	UserPassword    string
	StartingBalance decimal.Decimal
	ContractChecks  bool
}

// Runner executes the scenario. It is single-use and not safe for
// concurrent use.
type Runner struct {
	client   *apiclient.Client
	settings Settings
	fixtures Fixtures
	logger   *slog.Logger
	rec      *recorder
	now      func() time.Time
	suffix   func() string

	adminToken string
	userToken  string
	userID     domain.ID
	gameID     domain.ID
	matchID    domain.ID
	bonusID    domain.ID
}

// NewRunner creates a Runner printing its progress to out.
func NewRunner(client *apiclient.Client, settings Settings, fixtures Fixtures, out io.Writer, logger *slog.Logger) *Runner {
	return &Runner{
		client:   client,
		settings: settings,
		fixtures: fixtures,
		logger:   logger,
		now:      time.Now,
		suffix:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
		rec:      &recorder{out: out, now: time.Now, report: &Report{}},
	}
}

// Run executes every check in dependency order and returns the report. It
// never aborts early; failed prerequisites turn into failed or skipped
// dependants.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		RunID:     uuid.New(),
		BaseURL:   r.settings.BaseURL,
		StartedAt: r.now(),
	}
	r.rec.report = report
	r.rec.now = r.now

	fmt.Fprintln(r.rec.out, "Starting betting API smoke test...")
	fmt.Fprintf(r.rec.out, "Testing against: %s\n", r.settings.BaseURL)
	r.logger.Info("smoke run started", "run_id", report.RunID, "base_url", r.settings.BaseURL)

	adminOK := r.adminLogin(ctx)
	userOK := r.userRegistration(ctx)
	r.userLogin(ctx)

	if adminOK {
		r.gameCreation(ctx)
		r.matchCreation(ctx)
		r.bonusCreation(ctx)
		r.adminStats(ctx)
	}

	if userOK {
		r.simpleBetPlacement(ctx)
		r.combinedBetPlacement(ctx)
		r.bonusPurchase(ctx)
		r.userDashboard(ctx)
		r.balanceUpdates(ctx)
	}

	if adminOK {
		r.betValidation(ctx)
	}

	if r.settings.ContractChecks {
		r.contractChecks(ctx)
	}

	report.FinishedAt = r.now()
	r.logger.Info("smoke run finished",
		"run_id", report.RunID,
		"passed", report.PassedCount(),
		"failed", report.FailedCount(),
		"duration_ms", report.Duration().Milliseconds(),
	)
	return report
}

// describe turns a failed request, or a response missing fields, into a
// detail line carrying endpoint, status and a body snippet.
func describe(resp *apiclient.Response, err error, fields ...string) string {
	if err != nil {
		return err.Error()
	}
	if resp == nil {
		return "no response"
	}
	if missing := resp.Missing(fields...); len(missing) > 0 {
		return fmt.Sprintf("Status: %d, missing field(s) %s, Response: %s",
			resp.Status, strings.Join(missing, ", "), apiclient.Snippet(resp.Body))
	}
	return fmt.Sprintf("Status: %d, Response: %s", resp.Status, apiclient.Snippet(resp.Body))
}

// fetchMatch loads the stored match with its bet types.
func (r *Runner) fetchMatch(ctx context.Context, token string) (*matchView, error) {
	resp, err := r.client.Get(ctx, "matches/"+r.matchID.String(), token)
	if err != nil {
		return nil, err
	}
	var m matchView
	if err := resp.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

var errNoBetTypes = errors.New("match has no bet types with options")

// selection picks the first option of the i-th bet type.
func (m *matchView) selection(matchID domain.ID, i int) (selectionPayload, error) {
	if i >= len(m.BetTypes) || len(m.BetTypes[i].Options) == 0 {
		return selectionPayload{}, errNoBetTypes
	}
	bt := m.BetTypes[i]
	return selectionPayload{MatchID: matchID, BetTypeID: bt.ID, OptionID: bt.Options[0].ID}, nil
}
