package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiiiru/betsmoke/internal/infra"
	"github.com/shiiiru/betsmoke/internal/smoke"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so the store works with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// RunStore writes runs into smoke_runs and smoke_checks.
type RunStore struct{}

// InsertRun writes the run row followed by one row per check.
func (RunStore) InsertRun(ctx context.Context, db DBTX, rep *smoke.Report) error {
	_, err := db.Exec(ctx, `
		INSERT INTO smoke_runs (id, base_url, started_at, finished_at, passed, total, failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rep.RunID, rep.BaseURL, rep.StartedAt, rep.FinishedAt, rep.Passed(), rep.Total(), rep.FailedCount())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, res := range rep.Results {
		_, err := db.Exec(ctx, `
			INSERT INTO smoke_checks (run_id, seq, section, name, passed, detail, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rep.RunID, res.Seq, res.Section, res.Name, res.Passed, res.Detail, res.RecordedAt)
		if err != nil {
			return fmt.Errorf("insert check %d: %w", res.Seq, err)
		}
	}
	return nil
}

// Postgres stores runs in a Postgres database.
type Postgres struct {
	pool  *pgxpool.Pool
	store RunStore
}

// NewPostgres migrates the report schema and opens a pool.
func NewPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*Postgres, error) {
	if err := infra.RunMigrations(dsn, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	pool, err := infra.NewPostgresPool(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	logger.Info("report store connected")
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Name() string { return "postgres" }

// Publish writes the run and all its checks in one transaction.
func (p *Postgres) Publish(ctx context.Context, rep *smoke.Report) error {
	return pgx.BeginTxFunc(ctx, p.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return p.store.InsertRun(ctx, tx, rep)
	})
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
