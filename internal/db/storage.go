// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
)

const defaultTxTimeout = 30 * time.Second

type unitOfWorkKey struct{}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	// TxTimeout bounds a WithTx block once its first statement runs.
	TxTimeout      time.Duration
	TracingEnabled bool
}

// unitOfWork is the transaction shared by every statement of one WithTx
// block. BEGIN is deferred until the first statement so read-free blocks
// never touch the pool.
type unitOfWork struct {
	db      *sql.DB
	ctx     context.Context
	timeout time.Duration

	tx     TxInterface
	err    error
	cancel context.CancelFunc
	done   bool
}

func (u *unitOfWork) begin() (TxInterface, error) {
	if u.err != nil {
		return nil, u.err
	}
	if u.tx != nil {
		return u.tx, nil
	}

	// the request may be cancelled mid-flight, the transaction must still
	// finish with an explicit commit or rollback
	ctx, cancel := context.WithTimeout(context.WithoutCancel(u.ctx), u.timeout)
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		cancel()
		u.err = fmt.Errorf("failed to begin transaction: %w", err)
		return nil, u.err
	}

	u.tx = tx
	u.cancel = cancel
	return tx, nil
}

func (u *unitOfWork) finish(commit bool) error {
	if u.cancel != nil {
		defer u.cancel()
	}
	if u.tx == nil || u.done {
		return nil
	}
	u.done = true

	if commit {
		return u.tx.Commit()
	}

	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func unitOfWorkFromContext(ctx context.Context) *unitOfWork {
	u, _ := ctx.Value(unitOfWorkKey{}).(*unitOfWork)
	return u
}

type DBClient struct {
	// pool is kept so Close can drain it
	pool *pgxpool.Pool
	db   *sql.DB

	txTimeout time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// failedRunner stands in for a transaction that could not be opened, every
// statement bound to it fails with the BEGIN error.
type failedRunner struct {
	err error
}

type failedRow struct {
	err error
}

func (r failedRow) Scan(...any) error {
	return r.err
}

func (r failedRunner) Exec(string, ...any) (sql.Result, error) {
	return nil, r.err
}

func (r failedRunner) Query(string, ...any) (*sql.Rows, error) {
	return nil, r.err
}

func (r failedRunner) QueryRow(string, ...any) sq.RowScanner {
	return failedRow(r)
}

func (r failedRunner) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, r.err
}

func (r failedRunner) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, r.err
}

func (r failedRunner) QueryRowContext(context.Context, string, ...any) sq.RowScanner {
	return failedRow(r)
}

func (d *DBClient) builder(runner sq.BaseRunner) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(runner)
}

// Statement returns a squirrel builder bound to the transaction of the
// surrounding WithTx block, or to the pool when there is none. Inside a
// block whose BEGIN failed, statements never reach the pool.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	u := unitOfWorkFromContext(ctx)
	if u == nil {
		return d.builder(d.db)
	}

	tx, err := u.begin()
	if err != nil {
		d.logger.Errorf("%v", err)
		return d.builder(failedRunner{err: err})
	}
	return d.builder(tx)
}

// WithTx runs fn inside one transaction, committing when fn returns nil and
// rolling back otherwise. Nested calls join the outer block.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if unitOfWorkFromContext(ctx) != nil {
		return fn(ctx)
	}

	ctx, span := d.tracer.Start(ctx, "db.DBClient.WithTx")
	defer span.End()

	u := &unitOfWork{db: d.db, ctx: ctx, timeout: d.txTimeout}

	if err := fn(context.WithValue(ctx, unitOfWorkKey{}, u)); err != nil {
		if rbErr := u.finish(false); rbErr != nil {
			d.logger.Errorf("failed to rollback transaction: %v", rbErr)
		}
		if u.err != nil && !errors.Is(err, u.err) {
			return errors.Join(u.err, err)
		}
		return err
	}

	// fn may have swallowed the statement errors
	if u.err != nil {
		_ = u.finish(false)
		return u.err
	}

	if err := u.finish(true); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping checks connectivity and reports it as the database availability gauge.
func (d *DBClient) Ping(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	err := d.db.PingContext(ctx)

	available := 1.0
	if err != nil {
		available = 0
	}
	if mErr := d.monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); mErr != nil {
		d.logger.Debugf("error setting database availability: %v", mErr)
	}

	return err
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %v", err)
	}

	if cfg.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %v", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to start metrics collection for database: %v", err)
		}
	}

	d := new(DBClient)

	d.pool = pool
	d.db = stdlib.OpenDBFromPool(pool)
	d.txTimeout = cfg.TxTimeout
	if d.txTimeout <= 0 {
		d.txTimeout = defaultTxTimeout
	}

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	if err := d.Ping(context.Background()); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to connect to the database: %v", err)
	}

	return d, nil
}
