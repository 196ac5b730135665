// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
)

var errBeginRefused = errors.New("begin refused")

type fakeCounters struct {
	execs     atomic.Int32
	commits   atomic.Int32
	rollbacks atomic.Int32
}

type fakeConnector struct {
	beginErr error
	counters *fakeCounters
}

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{beginErr: c.beginErr, counters: c.counters}, nil
}

func (c *fakeConnector) Driver() driver.Driver {
	return fakeDriver{}
}

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("use the connector")
}

type fakeConn struct {
	beginErr error
	counters *fakeCounters
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *fakeConn) Close() error {
	return nil
}

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return &fakeTx{counters: c.counters}, nil
}

func (c *fakeConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	c.counters.execs.Add(1)
	return driver.RowsAffected(1), nil
}

type fakeTx struct {
	counters *fakeCounters
}

func (t *fakeTx) Commit() error {
	t.counters.commits.Add(1)
	return nil
}

func (t *fakeTx) Rollback() error {
	t.counters.rollbacks.Add(1)
	return nil
}

func newFakeClient(t *testing.T, beginErr error) (*DBClient, *fakeCounters) {
	t.Helper()

	counters := new(fakeCounters)
	sqlDB := sql.OpenDB(&fakeConnector{beginErr: beginErr, counters: counters})
	t.Cleanup(func() { _ = sqlDB.Close() })

	d := new(DBClient)
	d.db = sqlDB
	d.txTimeout = time.Second
	d.tracer = tracing.NewNoopTracer()
	d.monitor = monitoring.NewNoopMonitor("test")
	d.logger = logging.NewNoopLogger()

	return d, counters
}

func insertTwice(d *DBClient, swallow bool) func(context.Context) error {
	return func(ctx context.Context) error {
		for i := 0; i < 2; i++ {
			_, err := d.Statement(ctx).Insert("purchases").Columns("listing_id").Values(i).ExecContext(ctx)
			if err != nil && !swallow {
				return err
			}
		}
		return nil
	}
}

func TestWithTx(t *testing.T) {
	tests := []struct {
		name string

		beginErr error
		fn       func(*DBClient) func(context.Context) error

		expectedErr       error
		expectedExecs     int32
		expectedCommits   int32
		expectedRollbacks int32
	}{
		{
			name:            "statements share one committed transaction",
			fn:              func(d *DBClient) func(context.Context) error { return insertTwice(d, false) },
			expectedExecs:   2,
			expectedCommits: 1,
		},
		{
			name: "callback error rolls back",
			fn: func(d *DBClient) func(context.Context) error {
				return func(ctx context.Context) error {
					if err := insertTwice(d, false)(ctx); err != nil {
						return err
					}
					return errBeginRefused
				}
			},
			expectedErr:       errBeginRefused,
			expectedExecs:     2,
			expectedRollbacks: 1,
		},
		{
			name:        "failed begin never runs statements on the pool",
			beginErr:    errBeginRefused,
			fn:          func(d *DBClient) func(context.Context) error { return insertTwice(d, false) },
			expectedErr: errBeginRefused,
		},
		{
			name:        "failed begin is reported even when statement errors are ignored",
			beginErr:    errBeginRefused,
			fn:          func(d *DBClient) func(context.Context) error { return insertTwice(d, true) },
			expectedErr: errBeginRefused,
		},
		{
			name: "block without statements does not begin",
			fn: func(*DBClient) func(context.Context) error {
				return func(context.Context) error { return nil }
			},
			beginErr: errBeginRefused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, counters := newFakeClient(t, tt.beginErr)

			err := d.WithTx(context.Background(), tt.fn(d))

			if tt.expectedErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if got := counters.execs.Load(); got != tt.expectedExecs {
				t.Fatalf("expected %d statements executed, got %d", tt.expectedExecs, got)
			}
			if got := counters.commits.Load(); got != tt.expectedCommits {
				t.Fatalf("expected %d commits, got %d", tt.expectedCommits, got)
			}
			if got := counters.rollbacks.Load(); got != tt.expectedRollbacks {
				t.Fatalf("expected %d rollbacks, got %d", tt.expectedRollbacks, got)
			}
		})
	}
}

func TestWithTxNestedJoinsOuterTransaction(t *testing.T) {
	d, counters := newFakeClient(t, nil)

	err := d.WithTx(context.Background(), func(ctx context.Context) error {
		if _, err := d.Statement(ctx).Insert("purchases").Columns("listing_id").Values(1).ExecContext(ctx); err != nil {
			return err
		}
		return d.WithTx(ctx, insertTwice(d, false))
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := counters.execs.Load(); got != 3 {
		t.Fatalf("expected 3 statements executed, got %d", got)
	}
	if got := counters.commits.Load(); got != 1 {
		t.Fatalf("expected a single commit, got %d", got)
	}
}
