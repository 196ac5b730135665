// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"},
			expected: ErrDuplicateKey,
		},
		{
			name:     "foreign key violation",
			err:      fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503"}),
			expected: ErrForeignKeyViolation,
		},
		{
			name:     "malformed uuid",
			err:      &pgconn.PgError{Code: "22P02"},
			expected: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapWriteError(tt.err, "insert account"); !errors.Is(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMapReadError(t *testing.T) {
	if err := mapReadError(sql.ErrNoRows, "get note"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	other := errors.New("connection reset")
	err := mapReadError(other, "get note")
	if errors.Is(err, ErrNotFound) || !errors.Is(err, other) {
		t.Errorf("expected wrapped original error, got %v", err)
	}
}

func TestWrapDuplicateKeyError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	if err := WrapDuplicateKeyError(pgErr, "join code"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}

	plain := errors.New("boom")
	if err := WrapDuplicateKeyError(plain, "join code"); err != plain {
		t.Errorf("expected error to pass through unchanged, got %v", err)
	}
}

func TestSplitIDs(t *testing.T) {
	if ids := splitIDs(""); len(ids) != 0 {
		t.Errorf("expected empty slice, got %v", ids)
	}
	if ids := splitIDs("a,b,c"); len(ids) != 3 || ids[2] != "c" {
		t.Errorf("unexpected split result %v", ids)
	}
}

func TestOrderedPair(t *testing.T) {
	low, high := orderedPair("B0", "a1")
	if low != "a1" || high != "b0" {
		t.Errorf("expected (a1, b0), got (%s, %s)", low, high)
	}

	low2, high2 := orderedPair("a1", "b0")
	if low2 != low || high2 != high {
		t.Error("expected pair ordering to be insensitive to argument order")
	}
}
