// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrConditionFailed is returned when a guarded update matched no row.
	ErrConditionFailed = errors.New("update condition not met")
)

// PostgreSQL error codes
const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeInvalidText         = "22P02"
)

// IsDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	return hasPgCode(err, pgErrCodeUniqueViolation)
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgErrCodeForeignKeyViolation)
}

// isInvalidIdentifier reports a malformed uuid literal, which can only come from a client-supplied id.
func isInvalidIdentifier(err error) bool {
	return hasPgCode(err, pgErrCodeInvalidText)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// WrapDuplicateKeyError wraps a duplicate key error with context about which constraint was violated.
func WrapDuplicateKeyError(err error, context string) error {
	if !IsDuplicateKeyError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", context, ErrDuplicateKey)
}

// WrapForeignKeyError wraps a foreign key violation with context.
func WrapForeignKeyError(err error, context string) error {
	if !IsForeignKeyViolation(err) {
		return err
	}
	return fmt.Errorf("%s: %w", context, ErrForeignKeyViolation)
}

// mapReadError converts lookups that cannot match into ErrNotFound.
func mapReadError(err error, action string) error {
	if isNoRows(err) || isInvalidIdentifier(err) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// mapWriteError converts constraint violations into sentinel errors.
func mapWriteError(err error, action string) error {
	switch {
	case IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", action, ErrDuplicateKey)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", action, ErrForeignKeyViolation)
	case isInvalidIdentifier(err):
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
