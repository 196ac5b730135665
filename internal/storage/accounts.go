// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/edumart/internal/types"
)

var accountColumns = []string{
	"a.id", "a.tenant_id", "a.name", "a.email", "a.password_hash", "a.kind",
	"a.points", "a.cohort", "a.suspended", "a.created_at",
	"(SELECT COALESCE(string_agg(cm.club_id::text, ',' ORDER BY cm.joined_at), '') FROM club_members cm WHERE cm.account_id = a.id)",
	"(SELECT COALESCE(string_agg(np.note_id::text, ',' ORDER BY np.created_at), '') FROM note_purchases np WHERE np.account_id = a.id)",
}

func scanAccount(row scanner) (*types.Account, error) {
	var (
		a       types.Account
		cohort  sql.NullString
		clubIDs string
		noteIDs string
	)

	err := row.Scan(
		&a.ID, &a.TenantID, &a.Name, &a.Email, &a.PasswordHash, &a.Kind,
		&a.Points, &cohort, &a.Suspended, &a.CreatedAt,
		&clubIDs, &noteIDs,
	)
	if err != nil {
		return nil, err
	}

	a.Cohort = cohort.String
	a.JoinedClubIDs = splitIDs(clubIDs)
	a.UnlockedNoteIDs = splitIDs(noteIDs)

	return &a, nil
}

func (s *Storage) CreateSchool(ctx context.Context, school *types.School) (*types.School, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSchool")
	defer span.End()

	id, err := newID("school")
	if err != nil {
		return nil, err
	}

	created := *school
	err = s.db.Statement(ctx).
		Insert("schools").
		Columns("id", "name", "join_code").
		Values(id, school.Name, school.JoinCode).
		Suffix("RETURNING id, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		return nil, mapWriteError(err, "insert school")
	}

	return &created, nil
}

func (s *Storage) GetSchoolByJoinCode(ctx context.Context, code string) (*types.School, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSchoolByJoinCode")
	defer span.End()

	return s.getSchool(ctx, sq.Eq{"s.join_code": code})
}

func (s *Storage) GetSchoolByID(ctx context.Context, id string) (*types.School, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSchoolByID")
	defer span.End()

	return s.getSchool(ctx, sq.Eq{"s.id": id})
}

func (s *Storage) getSchool(ctx context.Context, where sq.Sqlizer) (*types.School, error) {
	var school types.School
	var email sql.NullString
	err := s.db.Statement(ctx).
		Select("s.id", "s.name", "s.join_code", "s.created_at", "a.email").
		From("schools s").
		LeftJoin("accounts a ON a.id = s.id").
		Where(where).
		QueryRowContext(ctx).
		Scan(&school.ID, &school.Name, &school.JoinCode, &school.CreatedAt, &email)

	if err != nil {
		return nil, mapReadError(err, "get school")
	}

	school.Email = email.String
	return &school, nil
}

// CreateAccount inserts a, keeping a.ID when set so a school admin can share the school's id.
func (s *Storage) CreateAccount(ctx context.Context, a *types.Account) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAccount")
	defer span.End()

	id := a.ID
	if id == "" {
		var err error
		if id, err = newID("account"); err != nil {
			return nil, err
		}
	}

	var cohort any
	if a.Cohort != "" {
		cohort = a.Cohort
	}

	created := *a
	err := s.db.Statement(ctx).
		Insert("accounts").
		Columns("id", "tenant_id", "name", "email", "password_hash", "kind", "points", "cohort").
		Values(id, a.TenantID, a.Name, a.Email, a.PasswordHash, a.Kind, a.Points, cohort).
		Suffix("RETURNING id, suspended, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Suspended, &created.CreatedAt)

	if err != nil {
		return nil, mapWriteError(err, "insert account")
	}

	created.JoinedClubIDs = []string{}
	created.UnlockedNoteIDs = []string{}

	return &created, nil
}

func (s *Storage) GetAccountByID(ctx context.Context, id string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccountByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(accountColumns...).
		From("accounts a").
		Where(sq.Eq{"a.id": id}).
		QueryRowContext(ctx)

	a, err := scanAccount(row)
	if err != nil {
		return nil, mapReadError(err, "get account")
	}
	return a, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccountByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(accountColumns...).
		From("accounts a").
		Where(sq.Eq{"a.email": email}).
		QueryRowContext(ctx)

	a, err := scanAccount(row)
	if err != nil {
		return nil, mapReadError(err, "get account by email")
	}
	return a, nil
}

// ListStudents returns the school's students sorted by name.
func (s *Storage) ListStudents(ctx context.Context, tenantID string) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListStudents")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(accountColumns...).
		From("accounts a").
		Where(sq.Eq{"a.tenant_id": tenantID, "a.kind": types.KindStudent}).
		OrderBy("a.name ASC", "a.created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	accounts := make([]*types.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return accounts, nil
}

// ToggleSuspended flips the suspended flag of a student and returns the new value.
func (s *Storage) ToggleSuspended(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ToggleSuspended")
	defer span.End()

	var suspended bool
	err := s.db.Statement(ctx).
		Update("accounts").
		Set("suspended", sq.Expr("NOT suspended")).
		Where(sq.Eq{"id": id, "kind": types.KindStudent}).
		Suffix("RETURNING suspended").
		QueryRowContext(ctx).
		Scan(&suspended)

	if err != nil {
		return false, mapReadError(err, "toggle suspension")
	}
	return suspended, nil
}

// AdjustPoints applies delta to the balance and returns the new balance.
func (s *Storage) AdjustPoints(ctx context.Context, id string, delta int) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AdjustPoints")
	defer span.End()

	var balance int
	err := s.db.Statement(ctx).
		Update("accounts").
		Set("points", sq.Expr("points + ?", delta)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING points").
		QueryRowContext(ctx).
		Scan(&balance)

	if err != nil {
		return 0, mapReadError(err, "adjust points")
	}
	return balance, nil
}

// DebitPoints subtracts amount only if the balance covers it.
// ErrConditionFailed means the account exists but cannot afford amount.
func (s *Storage) DebitPoints(ctx context.Context, id string, amount int) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DebitPoints")
	defer span.End()

	var balance int
	err := s.db.Statement(ctx).
		Update("accounts").
		Set("points", sq.Expr("points - ?", amount)).
		Where(sq.Eq{"id": id}).
		Where(sq.GtOrEq{"points": amount}).
		Suffix("RETURNING points").
		QueryRowContext(ctx).
		Scan(&balance)

	if err == nil {
		return balance, nil
	}

	if !isNoRows(err) {
		return 0, mapReadError(err, "debit points")
	}

	if _, err := s.GetAccountByID(ctx, id); err != nil {
		return 0, err
	}
	return 0, ErrConditionFailed
}

// CohortTotals sums student balances per cohort; cohorts without students are absent.
func (s *Storage) CohortTotals(ctx context.Context, tenantID string) ([]*types.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CohortTotals")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("cohort", "COALESCE(SUM(points), 0)", "COUNT(*)").
		From("accounts").
		Where(sq.Eq{"tenant_id": tenantID, "kind": types.KindStudent}).
		Where(sq.NotEq{"cohort": nil}).
		GroupBy("cohort").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cohorts: %w", err)
	}
	defer rows.Close()

	entries := make([]*types.LeaderboardEntry, 0)
	for rows.Next() {
		var e types.LeaderboardEntry
		if err := rows.Scan(&e.Cohort, &e.TotalPoints, &e.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan cohort total: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func (s *Storage) CountStudents(ctx context.Context, tenantID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountStudents")
	defer span.End()

	return s.count(ctx, "accounts", sq.Eq{"tenant_id": tenantID, "kind": types.KindStudent})
}
