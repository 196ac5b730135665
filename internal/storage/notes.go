// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/edumart/internal/types"
)

var noteColumns = []string{
	"n.id", "n.tenant_id", "n.author_id", "a.name", "n.title", "n.subject",
	"n.content_url", "n.price", "n.created_at", "n.updated_at",
	"(SELECT COALESCE(string_agg(np.account_id::text, ',' ORDER BY np.created_at), '') FROM note_purchases np WHERE np.note_id = n.id)",
}

func scanNote(row scanner) (*types.Note, error) {
	var (
		n          types.Note
		purchasers string
	)
	err := row.Scan(
		&n.ID, &n.TenantID, &n.AuthorID, &n.AuthorName, &n.Title, &n.Subject,
		&n.ContentURL, &n.Price, &n.CreatedAt, &n.UpdatedAt, &purchasers,
	)
	if err != nil {
		return nil, err
	}
	n.PurchaserIDs = splitIDs(purchasers)
	return &n, nil
}

func (s *Storage) CreateNote(ctx context.Context, n *types.Note) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateNote")
	defer span.End()

	id, err := newID("note")
	if err != nil {
		return nil, err
	}

	_, err = s.db.Statement(ctx).
		Insert("notes").
		Columns("id", "tenant_id", "author_id", "title", "subject", "content_url", "price").
		Values(id, n.TenantID, n.AuthorID, n.Title, n.Subject, n.ContentURL, n.Price).
		ExecContext(ctx)

	if err != nil {
		return nil, mapWriteError(err, "insert note")
	}

	return s.GetNote(ctx, id)
}

func (s *Storage) GetNote(ctx context.Context, id string) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetNote")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(noteColumns...).
		From("notes n").
		Join("accounts a ON a.id = n.author_id").
		Where(sq.Eq{"n.id": id}).
		QueryRowContext(ctx)

	n, err := scanNote(row)
	if err != nil {
		return nil, mapReadError(err, "get note")
	}
	return n, nil
}

func (s *Storage) ListNotes(ctx context.Context, tenantID string) ([]*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListNotes")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(noteColumns...).
		From("notes n").
		Join("accounts a ON a.id = n.author_id").
		Where(sq.Eq{"n.tenant_id": tenantID}).
		OrderBy("n.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*types.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return notes, nil
}

func (s *Storage) UpdateNote(ctx context.Context, n *types.Note) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateNote")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("notes").
		SetMap(map[string]any{
			"title":       n.Title,
			"subject":     n.Subject,
			"content_url": n.ContentURL,
			"price":       n.Price,
			"updated_at":  sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": n.ID}).
		ExecContext(ctx)

	if err != nil {
		return nil, mapWriteError(err, "update note")
	}

	if rows, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	} else if rows == 0 {
		return nil, ErrNotFound
	}

	return s.GetNote(ctx, n.ID)
}

func (s *Storage) DeleteNote(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteNote")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("notes").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "delete note")
	}
	return nil
}

// AddNotePurchase records that accountID unlocked noteID.
// It returns false when the purchase already existed.
func (s *Storage) AddNotePurchase(ctx context.Context, noteID, accountID string, price int) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddNotePurchase")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Insert("note_purchases").
		Columns("note_id", "account_id", "price_paid").
		Values(noteID, accountID, price).
		Suffix("ON CONFLICT (note_id, account_id) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return false, mapWriteError(err, "insert note purchase")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows == 1, nil
}
