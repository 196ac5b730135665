// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/edumart/internal/types"
)

var listingColumns = []string{
	"l.id", "l.tenant_id", "l.owner_id", "a.name", "l.title", "l.description",
	"l.price", "l.category", "l.condition", "l.image_url", "l.created_at", "l.updated_at",
}

func scanListing(row scanner) (*types.Listing, error) {
	var l types.Listing
	err := row.Scan(
		&l.ID, &l.TenantID, &l.OwnerID, &l.OwnerName, &l.Title, &l.Description,
		&l.Price, &l.Category, &l.Condition, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Storage) CreateListing(ctx context.Context, l *types.Listing) (*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateListing")
	defer span.End()

	id, err := newID("listing")
	if err != nil {
		return nil, err
	}

	_, err = s.db.Statement(ctx).
		Insert("listings").
		Columns("id", "tenant_id", "owner_id", "title", "description", "price", "category", "condition", "image_url").
		Values(id, l.TenantID, l.OwnerID, l.Title, l.Description, l.Price, l.Category, l.Condition, l.ImageURL).
		ExecContext(ctx)

	if err != nil {
		return nil, mapWriteError(err, "insert listing")
	}

	return s.GetListing(ctx, id)
}

func (s *Storage) GetListing(ctx context.Context, id string) (*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetListing")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(listingColumns...).
		From("listings l").
		Join("accounts a ON a.id = l.owner_id").
		Where(sq.Eq{"l.id": id}).
		QueryRowContext(ctx)

	l, err := scanListing(row)
	if err != nil {
		return nil, mapReadError(err, "get listing")
	}
	return l, nil
}

// ListListings returns the school's listings, newest first.
func (s *Storage) ListListings(ctx context.Context, tenantID string) ([]*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListListings")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(listingColumns...).
		From("listings l").
		Join("accounts a ON a.id = l.owner_id").
		Where(sq.Eq{"l.tenant_id": tenantID}).
		OrderBy("l.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*types.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return listings, nil
}

func (s *Storage) UpdateListing(ctx context.Context, l *types.Listing) (*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateListing")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("listings").
		SetMap(map[string]any{
			"title":       l.Title,
			"description": l.Description,
			"price":       l.Price,
			"category":    l.Category,
			"condition":   l.Condition,
			"image_url":   l.ImageURL,
			"updated_at":  sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": l.ID}).
		ExecContext(ctx)

	if err != nil {
		return nil, mapWriteError(err, "update listing")
	}

	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}

	return s.GetListing(ctx, l.ID)
}

func (s *Storage) DeleteListing(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteListing")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("listings").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "delete listing")
	}
	return nil
}

func (s *Storage) CountListings(ctx context.Context, tenantID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountListings")
	defer span.End()

	return s.count(ctx, "listings", sq.Eq{"tenant_id": tenantID})
}

func (s *Storage) count(ctx context.Context, table string, where sq.Sqlizer) (int, error) {
	var n int
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From(table).
		Where(where).
		QueryRowContext(ctx).
		Scan(&n)

	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
