// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/edumart/internal/types"
)

func (s *Storage) CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateNotification")
	defer span.End()

	id, err := newID("notification")
	if err != nil {
		return nil, err
	}

	var recipient any
	if n.RecipientID != "" {
		recipient = n.RecipientID
	}

	created := types.Notification{TenantID: n.TenantID, RecipientID: n.RecipientID, Message: n.Message, Kind: n.Kind}
	err = s.db.Statement(ctx).
		Insert("notifications").
		Columns("id", "tenant_id", "recipient_id", "message", "kind").
		Values(id, n.TenantID, recipient, n.Message, n.Kind).
		Suffix("RETURNING id, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		return nil, mapWriteError(err, "insert notification")
	}
	return &created, nil
}

// notificationQuery resolves the read flag for accountID: the row's own flag for
// personal notices, membership in notification_reads for broadcasts.
func (s *Storage) notificationQuery(ctx context.Context, accountID string) sq.SelectBuilder {
	return s.db.Statement(ctx).
		Select("n.id", "n.tenant_id", "COALESCE(n.recipient_id::text, '')", "n.message", "n.kind").
		Column(sq.Expr(
			"CASE WHEN n.recipient_id IS NULL THEN EXISTS (SELECT 1 FROM notification_reads r WHERE r.notification_id = n.id AND r.account_id = ?) ELSE n.read END",
			accountID,
		)).
		Column("n.created_at").
		From("notifications n")
}

func scanNotification(row scanner) (*types.Notification, error) {
	var n types.Notification
	if err := row.Scan(&n.ID, &n.TenantID, &n.RecipientID, &n.Message, &n.Kind, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetNotification loads a notification with its read state for accountID.
func (s *Storage) GetNotification(ctx context.Context, id, accountID string) (*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetNotification")
	defer span.End()

	row := s.notificationQuery(ctx, accountID).
		Where(sq.Eq{"n.id": id}).
		QueryRowContext(ctx)

	n, err := scanNotification(row)
	if err != nil {
		return nil, mapReadError(err, "get notification")
	}
	return n, nil
}

// ListNotificationFeed merges the account's personal notices with its school's
// broadcasts, newest first, capped at limit.
func (s *Storage) ListNotificationFeed(ctx context.Context, accountID, tenantID string, limit uint64) ([]*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListNotificationFeed")
	defer span.End()

	rows, err := s.notificationQuery(ctx, accountID).
		Where(sq.Or{
			sq.Eq{"n.recipient_id": accountID},
			sq.And{sq.Eq{"n.recipient_id": nil}, sq.Eq{"n.tenant_id": tenantID}},
		}).
		OrderBy("n.created_at DESC", "n.id DESC").
		Limit(limit).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	feed := make([]*types.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		feed = append(feed, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return feed, nil
}

func (s *Storage) MarkPersonalRead(ctx context.Context, id, accountID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkPersonalRead")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("notifications").
		Set("read", true).
		Where(sq.Eq{"id": id, "recipient_id": accountID}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "mark notification read")
	}
	return nil
}

// AddBroadcastRead acknowledges a broadcast for accountID; repeating it is a no-op.
func (s *Storage) AddBroadcastRead(ctx context.Context, id, accountID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.AddBroadcastRead")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("notification_reads").
		Columns("notification_id", "account_id").
		Values(id, accountID).
		Suffix("ON CONFLICT (notification_id, account_id) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "insert notification read")
	}
	return nil
}

func (s *Storage) MarkAllPersonalRead(ctx context.Context, accountID string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.MarkAllPersonalRead")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("notifications").
		Set("read", true).
		Where(sq.Eq{"recipient_id": accountID, "read": false}).
		ExecContext(ctx)

	if err != nil {
		return 0, mapWriteError(err, "mark all personal notifications read")
	}
	return res.RowsAffected()
}

// MarkAllBroadcastsRead acknowledges every school broadcast not yet read by accountID.
func (s *Storage) MarkAllBroadcastsRead(ctx context.Context, accountID, tenantID string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.MarkAllBroadcastsRead")
	defer span.End()

	unread := sq.Select("n.id").
		Column(sq.Expr("CAST(? AS UUID)", accountID)).
		From("notifications n").
		Where(sq.Eq{"n.recipient_id": nil, "n.tenant_id": tenantID})

	res, err := s.db.Statement(ctx).
		Insert("notification_reads").
		Columns("notification_id", "account_id").
		Select(unread).
		Suffix("ON CONFLICT (notification_id, account_id) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return 0, mapWriteError(err, "mark all broadcasts read")
	}
	return res.RowsAffected()
}
