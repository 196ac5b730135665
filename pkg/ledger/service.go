// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"context"
	"errors"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
)

// Reason labels a balance change in the points metric.
type Reason string

const (
	ReasonClubFounded  Reason = "club_founded"
	ReasonItemListed   Reason = "item_listed"
	ReasonPollVote     Reason = "poll_vote"
	ReasonNotePurchase Reason = "note_purchase"
)

const (
	ClubFoundingReward = 50
	ListingReward      = 10
	PollVoteReward     = 1
)

// Service applies signed point deltas to single accounts. Callers that need
// several deltas to land together run them inside storage.WithTx.
type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Credit adds amount to the account and returns the new balance.
func (s *Service) Credit(ctx context.Context, accountID string, amount int, reason Reason) (int, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.Credit")
	defer span.End()

	if amount <= 0 {
		return 0, apperr.Validation("credit amount must be positive")
	}

	balance, err := s.storage.AdjustPoints(ctx, accountID, amount)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, apperr.NotFound("Account not found")
	}
	if err != nil {
		return 0, apperr.Internal(err, "failed to credit points")
	}

	s.record(reason, "credit", amount)
	return balance, nil
}

// Transfer moves amount from one account to another and returns the payer's
// remaining balance. The debit is refused when the payer cannot cover it.
func (s *Service) Transfer(ctx context.Context, fromID, toID string, amount int, reason Reason) (int, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.Transfer")
	defer span.End()

	if amount < 0 {
		return 0, apperr.Validation("transfer amount cannot be negative")
	}

	if amount == 0 {
		account, err := s.storage.GetAccountByID(ctx, fromID)
		if err != nil {
			return 0, s.accountError(err)
		}
		return account.Points, nil
	}

	remaining, err := s.storage.DebitPoints(ctx, fromID, amount)
	if errors.Is(err, storage.ErrConditionFailed) {
		return 0, s.insufficient(ctx, fromID, amount)
	}
	if err != nil {
		return 0, s.accountError(err)
	}

	if _, err := s.storage.AdjustPoints(ctx, toID, amount); err != nil {
		return 0, s.accountError(err)
	}

	s.record(reason, "debit", amount)
	s.record(reason, "credit", amount)

	return remaining, nil
}

func (s *Service) insufficient(ctx context.Context, accountID string, required int) error {
	account, err := s.storage.GetAccountByID(ctx, accountID)
	if err != nil {
		return s.accountError(err)
	}
	return apperr.Conflict("Insufficient points. You need %d points but only have %d", required, account.Points)
}

func (s *Service) accountError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("Account not found")
	}
	return apperr.Internal(err, "failed to move points")
}

func (s *Service) record(reason Reason, direction string, amount int) {
	labels := map[string]string{"reason": string(reason), "direction": direction}
	if err := s.monitor.AddPointsMetric(labels, float64(amount)); err != nil {
		s.logger.Debugf("failed to record points metric: %v", err)
	}
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
