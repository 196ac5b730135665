// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package polls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

type PollInput struct {
	Question      string   `json:"question" validate:"notblank,max=300"`
	Options       []string `json:"options" validate:"min=2,max=10,dive,notblank,max=200"`
	DurationHours int      `json:"durationHours" validate:"min=1,max=720"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	authz    AuthzInterface
	ledger   LedgerInterface
	notifier NotifierInterface

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListPolls(ctx context.Context, actor identity.Actor) ([]*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "polls.Service.ListPolls")
	defer span.End()

	polls, err := s.storage.ListPolls(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching polls")
	}

	return polls, nil
}

func (s *Service) GetPoll(ctx context.Context, actor identity.Actor, id string) (*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "polls.Service.GetPoll")
	defer span.End()

	return s.load(ctx, actor, id)
}

// CreatePoll opens a poll for DurationHours and announces it to the school.
func (s *Service) CreatePoll(ctx context.Context, actor identity.Actor, in *PollInput) (*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "polls.Service.CreatePoll")
	defer span.End()

	if len(in.Options) < 2 {
		return nil, apperr.Validation("a poll needs at least two options")
	}
	if in.DurationHours < 1 {
		return nil, apperr.Validation("durationHours must be at least 1")
	}

	options := make([]types.PollOption, 0, len(in.Options))
	for i, text := range in.Options {
		options = append(options, types.PollOption{Index: i, Text: text})
	}

	var created *types.Poll
	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.storage.CreatePoll(ctx, &types.Poll{
			TenantID:  actor.TenantID,
			CreatorID: actor.AccountID,
			Question:  in.Question,
			Options:   options,
			ExpiresAt: s.now().Add(time.Duration(in.DurationHours) * time.Hour),
		})
		if err != nil {
			return apperr.Internal(err, "Server error creating poll")
		}

		msg := fmt.Sprintf("New Poll Created: %q. Go vote now!", p.Question)
		if _, err := s.notifier.Broadcast(ctx, actor.TenantID, types.NotificationPoll, msg); err != nil {
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Vote records the caller's single ballot, rewards it with a point and tells
// the creator who voted.
func (s *Service) Vote(ctx context.Context, actor identity.Actor, id string, optionIndex int) (*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "polls.Service.Vote")
	defer span.End()

	var voted *types.Poll
	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.load(ctx, actor, id)
		if err != nil {
			return err
		}

		if !p.IsOpen(s.now()) {
			return apperr.Conflict("This poll has expired")
		}

		if optionIndex < 0 || optionIndex >= len(p.Options) {
			return apperr.Validation("Invalid option")
		}

		recorded, err := s.storage.RecordPollVote(ctx, p.ID, actor.AccountID, optionIndex)
		if err != nil {
			return apperr.Internal(err, "Server error recording vote")
		}
		if !recorded {
			return apperr.Conflict("You have already voted in this poll")
		}

		if err := s.storage.IncrementPollOption(ctx, p.ID, optionIndex); err != nil {
			return apperr.Internal(err, "Server error recording vote")
		}

		if _, err := s.ledger.Credit(ctx, actor.AccountID, ledger.PollVoteReward, ledger.ReasonPollVote); err != nil {
			return err
		}

		if p.CreatorID != actor.AccountID {
			if err := s.notifyCreator(ctx, actor, p); err != nil {
				return err
			}
		}

		voted, err = s.storage.GetPoll(ctx, p.ID)
		if err != nil {
			return apperr.Internal(err, "Server error recording vote")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return voted, nil
}

func (s *Service) notifyCreator(ctx context.Context, actor identity.Actor, p *types.Poll) error {
	voter, err := s.storage.GetAccountByID(ctx, actor.AccountID)
	if err != nil {
		return apperr.Internal(err, "Server error recording vote")
	}

	msg := fmt.Sprintf("%s voted on your poll: %q", voter.Name, p.Question)
	_, err = s.notifier.Notify(ctx, p.TenantID, p.CreatorID, types.NotificationPoll, msg)
	return err
}

// EndPoll closes the poll now. Only its creator may end it.
func (s *Service) EndPoll(ctx context.Context, actor identity.Actor, id string) (*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "polls.Service.EndPoll")
	defer span.End()

	p, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if p.CreatorID != actor.AccountID {
		s.logger.Security().AuthzFailure(actor.AccountID, "poll "+p.ID)
		return nil, apperr.Unauthorized("Only the creator can end this poll")
	}

	now := s.now()
	if !p.IsOpen(now) {
		return nil, apperr.Conflict("This poll has already ended")
	}

	if err := s.storage.SetPollExpiry(ctx, p.ID, now); err != nil {
		return nil, apperr.Internal(err, "Server error ending poll")
	}

	p.ExpiresAt = now
	return p, nil
}

func (s *Service) load(ctx context.Context, actor identity.Actor, id string) (*types.Poll, error) {
	p, err := s.storage.GetPoll(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("Poll not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching poll")
	}

	if err := s.authz.CheckTenant(ctx, actor, p.TenantID, "poll"); err != nil {
		return nil, err
	}

	return p, nil
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	ledger LedgerInterface,
	notifier NotifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.authz = authz
	s.ledger = ledger
	s.notifier = notifier
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
