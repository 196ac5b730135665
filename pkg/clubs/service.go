// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package clubs

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

const maxPostLength = 2000

type ClubInput struct {
	Name        string `json:"name" validate:"notblank,max=80"`
	Description string `json:"description" validate:"max=1000"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	authz    AuthzInterface
	ledger   LedgerInterface
	notifier NotifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListClubs(ctx context.Context, actor identity.Actor) ([]*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "clubs.Service.ListClubs")
	defer span.End()

	clubs, err := s.storage.ListClubs(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching clubs")
	}

	return clubs, nil
}

// GetClub returns the club with the display names of its members.
func (s *Service) GetClub(ctx context.Context, actor identity.Actor, id string) (*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "clubs.Service.GetClub")
	defer span.End()

	c, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	members, err := s.storage.ListMembersOfClub(ctx, c.ID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching club details")
	}

	c.Members = members
	if c.Members == nil {
		c.Members = make([]types.Member, 0)
	}

	return c, nil
}

// CreateClub founds a club with the caller as its first member and rewards
// the founder.
func (s *Service) CreateClub(ctx context.Context, actor identity.Actor, in *ClubInput) (*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "clubs.Service.CreateClub")
	defer span.End()

	var created *types.Club
	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.storage.CreateClub(ctx, &types.Club{
			TenantID:    actor.TenantID,
			FounderID:   actor.AccountID,
			Name:        in.Name,
			Description: in.Description,
		})
		if err != nil {
			return apperr.Internal(err, "Server error creating club")
		}

		if _, err := s.storage.AddClubMember(ctx, c.ID, actor.AccountID); err != nil {
			return apperr.Internal(err, "Server error creating club")
		}

		if _, err := s.ledger.Credit(ctx, actor.AccountID, ledger.ClubFoundingReward, ledger.ReasonClubFounded); err != nil {
			return err
		}

		c.MemberIDs = []string{actor.AccountID}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) JoinClub(ctx context.Context, actor identity.Actor, id string) (*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "clubs.Service.JoinClub")
	defer span.End()

	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.load(ctx, actor, id)
		if err != nil {
			return err
		}

		added, err := s.storage.AddClubMember(ctx, c.ID, actor.AccountID)
		if err != nil {
			return apperr.Internal(err, "Server error joining club")
		}
		if !added {
			return apperr.Conflict("Already a member of this club")
		}

		if c.FounderID == actor.AccountID {
			return nil
		}

		member, err := s.storage.GetAccountByID(ctx, actor.AccountID)
		if err != nil {
			return apperr.Internal(err, "Server error joining club")
		}

		msg := fmt.Sprintf("%s joined your club %q", member.Name, c.Name)
		_, err = s.notifier.Notify(ctx, c.TenantID, c.FounderID, types.NotificationClub, msg)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.GetClub(ctx, actor, id)
}

// LeaveClub removes the caller from the club. Founders may leave too; the
// club keeps its founder reference.
func (s *Service) LeaveClub(ctx context.Context, actor identity.Actor, id string) (*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "clubs.Service.LeaveClub")
	defer span.End()

	c, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	removed, err := s.storage.RemoveClubMember(ctx, c.ID, actor.AccountID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error leaving club")
	}
	if !removed {
		return nil, apperr.Validation("Not a member of this club")
	}

	return s.GetClub(ctx, actor, id)
}

func (s *Service) ListPosts(ctx context.Context, actor identity.Actor, clubID string) ([]*types.ClubPost, error) {
	ctx, span := s.tracer.Start(ctx, "clubs.Service.ListPosts")
	defer span.End()

	if _, err := s.member(ctx, actor, clubID); err != nil {
		return nil, err
	}

	posts, err := s.storage.ListClubPosts(ctx, clubID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching club messages")
	}

	return posts, nil
}

func (s *Service) CreatePost(ctx context.Context, actor identity.Actor, clubID, content string) (*types.ClubPost, error) {
	ctx, span := s.tracer.Start(ctx, "clubs.Service.CreatePost")
	defer span.End()

	if utf8.RuneCountInString(content) > maxPostLength {
		return nil, apperr.Validation("message cannot exceed %d characters", maxPostLength)
	}

	c, err := s.member(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}

	post, err := s.storage.CreateClubPost(ctx, &types.ClubPost{
		ClubID:   c.ID,
		TenantID: c.TenantID,
		AuthorID: actor.AccountID,
		Content:  content,
	})
	if err != nil {
		return nil, apperr.Internal(err, "Server error sending club message")
	}

	return post, nil
}

func (s *Service) member(ctx context.Context, actor identity.Actor, clubID string) (*types.Club, error) {
	c, err := s.load(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}

	if !c.HasMember(actor.AccountID) {
		s.logger.Security().AuthzFailure(actor.AccountID, "club wall "+c.ID)
		return nil, apperr.Unauthorized("Only club members can access the club wall")
	}

	return c, nil
}

func (s *Service) load(ctx context.Context, actor identity.Actor, id string) (*types.Club, error) {
	c, err := s.storage.GetClub(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("Club not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching club details")
	}

	if err := s.authz.CheckTenant(ctx, actor, c.TenantID, "club"); err != nil {
		return nil, err
	}

	return c, nil
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

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
