// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

// ListingInput holds the fields of a new listing.
type ListingInput struct {
	Title       string `json:"title" validate:"notblank,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Price       int    `json:"price" validate:"min=0"`
	Category    string `json:"category" validate:"max=60"`
	Condition   string `json:"condition" validate:"max=60"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,max=2048"`
}

// ListingPatch holds the fields to change; nil fields are left untouched.
type ListingPatch struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       *int    `json:"price" validate:"omitempty,min=0"`
	Category    *string `json:"category" validate:"omitempty,max=60"`
	Condition   *string `json:"condition" validate:"omitempty,max=60"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=2048"`
}

func (p *ListingPatch) apply(l *types.Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Condition != nil {
		l.Condition = *p.Condition
	}
	if p.ImageURL != nil {
		l.ImageURL = *p.ImageURL
	}
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

func (s *Service) ListListings(ctx context.Context, actor identity.Actor) ([]*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "market.Service.ListListings")
	defer span.End()

	listings, err := s.storage.ListListings(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Error fetching items")
	}

	return listings, nil
}

func (s *Service) GetListing(ctx context.Context, actor identity.Actor, id string) (*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "market.Service.GetListing")
	defer span.End()

	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.CheckTenant(ctx, actor, l.TenantID, "listing"); err != nil {
		return nil, err
	}

	return l, nil
}

// CreateListing stores a listing owned by the caller and rewards the owner.
func (s *Service) CreateListing(ctx context.Context, actor identity.Actor, in *ListingInput) (*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "market.Service.CreateListing")
	defer span.End()

	if in.Price < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}

	var created *types.Listing
	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		l, err := s.storage.CreateListing(ctx, &types.Listing{
			TenantID:    actor.TenantID,
			OwnerID:     actor.AccountID,
			Title:       in.Title,
			Description: in.Description,
			Price:       in.Price,
			Category:    in.Category,
			Condition:   in.Condition,
			ImageURL:    in.ImageURL,
		})
		if err != nil {
			return apperr.Internal(err, "Error creating item")
		}

		if _, err := s.ledger.Credit(ctx, actor.AccountID, ledger.ListingReward, ledger.ReasonItemListed); err != nil {
			return err
		}

		msg := fmt.Sprintf("New on the Mart: %q for %d points", l.Title, l.Price)
		if _, err := s.notifier.Broadcast(ctx, actor.TenantID, types.NotificationMarket, msg); err != nil {
			return err
		}

		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) UpdateListing(ctx context.Context, actor identity.Actor, id string, patch *ListingPatch) (*types.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "market.Service.UpdateListing")
	defer span.End()

	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.CheckOwner(ctx, actor, l.TenantID, l.OwnerID, "listing"); err != nil {
		return nil, err
	}

	patch.apply(l)
	if l.Price < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}

	updated, err := s.storage.UpdateListing(ctx, l)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("Item not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Error updating item")
	}

	return updated, nil
}

func (s *Service) DeleteListing(ctx context.Context, actor identity.Actor, id string) error {
	ctx, span := s.tracer.Start(ctx, "market.Service.DeleteListing")
	defer span.End()

	l, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authz.CheckOwner(ctx, actor, l.TenantID, l.OwnerID, "listing"); err != nil {
		return err
	}

	err = s.storage.DeleteListing(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return apperr.Internal(err, "Error deleting item")
	}

	return nil
}

func (s *Service) load(ctx context.Context, id string) (*types.Listing, error) {
	l, err := s.storage.GetListing(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("Item not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Error fetching item details")
	}
	return l, nil
}

func NewService(storage StorageInterface, authz AuthzInterface, ledger LedgerInterface, notifier NotifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
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
