// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

type NoteInput struct {
	Title      string `json:"title" validate:"notblank,max=160"`
	Subject    string `json:"subject" validate:"notblank,max=80"`
	ContentURL string `json:"pdfUrl" validate:"required,url,max=2048"`
	Price      int    `json:"price" validate:"min=0"`
}

type NotePatch struct {
	Title      *string `json:"title" validate:"omitempty,notblank,max=160"`
	Subject    *string `json:"subject" validate:"omitempty,notblank,max=80"`
	ContentURL *string `json:"pdfUrl" validate:"omitempty,url,max=2048"`
	Price      *int    `json:"price" validate:"omitempty,min=0"`
}

func (p *NotePatch) apply(n *types.Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Subject != nil {
		n.Subject = *p.Subject
	}
	if p.ContentURL != nil {
		n.ContentURL = *p.ContentURL
	}
	if p.Price != nil {
		n.Price = *p.Price
	}
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage   StorageInterface
	authz     AuthzInterface
	ledger    LedgerInterface
	notifier  NotifierInterface
	messenger MessengerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListNotes(ctx context.Context, actor identity.Actor) ([]*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.ListNotes")
	defer span.End()

	notes, err := s.storage.ListNotes(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching notes")
	}

	return notes, nil
}

// UploadNote stores a note authored by the caller and announces it to the school.
func (s *Service) UploadNote(ctx context.Context, actor identity.Actor, in *NoteInput) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.UploadNote")
	defer span.End()

	if in.Price < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}

	var created *types.Note
	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		n, err := s.storage.CreateNote(ctx, &types.Note{
			TenantID:   actor.TenantID,
			AuthorID:   actor.AccountID,
			Title:      in.Title,
			Subject:    in.Subject,
			ContentURL: in.ContentURL,
			Price:      in.Price,
		})
		if err != nil {
			return apperr.Internal(err, "Server error uploading note")
		}

		msg := fmt.Sprintf("New Study Material: %q in %s. Access the Vault!", n.Title, n.Subject)
		if _, err := s.notifier.Broadcast(ctx, actor.TenantID, types.NotificationSystem, msg); err != nil {
			return err
		}

		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) UpdateNote(ctx context.Context, actor identity.Actor, id string, patch *NotePatch) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.UpdateNote")
	defer span.End()

	n, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.CheckOwner(ctx, actor, n.TenantID, n.AuthorID, "note"); err != nil {
		return nil, err
	}

	patch.apply(n)
	if n.Price < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}

	updated, err := s.storage.UpdateNote(ctx, n)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("Note not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error updating note")
	}

	return updated, nil
}

func (s *Service) DeleteNote(ctx context.Context, actor identity.Actor, id string) error {
	ctx, span := s.tracer.Start(ctx, "notes.Service.DeleteNote")
	defer span.End()

	n, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authz.CheckOwner(ctx, actor, n.TenantID, n.AuthorID, "note"); err != nil {
		return err
	}

	err = s.storage.DeleteNote(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return apperr.Internal(err, "Server error deleting note")
	}

	return nil
}

// PurchaseNote unlocks a note for the caller, moving its price from the buyer
// to the author. The school then messages the buyer the access link; that
// message is best effort and never undoes the purchase.
func (s *Service) PurchaseNote(ctx context.Context, actor identity.Actor, id string) (*types.Purchase, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.PurchaseNote")
	defer span.End()

	var (
		note      *types.Note
		remaining int
	)

	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		n, err := s.load(ctx, id)
		if err != nil {
			return err
		}

		if err := s.authz.CheckTenant(ctx, actor, n.TenantID, "note"); err != nil {
			return err
		}

		if slices.Contains(n.PurchaserIDs, actor.AccountID) {
			return apperr.Conflict("You already own this note")
		}

		if n.AuthorID == actor.AccountID {
			return apperr.Validation("You cannot buy your own note")
		}

		added, err := s.storage.AddNotePurchase(ctx, n.ID, actor.AccountID, n.Price)
		if err != nil {
			return apperr.Internal(err, "Server error purchasing note")
		}
		if !added {
			return apperr.Conflict("You already own this note")
		}

		remaining, err = s.ledger.Transfer(ctx, actor.AccountID, n.AuthorID, n.Price, ledger.ReasonNotePurchase)
		if err != nil {
			return err
		}

		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, actor, note)

	return &types.Purchase{NoteID: note.ID, Price: note.Price, RemainingPoints: remaining}, nil
}

func (s *Service) sendWelcome(ctx context.Context, actor identity.Actor, note *types.Note) {
	buyer, err := s.storage.GetAccountByID(ctx, actor.AccountID)
	if err != nil {
		s.logger.Warnf("failed to load buyer %s for unlock message: %v", actor.AccountID, err)
		return
	}

	content := fmt.Sprintf(
		"Success! Note Unlocked!\n\nHi %s! You have successfully unlocked %q.\n\nAccess Link: %s\n\nHappy studying and good luck with your exams!",
		buyer.Name, note.Title, note.ContentURL,
	)

	// the school account id is the school id
	if _, err := s.messenger.Deliver(ctx, note.TenantID, note.TenantID, actor.AccountID, content); err != nil {
		s.logger.Warnf("failed to deliver unlock message for note %s: %v", note.ID, err)
	}
}

func (s *Service) load(ctx context.Context, id string) (*types.Note, error) {
	n, err := s.storage.GetNote(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("Note not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching note")
	}
	return n, nil
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	ledger LedgerInterface,
	notifier NotifierInterface,
	messenger MessengerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   storage,
		authz:     authz,
		ledger:    ledger,
		notifier:  notifier,
		messenger: messenger,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}
