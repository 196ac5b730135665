// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
)

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/notes", a.list)
	mux.Post("/notes/upload", a.upload)
	mux.Post("/notes/buy/{id}", a.buy)
	mux.Put("/notes/{id}", a.update)
	mux.Delete("/notes/{id}", a.delete)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	notes, err := a.service.ListNotes(r.Context(), actor)
	if err != nil {
		a.logger.Errorf("failed to list notes: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", notes)
}

func (a *API) upload(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	in := new(NoteInput)
	if err := httptypes.DecodeAndValidate(r, in); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	note, err := a.service.UploadNote(r.Context(), actor, in)
	if err != nil {
		a.logger.Errorf("failed to upload note: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "Note uploaded successfully!", note)
}

func (a *API) buy(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	purchase, err := a.service.PurchaseNote(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, fmt.Sprintf("Note unlocked successfully! %d points deducted.", purchase.Price), purchase)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	patch := new(NotePatch)
	if err := httptypes.DecodeAndValidate(r, patch); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	note, err := a.service.UpdateNote(r.Context(), actor, chi.URLParam(r, "id"), patch)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Note updated successfully!", note)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	if err := a.service.DeleteNote(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Note removed from vault.", nil)
}
