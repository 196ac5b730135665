// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package market

import (
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
	mux.Get("/items", a.list)
	mux.Post("/items", a.create)
	mux.Get("/items/{id}", a.get)
	mux.Put("/items/{id}", a.update)
	mux.Delete("/items/{id}", a.delete)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	listings, err := a.service.ListListings(r.Context(), actor)
	if err != nil {
		a.logger.Errorf("failed to list items: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", listings)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	listing, err := a.service.GetListing(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", listing)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	in := new(ListingInput)
	if err := httptypes.DecodeAndValidate(r, in); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	listing, err := a.service.CreateListing(r.Context(), actor, in)
	if err != nil {
		a.logger.Errorf("failed to create item: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "Item listed!", listing)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	patch := new(ListingPatch)
	if err := httptypes.DecodeAndValidate(r, patch); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	listing, err := a.service.UpdateListing(r.Context(), actor, chi.URLParam(r, "id"), patch)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Listing updated successfully!", listing)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	if err := a.service.DeleteListing(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Listing removed from Mart.", nil)
}
