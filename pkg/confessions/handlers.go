// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package confessions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/types"
)

type ConfessionRequest struct {
	Content string `json:"content" validate:"notblank,max=1000"`
}

type VoteRequest struct {
	Direction types.VoteDirection `json:"direction" validate:"required,oneof=up down"`
}

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.logger = logger

	return a
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/confessions", a.list)
	mux.Post("/confessions", a.create)
	mux.Post("/confessions/{id}/vote", a.vote)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	confessions, err := a.service.ListConfessions(r.Context(), actor)
	if err != nil {
		a.logger.Errorf("failed to list confessions: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", confessions)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	req := new(ConfessionRequest)
	if err := httptypes.DecodeAndValidate(r, req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	c, err := a.service.PostConfession(r.Context(), actor, req.Content)
	if err != nil {
		a.logger.Errorf("failed to post confession: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "Confession posted!", c)
}

func (a *API) vote(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	req := new(VoteRequest)
	if err := httptypes.DecodeAndValidate(r, req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	c, err := a.service.Vote(r.Context(), actor, chi.URLParam(r, "id"), req.Direction)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", c)
}
