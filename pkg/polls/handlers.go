// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package polls

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
)

type VoteRequest struct {
	OptionIndex *int `json:"optionIndex" validate:"required,min=0"`
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
	mux.Get("/polls", a.list)
	mux.Get("/polls/{id}", a.get)
	mux.Post("/polls/create", a.create)
	mux.Put("/polls/vote/{id}", a.vote)
	mux.Put("/polls/{id}/end", a.end)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	polls, err := a.service.ListPolls(r.Context(), actor)
	if err != nil {
		a.logger.Errorf("failed to list polls: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", polls)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	poll, err := a.service.GetPoll(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", poll)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	in := new(PollInput)
	if err := httptypes.DecodeAndValidate(r, in); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	poll, err := a.service.CreatePoll(r.Context(), actor, in)
	if err != nil {
		a.logger.Errorf("failed to create poll: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "Poll created successfully", poll)
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

	poll, err := a.service.Vote(r.Context(), actor, chi.URLParam(r, "id"), *req.OptionIndex)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Vote recorded!", poll)
}

func (a *API) end(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	poll, err := a.service.EndPoll(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Poll ended successfully", poll)
}
