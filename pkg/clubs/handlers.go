// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package clubs

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
)

type PostRequest struct {
	Content string `json:"content" validate:"notblank"`
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
	mux.Get("/clubs", a.list)
	mux.Post("/clubs", a.create)
	mux.Get("/clubs/{id}", a.get)
	mux.Put("/clubs/join/{id}", a.join)
	mux.Put("/clubs/leave/{id}", a.leave)
	mux.Get("/clubs/{id}/posts", a.listPosts)
	mux.Post("/clubs/{id}/posts", a.createPost)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	clubs, err := a.service.ListClubs(r.Context(), actor)
	if err != nil {
		a.logger.Errorf("failed to list clubs: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", clubs)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	club, err := a.service.GetClub(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", club)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	in := new(ClubInput)
	if err := httptypes.DecodeAndValidate(r, in); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	club, err := a.service.CreateClub(r.Context(), actor, in)
	if err != nil {
		a.logger.Errorf("failed to create club: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "Club created!", club)
}

func (a *API) join(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	club, err := a.service.JoinClub(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Successfully joined the club!", club)
}

func (a *API) leave(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	club, err := a.service.LeaveClub(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Successfully left the club", club)
}

func (a *API) listPosts(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	posts, err := a.service.ListPosts(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", posts)
}

func (a *API) createPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	req := new(PostRequest)
	if err := httptypes.DecodeAndValidate(r, req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	post, err := a.service.CreatePost(r.Context(), actor, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "", post)
}
