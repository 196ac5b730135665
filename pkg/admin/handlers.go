// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

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
	a := new(API)

	a.service = service
	a.logger = logger

	return a
}

// RegisterEndpoints mounts the admin routes. The caller wraps mux with a
// school-only guard.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/admin/stats", a.stats)
	mux.Get("/admin/students", a.students)
	mux.Get("/admin/clubs", a.clubs)
	mux.Put("/admin/ban-user/{id}", a.ban)
	mux.Delete("/admin/club/{id}", a.deleteClub)
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	stats, err := a.service.Stats(r.Context(), actor)
	if err != nil {
		a.logger.Errorf("failed to compute admin stats: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", stats)
}

func (a *API) students(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	students, err := a.service.ListStudents(r.Context(), actor)
	if err != nil {
		a.logger.Errorf("failed to list students: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", students)
}

func (a *API) clubs(w http.ResponseWriter, r *http.Request) {
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

func (a *API) ban(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	student, err := a.service.ToggleBan(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	state := "unbanned"
	if student.Suspended {
		state = "banned"
	}

	httptypes.WriteData(w, http.StatusOK, fmt.Sprintf("User %s successfully", state), student)
}

func (a *API) deleteClub(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	if err := a.service.DeleteClub(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Club deleted successfully", nil)
}
