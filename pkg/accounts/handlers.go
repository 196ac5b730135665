// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"errors"
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

// RegisterEndpoints mounts the anonymous registration and login routes.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/auth/register-school", a.registerSchool)
	mux.Post("/auth/register-student", a.registerStudent)
	mux.Post("/auth/login", a.login)
}

// RegisterAuthenticatedEndpoints mounts the routes that need a verified caller.
func (a *API) RegisterAuthenticatedEndpoints(mux chi.Router) {
	mux.Get("/auth/me", a.me)
}

func (a *API) registerSchool(w http.ResponseWriter, r *http.Request) {
	in := new(SchoolRegistration)
	if err := httptypes.DecodeAndValidate(r, in); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	session, err := a.service.RegisterSchool(r.Context(), in)
	if err != nil {
		a.logger.Errorf("failed to register school: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "School registered", session)
}

func (a *API) registerStudent(w http.ResponseWriter, r *http.Request) {
	in := new(StudentRegistration)
	if err := httptypes.DecodeAndValidate(r, in); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	session, err := a.service.RegisterStudent(r.Context(), in)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "Student registered", session)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	in := new(Credentials)
	if err := httptypes.DecodeAndValidate(r, in); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	session, err := a.service.Login(r.Context(), in)
	if errors.Is(err, ErrInvalidCredentials) {
		httptypes.WriteUnauthenticated(w, "Invalid credentials")
		return
	}
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", session)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	account, err := a.service.Me(r.Context(), actor)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", account)
}
