// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

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
	mux.Get("/notifications/{accountId}", a.list)
	mux.Put("/notifications/{id}/read", a.markRead)
	mux.Put("/notifications/mark-all-read/{accountId}", a.markAllRead)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	feed, err := a.service.ListFeed(r.Context(), actor, chi.URLParam(r, "accountId"))
	if err != nil {
		a.logger.Debugf("failed to list notifications: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", feed)
}

func (a *API) markRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	if err := a.service.MarkRead(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		a.logger.Debugf("failed to mark notification read: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "Notification marked as read", nil)
}

func (a *API) markAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	if err := a.service.MarkAllRead(r.Context(), actor, chi.URLParam(r, "accountId")); err != nil {
		a.logger.Debugf("failed to mark all notifications read: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "All notifications marked as read", nil)
}
