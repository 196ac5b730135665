// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
)

type OpenConversationRequest struct {
	Participant1 string `json:"participant1" validate:"required"`
	Participant2 string `json:"participant2" validate:"required"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	Content        string `json:"content" validate:"notblank"`
}

type API struct {
	service ServiceInterface
	hub     *Hub
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, hub *Hub, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		hub:     hub,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/chat/conversation", a.openConversation)
	mux.Get("/chat/conversations/{accountId}", a.listConversations)
	mux.Get("/chat/messages/{conversationId}", a.listMessages)
	mux.Post("/chat/messages", a.sendMessage)
	if a.hub != nil {
		mux.Get("/chat/ws", a.hub.ServeWS)
	}
}

func (a *API) openConversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	var req OpenConversationRequest
	if err := httptypes.DecodeAndValidate(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	conversation, err := a.service.OpenConversation(r.Context(), actor, req.Participant1, req.Participant2)
	if err != nil {
		a.logger.Debugf("failed to open conversation: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", conversation)
}

func (a *API) listConversations(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	conversations, err := a.service.ListConversations(r.Context(), actor, chi.URLParam(r, "accountId"))
	if err != nil {
		a.logger.Debugf("failed to list conversations: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", conversations)
}

func (a *API) listMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	messages, err := a.service.ListMessages(r.Context(), actor, chi.URLParam(r, "conversationId"))
	if err != nil {
		a.logger.Debugf("failed to list messages: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, "", messages)
}

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := httptypes.DecodeAndValidate(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	msg, err := a.service.SendMessage(r.Context(), actor, req.ConversationID, req.Content)
	if err != nil {
		a.logger.Debugf("failed to send message: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, "", msg)
}
