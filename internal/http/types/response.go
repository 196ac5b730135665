// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/edumart/internal/apperr"
)

// Response is the envelope every successful API call answers with.
type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Status  int    `json:"status"`
}

// ErrorResponse is the envelope for failed API calls; Kind is stable across releases.
type ErrorResponse struct {
	Status  int         `json:"status"`
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// StatusFromKind maps an error kind to its HTTP status code.
func StatusFromKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized, apperr.KindSuspended:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteData answers with data wrapped in a Response.
func WriteData(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Response{Data: data, Message: message, Status: status})
}

// WriteError answers with the kind and caller-facing message carried by err.
// Errors outside the apperr taxonomy are reported as internal without detail.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err, "internal server error")
	}

	status := StatusFromKind(appErr.Kind)
	WriteJSON(w, status, ErrorResponse{Status: status, Kind: appErr.Kind, Message: appErr.Message})
}

// WriteUnauthenticated answers 401, which sits outside the apperr taxonomy since
// no actor exists yet.
func WriteUnauthenticated(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Status: http.StatusUnauthorized, Kind: "unauthenticated", Message: message})
}
