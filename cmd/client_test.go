// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/accounts"
)

func TestAPIClient_Leaderboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats/leaderboard" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"data":[{"house":"Red","totalPoints":250,"studentCount":3}]}`))
	}))
	defer srv.Close()

	entries, err := newAPIClient(srv.URL, "tok").Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Cohort != "Red" || entries[0].TotalPoints != 250 {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestAPIClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"kind":"unauthenticated","message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := newAPIClient(srv.URL, "").Login(context.Background(), &accounts.Credentials{Email: "a@b.c", Password: "x", Role: types.KindSchool})
	if err == nil || err.Error() != "api error (status 401): Invalid credentials" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNewAPIClient_NormalizesEndpoint(t *testing.T) {
	c := newAPIClient("localhost:8080/", "")
	if c.endpoint != "http://localhost:8080" {
		t.Errorf("unexpected endpoint %q", c.endpoint)
	}
}
