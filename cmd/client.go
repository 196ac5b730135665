// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/accounts"
)

// apiClient talks to a running EduMart server over its REST surface.
type apiClient struct {
	endpoint string
	token    string
	http     *http.Client
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Kind    string          `json:"kind"`
}

func newAPIClient(endpoint, token string) *apiClient {
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	return &apiClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, out)
}

func (c *apiClient) handleResponse(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	e := new(envelope)
	if err := json.Unmarshal(raw, e); err != nil {
		return fmt.Errorf("failed to unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, e.Message)
	}

	if out != nil && len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal data: %w", err)
		}
	}
	return nil
}

func (c *apiClient) RegisterSchool(ctx context.Context, in *accounts.SchoolRegistration) (*accounts.Session, error) {
	out := new(accounts.Session)
	if err := c.do(ctx, http.MethodPost, "/api/auth/register-school", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) Login(ctx context.Context, in *accounts.Credentials) (*accounts.Session, error) {
	out := new(accounts.Session)
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) Leaderboard(ctx context.Context) ([]*types.LeaderboardEntry, error) {
	out := make([]*types.LeaderboardEntry, 0)
	if err := c.do(ctx, http.MethodGet, "/api/stats/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) Stats(ctx context.Context) (*types.AdminStats, error) {
	out := new(types.AdminStats)
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
