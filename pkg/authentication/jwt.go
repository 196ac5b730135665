// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

const minSecretLength = 32

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrWeakSecret       = fmt.Errorf("secret key must be at least %d characters", minSecretLength)
)

// Claims identify the account a token was issued to. TenantID is the only
// source of tenant context for authenticated requests.
type Claims struct {
	Kind     types.AccountKind `json:"kind"`
	TenantID string            `json:"tenant_id"`
	Cohort   string            `json:"cohort,omitempty"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
	now      func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *JWTManager) IssueToken(ctx context.Context, account *types.Account) (string, error) {
	_, span := m.tracer.Start(ctx, "authentication.JWTManager.IssueToken")
	defer span.End()

	now := m.now()
	claims := &Claims{
		Kind:     account.Kind,
		TenantID: account.TenantID,
		Cohort:   account.Cohort,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (m *JWTManager) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	_, span := m.tracer.Start(ctx, "authentication.JWTManager.VerifyToken")
	defer span.End()

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidAlgorithm
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		m.logger.Debugf("token parsing failed: %v", err)
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.TenantID == "" || !claims.Kind.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func NewJWTManager(secret, issuer string, lifetime time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*JWTManager, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}

	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", lifetime)
	}

	m := new(JWTManager)
	m.secret = []byte(secret)
	m.issuer = issuer
	m.lifetime = lifetime
	m.now = time.Now

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m, nil
}
