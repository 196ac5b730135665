// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "sys_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "sys_shutdown"))
}

func (s *SecurityLogger) AuthnSuccess(accountID string) {
	s.l.Info("authentication succeeded",
		zap.String("event", "authn_login_success"),
		zap.String("account_id", accountID),
	)
}

func (s *SecurityLogger) AuthnFailure(email, reason string) {
	s.l.Warn("authentication failed",
		zap.String("event", "authn_login_fail"),
		zap.String("email", email),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(accountID, resource string) {
	s.l.Warn("authorization failed",
		zap.String("event", "authz_fail"),
		zap.String("account_id", accountID),
		zap.String("resource", resource),
	)
}

func (s *SecurityLogger) AdminAction(adminID, action, target string) {
	s.l.Info("admin action",
		zap.String("event", "admin_action"),
		zap.String("admin_id", adminID),
		zap.String("action", action),
		zap.String("target", target),
	)
}
