// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(map[string]string, float64) error
	SetDependencyAvailability(map[string]string, float64) error
	// AddPointsMetric accumulates points moved by the ledger, labelled by reason.
	AddPointsMetric(map[string]string, float64) error
}
