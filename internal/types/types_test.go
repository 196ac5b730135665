// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
	"time"
)

func TestValidCohort(t *testing.T) {
	tests := []struct {
		cohort string
		valid  bool
	}{
		{"", true},
		{"Red", true},
		{"Yellow", true},
		{"red", false},
		{"Purple", false},
	}

	for _, tt := range tests {
		t.Run(tt.cohort, func(t *testing.T) {
			if got := ValidCohort(tt.cohort); got != tt.valid {
				t.Errorf("ValidCohort(%q) = %v, want %v", tt.cohort, got, tt.valid)
			}
		})
	}
}

func TestPollIsOpen(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt time.Time
		open      bool
	}{
		{"future expiry", now.Add(time.Hour), true},
		{"expiry equal to now is closed", now, false},
		{"past expiry", now.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Poll{ExpiresAt: tt.expiresAt}
			if got := p.IsOpen(now); got != tt.open {
				t.Errorf("IsOpen() = %v, want %v", got, tt.open)
			}
		})
	}
}

func TestNotificationIsBroadcast(t *testing.T) {
	if !(&Notification{TenantID: "school-1"}).IsBroadcast() {
		t.Error("expected notification without recipient to be a broadcast")
	}
	if (&Notification{TenantID: "school-1", RecipientID: "acc-1"}).IsBroadcast() {
		t.Error("expected notification with recipient to be personal")
	}
}

func TestMembership(t *testing.T) {
	c := &Club{MemberIDs: []string{"a", "b"}}
	if !c.HasMember("a") || c.HasMember("z") {
		t.Error("unexpected club membership result")
	}

	conv := &Conversation{ParticipantIDs: []string{"a", "b"}}
	if !conv.HasParticipant("b") || conv.HasParticipant("c") {
		t.Error("unexpected conversation participant result")
	}
}
