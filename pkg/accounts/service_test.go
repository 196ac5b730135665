// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package accounts -destination ./mock_interfaces.go -source=./interfaces.go

func newService(ctrl *gomock.Controller) (*Service, *MockStorageInterface, *MockTokenIssuerInterface) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockTokens := NewMockTokenIssuerInterface(ctrl)

	svc := NewService(mockStorage, mockTokens, 100, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	svc.hashCost = bcrypt.MinCost
	return svc, mockStorage, mockTokens
}

func runTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	return string(hash)
}

func TestJoinCode(t *testing.T) {
	tests := []struct {
		attempt int
		pattern string
	}{
		{attempt: 0, pattern: `^SCH-[1-9][0-9]$`},
		{attempt: 19, pattern: `^SCH-[1-9][0-9]$`},
		{attempt: 20, pattern: `^SCH-[1-9][0-9]{3}$`},
		{attempt: 40, pattern: `^SCH-[1-9][0-9]{5}$`},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt %d", tt.attempt), func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			for range 50 {
				if code := joinCode(tt.attempt); !re.MatchString(code) {
					t.Fatalf("code %q does not match %s", code, tt.pattern)
				}
			}
		})
	}

	if got := normalizeJoinCode("  sch-42 "); got != "SCH-42" {
		t.Errorf("expected SCH-42, got %q", got)
	}
}

func TestService_RegisterSchool(t *testing.T) {
	in := &SchoolRegistration{Name: "Hillside High", Email: "Office@Hillside.edu", Password: "secret123"}

	tests := []struct {
		name       string
		setupMocks func(*MockStorageInterface, *MockTokenIssuerInterface)
		wantCodes  []string
		wantKind   apperr.Kind
	}{
		{
			name: "school and admin share an id",
			setupMocks: func(m *MockStorageInterface, tok *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "office@hillside.edu").Return(nil, storage.ErrNotFound)
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().CreateSchool(gomock.Any(), &types.School{Name: "Hillside High", JoinCode: "SCH-0"}).Return(&types.School{ID: "school-1", Name: "Hillside High", JoinCode: "SCH-0"}, nil)
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *types.Account) (*types.Account, error) {
						if a.ID != "school-1" || a.TenantID != "school-1" || a.Kind != types.KindSchool {
							return nil, fmt.Errorf("unexpected admin %+v", a)
						}
						if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret123")) != nil {
							return nil, fmt.Errorf("password not hashed")
						}
						return a, nil
					},
				)
				tok.EXPECT().IssueToken(gomock.Any(), gomock.Any()).Return("token", nil)
			},
			wantCodes: []string{"SCH-0"},
		},
		{
			name: "code collision retries with a fresh code",
			setupMocks: func(m *MockStorageInterface, tok *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "office@hillside.edu").Return(nil, storage.ErrNotFound).Times(2)
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx).Times(2)
				m.EXPECT().CreateSchool(gomock.Any(), &types.School{Name: "Hillside High", JoinCode: "SCH-0"}).Return(nil, storage.ErrDuplicateKey)
				m.EXPECT().CreateSchool(gomock.Any(), &types.School{Name: "Hillside High", JoinCode: "SCH-1"}).Return(&types.School{ID: "school-1", JoinCode: "SCH-1"}, nil)
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *types.Account) (*types.Account, error) { return a, nil },
				)
				tok.EXPECT().IssueToken(gomock.Any(), gomock.Any()).Return("token", nil)
			},
			wantCodes: []string{"SCH-0", "SCH-1"},
		},
		{
			name: "email taken up front",
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "office@hillside.edu").Return(&types.Account{ID: "acc-1"}, nil)
			},
			wantKind: apperr.KindConflict,
		},
		{
			name: "email taken by a concurrent registration",
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "office@hillside.edu").Return(nil, storage.ErrNotFound)
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().CreateSchool(gomock.Any(), gomock.Any()).Return(&types.School{ID: "school-1"}, nil)
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
				m.EXPECT().GetAccountByEmail(gomock.Any(), "office@hillside.edu").Return(&types.Account{ID: "acc-9"}, nil)
			},
			wantCodes: []string{"SCH-0"},
			wantKind:  apperr.KindConflict,
		},
		{
			name: "storage failure",
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "office@hillside.edu").Return(nil, storage.ErrNotFound)
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().CreateSchool(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))
			},
			wantCodes: []string{"SCH-0"},
			wantKind:  apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m, tok := newService(ctrl)
			var codes []string
			svc.joinCode = func(attempt int) string {
				code := fmt.Sprintf("SCH-%d", attempt)
				codes = append(codes, code)
				return code
			}
			tt.setupMocks(m, tok)

			session, err := svc.RegisterSchool(context.Background(), in)
			if fmt.Sprint(codes) != fmt.Sprint(tt.wantCodes) {
				t.Errorf("expected codes %v, got %v", tt.wantCodes, codes)
			}
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.Token != "token" || session.User.ID != session.School.ID {
				t.Errorf("unexpected session %+v", session)
			}
		})
	}
}

func TestService_RegisterStudent(t *testing.T) {
	tests := []struct {
		name       string
		input      *StudentRegistration
		setupMocks func(*MockStorageInterface, *MockTokenIssuerInterface)
		wantKind   apperr.Kind
		wantMsg    string
	}{
		{
			name:  "code is case insensitive and the student starts with 100 points",
			input: &StudentRegistration{Name: "Ana", Email: "ana@hillside.edu", Password: "secret123", SchoolCode: "sch-42", Cohort: "Red"},
			setupMocks: func(m *MockStorageInterface, tok *MockTokenIssuerInterface) {
				m.EXPECT().GetSchoolByJoinCode(gomock.Any(), "SCH-42").Return(&types.School{ID: "school-1"}, nil)
				m.EXPECT().GetAccountByEmail(gomock.Any(), "ana@hillside.edu").Return(nil, storage.ErrNotFound)
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *types.Account) (*types.Account, error) {
						if a.TenantID != "school-1" || a.Points != 100 || a.Kind != types.KindStudent || a.Cohort != "Red" {
							return nil, fmt.Errorf("unexpected student %+v", a)
						}
						created := *a
						created.ID = "acc-1"
						return &created, nil
					},
				)
				tok.EXPECT().IssueToken(gomock.Any(), gomock.Any()).Return("token", nil)
			},
		},
		{
			name:  "unknown code",
			input: &StudentRegistration{Name: "Ana", Email: "ana@hillside.edu", Password: "secret123", SchoolCode: "SCH-00"},
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetSchoolByJoinCode(gomock.Any(), "SCH-00").Return(nil, storage.ErrNotFound)
			},
			wantKind: apperr.KindValidation,
			wantMsg:  "Invalid school code",
		},
		{
			name:       "unknown house",
			input:      &StudentRegistration{Name: "Ana", Email: "ana@hillside.edu", Password: "secret123", SchoolCode: "SCH-42", Cohort: "Purple"},
			setupMocks: func(*MockStorageInterface, *MockTokenIssuerInterface) {},
			wantKind:   apperr.KindValidation,
		},
		{
			name:  "duplicate email",
			input: &StudentRegistration{Name: "Ana", Email: "ana@hillside.edu", Password: "secret123", SchoolCode: "SCH-42"},
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetSchoolByJoinCode(gomock.Any(), "SCH-42").Return(&types.School{ID: "school-1"}, nil)
				m.EXPECT().GetAccountByEmail(gomock.Any(), "ana@hillside.edu").Return(nil, storage.ErrNotFound)
				m.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			wantKind: apperr.KindConflict,
			wantMsg:  "Email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m, tok := newService(ctrl)
			tt.setupMocks(m, tok)

			session, err := svc.RegisterStudent(context.Background(), tt.input)
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				if tt.wantMsg != "" && apperr.MessageOf(err) != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, apperr.MessageOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.User.ID != "acc-1" || session.School != nil {
				t.Errorf("unexpected session %+v", session)
			}
		})
	}
}

func TestService_Login(t *testing.T) {
	hash := mustHash(t, "secret123")
	student := func(suspended bool) *types.Account {
		return &types.Account{ID: "acc-1", TenantID: "school-1", Email: "ana@hillside.edu", PasswordHash: hash, Kind: types.KindStudent, Suspended: suspended}
	}

	tests := []struct {
		name       string
		input      *Credentials
		setupMocks func(*MockStorageInterface, *MockTokenIssuerInterface)
		wantErr    error
		wantKind   apperr.Kind
	}{
		{
			name:  "student logs in without a role",
			input: &Credentials{Email: " Ana@Hillside.edu", Password: "secret123"},
			setupMocks: func(m *MockStorageInterface, tok *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "ana@hillside.edu").Return(student(false), nil)
				tok.EXPECT().IssueToken(gomock.Any(), student(false)).Return("token", nil)
			},
		},
		{
			name:  "school admin gets its school",
			input: &Credentials{Email: "office@hillside.edu", Password: "secret123", Role: types.KindSchool},
			setupMocks: func(m *MockStorageInterface, tok *MockTokenIssuerInterface) {
				admin := &types.Account{ID: "school-1", TenantID: "school-1", PasswordHash: hash, Kind: types.KindSchool}
				m.EXPECT().GetAccountByEmail(gomock.Any(), "office@hillside.edu").Return(admin, nil)
				m.EXPECT().GetSchoolByID(gomock.Any(), "school-1").Return(&types.School{ID: "school-1", JoinCode: "SCH-42"}, nil)
				tok.EXPECT().IssueToken(gomock.Any(), admin).Return("token", nil)
			},
		},
		{
			name:  "wrong password",
			input: &Credentials{Email: "ana@hillside.edu", Password: "nope"},
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "ana@hillside.edu").Return(student(false), nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "unknown email",
			input: &Credentials{Email: "ghost@hillside.edu", Password: "secret123"},
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "ghost@hillside.edu").Return(nil, storage.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "student asking for the school role",
			input: &Credentials{Email: "ana@hillside.edu", Password: "secret123", Role: types.KindSchool},
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "ana@hillside.edu").Return(student(false), nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "suspended student gets no token",
			input: &Credentials{Email: "ana@hillside.edu", Password: "secret123"},
			setupMocks: func(m *MockStorageInterface, _ *MockTokenIssuerInterface) {
				m.EXPECT().GetAccountByEmail(gomock.Any(), "ana@hillside.edu").Return(student(true), nil)
			},
			wantKind: apperr.KindSuspended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m, tok := newService(ctrl)
			tt.setupMocks(m, tok)

			session, err := svc.Login(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.Token != "token" {
				t.Errorf("unexpected session %+v", session)
			}
		})
	}
}

func TestService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newService(ctrl)
	m.EXPECT().GetAccountByID(gomock.Any(), "acc-1").Return(&types.Account{ID: "acc-1", Points: 70, UnlockedNoteIDs: []string{"n-1"}}, nil)
	m.EXPECT().GetAccountByID(gomock.Any(), "acc-2").Return(nil, storage.ErrNotFound)

	a, err := svc.Me(context.Background(), identity.Actor{AccountID: "acc-1", TenantID: "school-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Points != 70 || len(a.UnlockedNoteIDs) != 1 {
		t.Errorf("unexpected account %+v", a)
	}

	if _, err := svc.Me(context.Background(), identity.Actor{AccountID: "acc-2", TenantID: "school-1"}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
