// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/authentication"
)

// ErrInvalidCredentials is returned for any failed login so callers cannot
// tell unknown emails from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

type SchoolRegistration struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,max=72"`
}

type StudentRegistration struct {
	Name       string `json:"name" validate:"notblank,max=120"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"min=6,max=72"`
	SchoolCode string `json:"schoolCode" validate:"notblank"`
	Cohort     string `json:"house" validate:"omitempty,oneof=Red Blue Green Yellow"`
}

type Credentials struct {
	Email    string            `json:"email" validate:"required,email"`
	Password string            `json:"password" validate:"required"`
	Role     types.AccountKind `json:"role" validate:"omitempty,oneof=student school"`
}

// Session is what a successful registration or login hands back.
type Session struct {
	Token  string         `json:"token"`
	User   *types.Account `json:"user"`
	School *types.School  `json:"school,omitempty"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	tokens  TokenIssuerInterface

	startingPoints int
	hashCost       int
	joinCode       func(attempt int) string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterSchool creates a school and its administrator account, which shares
// the school's id. Join code collisions are retried with a fresh code.
func (s *Service) RegisterSchool(ctx context.Context, in *SchoolRegistration) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.RegisterSchool")
	defer span.End()

	email := normalizeEmail(in.Email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	var (
		school *types.School
		admin  *types.Account
	)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err = s.storage.WithTx(ctx, func(ctx context.Context) error {
			sc, err := s.storage.CreateSchool(ctx, &types.School{Name: in.Name, JoinCode: s.joinCode(attempt)})
			if err != nil {
				return err
			}

			a, err := s.storage.CreateAccount(ctx, &types.Account{
				ID:           sc.ID,
				TenantID:     sc.ID,
				Name:         in.Name,
				Email:        email,
				PasswordHash: hash,
				Kind:         types.KindSchool,
			})
			if err != nil {
				return err
			}

			sc.Email = a.Email
			school, admin = sc, a
			return nil
		})

		if err == nil {
			break
		}

		if !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, apperr.Internal(err, "Server error")
		}

		// the duplicate may be the email taken by a concurrent registration
		if err := s.checkEmailFree(ctx, email); err != nil {
			return nil, err
		}
		s.logger.Debugf("join code collision on attempt %d, retrying", attempt)
	}

	if admin == nil {
		return nil, apperr.Internal(err, "could not allocate a school code")
	}

	return s.session(ctx, admin, school)
}

func (s *Service) RegisterStudent(ctx context.Context, in *StudentRegistration) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.RegisterStudent")
	defer span.End()

	if !types.ValidCohort(in.Cohort) {
		return nil, apperr.Validation("house must be one of %v", types.Cohorts)
	}

	school, err := s.storage.GetSchoolByJoinCode(ctx, normalizeJoinCode(in.SchoolCode))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.Validation("Invalid school code")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error")
	}

	email := normalizeEmail(in.Email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	student, err := s.storage.CreateAccount(ctx, &types.Account{
		TenantID:     school.ID,
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Kind:         types.KindStudent,
		Points:       s.startingPoints,
		Cohort:       in.Cohort,
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil, apperr.Conflict("Email already registered")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error")
	}

	return s.session(ctx, student, nil)
}

// Login checks the password and the requested role. Suspended students are
// refused even with valid credentials.
func (s *Service) Login(ctx context.Context, in *Credentials) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.Login")
	defer span.End()

	email := normalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = types.KindStudent
	}

	a, err := s.storage.GetAccountByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Security().AuthnFailure(email, "unknown email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.Password)); err != nil {
		s.logger.Security().AuthnFailure(email, "wrong password")
		return nil, ErrInvalidCredentials
	}

	if a.Kind != role {
		s.logger.Security().AuthnFailure(email, "role mismatch")
		return nil, ErrInvalidCredentials
	}

	if a.Suspended {
		s.logger.Security().AuthnFailure(email, "account suspended")
		return nil, apperr.Suspended(authentication.SuspendedMessage)
	}

	var school *types.School
	if a.Kind == types.KindSchool {
		if school, err = s.storage.GetSchoolByID(ctx, a.ID); err != nil {
			return nil, apperr.Internal(err, "Server error")
		}
	}

	session, err := s.session(ctx, a, school)
	if err != nil {
		return nil, err
	}

	s.logger.Security().AuthnSuccess(a.ID)
	return session, nil
}

func (s *Service) Me(ctx context.Context, actor identity.Actor) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.Me")
	defer span.End()

	a, err := s.storage.GetAccountByID(ctx, actor.AccountID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "Server error")
	}

	return a, nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		return apperr.Conflict("Email already registered")
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return apperr.Internal(err, "Server error")
	}
	return nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", apperr.Internal(err, "failed to hash password")
	}
	return string(hash), nil
}

func (s *Service) session(ctx context.Context, a *types.Account, school *types.School) (*Session, error) {
	token, err := s.tokens.IssueToken(ctx, a)
	if err != nil {
		return nil, apperr.Internal(err, "failed to issue token")
	}
	return &Session{Token: token, User: a, School: school}, nil
}

func NewService(
	storage StorageInterface,
	tokens TokenIssuerInterface,
	startingPoints int,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.tokens = tokens
	s.startingPoints = startingPoints
	s.hashCost = bcrypt.DefaultCost
	s.joinCode = joinCode

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
