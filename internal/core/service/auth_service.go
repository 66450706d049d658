package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
	"github.com/fintrack/finance-api/internal/pkg/validation"
)

var tracer = otel.Tracer("github.com/fintrack/finance-api/internal/core/service")

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenService
	validator *validation.Validator
	logger    zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validation.New(),
		logger:    logger,
	}
}

// Register creates an account and returns it with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	// Fast path only: two concurrent registrations can both get here, so the
	// store's unique constraint on Create is what actually decides.
	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fail(span, fmt.Errorf("register: lookup: %w", err))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fail(span, fmt.Errorf("register: %w", err))
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fail(span, fmt.Errorf("register: create: %w", err))
	}

	result, err := s.issue(span, created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return result, nil
}

// Login checks the credentials. An unknown email and a wrong password both
// yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn the same bcrypt work as a real comparison.
			s.hasher.Verify(in.Password, s.dummy())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fail(span, fmt.Errorf("login: lookup: %w", err))
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issue(span, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return result, nil
}

func (s *AuthService) issue(span trace.Span, user *domain.User) (*ports.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fail(span, fmt.Errorf("issue token: %w", err))
	}

	public := *user
	public.PasswordHash = ""
	return &ports.AuthResult{User: &public, Token: token}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("fintrack-timing-equalizer")
		if err != nil {
			s.logger.Warn().Err(err).Msg("dummy hash unavailable")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// fail marks span as failed and returns err unchanged.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
