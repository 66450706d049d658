package ports

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,maxbytes=72"`
	Name     string `validate:"required,min=3"`
}

// LoginInput is the raw login payload.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
}

// PasswordHasher turns plaintext passwords into verifiable one-way hashes.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash. Malformed hashes never match.
	Verify(plain, hash string) bool
}

// TokenService mints and verifies stateless bearer tokens.
type TokenService interface {
	Issue(userID, email string) (string, error)
	// Verify returns domain.ErrTokenExpired or domain.ErrTokenInvalid on failure.
	Verify(token string) (domain.Identity, error)
}
