package handler

import "github.com/fintrack/finance-api/internal/core/domain"

type registerRequest struct {
	Email    string `json:"email"    example:"ana@example.com"`
	Password string `json:"password" example:"s3cret!"`
	Name     string `json:"name"     example:"Ana Souza"`
}

type loginRequest struct {
	Email    string `json:"email"    example:"ana@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []domain.FieldError `json:"details,omitempty"`
}
