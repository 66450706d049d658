package validation

import (
	"errors"
	"testing"

	"github.com/fintrack/finance-api/internal/core/domain"
)

type signup struct {
	Email    string `validate:"required,email"`
	Password string `json:"pass" validate:"required,min=6"`
	Name     string `validate:"required,min=3"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	if err := v.Validate(&signup{Email: "a@x.com", Password: "secret1", Name: "Ana"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_FieldDetails(t *testing.T) {
	v := New()
	err := v.Validate(&signup{Email: "not-an-email", Password: "123", Name: "Al"})
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", ve.Fields)
	}

	want := map[string]string{
		"email": "email must be a valid email",
		"pass":  "pass must be at least 6 characters",
		"name":  "name must be at least 3 characters",
	}
	for _, f := range ve.Fields {
		if want[f.Field] != f.Message {
			t.Errorf("field %q: got message %q, want %q", f.Field, f.Message, want[f.Field])
		}
	}
}

func TestValidate_Required(t *testing.T) {
	v := New()
	err := v.Validate(&signup{})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	for _, f := range ve.Fields {
		if f.Message != f.Field+" is required" {
			t.Errorf("unexpected message %q", f.Message)
		}
	}
}

type secret struct {
	Password string `validate:"maxbytes=8"`
}

func TestValidate_MaxBytesCountsBytes(t *testing.T) {
	v := New()
	if err := v.Validate(&secret{Password: "12345678"}); err != nil {
		t.Fatalf("expected 8 bytes to pass, got %v", err)
	}

	// 5 runes, 10 bytes.
	err := v.Validate(&secret{Password: "ééééé"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 1 {
		t.Fatalf("expected one field error, got %v", err)
	}
	if ve.Fields[0].Message != "password must be at most 8 bytes" {
		t.Fatalf("unexpected message %q", ve.Fields[0].Message)
	}
}
