package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type signupForm struct {
	Username   string `validate:"required,min=3"`
	Email      string `validate:"required,email"`
	Profession string `validate:"oneof=Student Professional Other"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(signupForm{Username: "al", Email: "not-an-email", Profession: "Pirate"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	msg := FormatValidationError(err)
	for _, want := range []string{
		"Username must be at least 3 characters",
		"Email must be a valid email",
		"Profession must be one of: Student Professional Other",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestFormatValidationErrorPassesThroughPlainErrors(t *testing.T) {
	if got := FormatValidationError(errors.New("EOF")); got != "EOF" {
		t.Fatalf("unexpected message: %q", got)
	}
}
