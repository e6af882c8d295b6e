package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("story: %w", ErrNotFound), http.StatusNotFound},
		{"invalid credential", ErrInvalidCredential, http.StatusUnauthorized},
		{"duplicate", fmt.Errorf("signup: %w", ErrDuplicateCredential), http.StatusConflict},
		{"invalid input", fmt.Errorf("focus: %w", ErrInvalidInput), http.StatusBadRequest},
		{"generation", ErrGeneration, http.StatusBadGateway},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"app error code wins", New(http.StatusTeapot, "teapot", ErrNotFound), http.StatusTeapot},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapErrorToStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := New(http.StatusBadRequest, "story title is required", ErrInvalidInput)
	if err.Error() != "story title is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected AppError to unwrap to ErrInvalidInput")
	}

	bare := New(http.StatusNotFound, "", nil)
	if bare.Error() != http.StatusText(http.StatusNotFound) {
		t.Fatalf("unexpected fallback message: %q", bare.Error())
	}
}
