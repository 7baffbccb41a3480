package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest, "validation"},
		{"auth", Auth("nope"), http.StatusUnauthorized, "auth"},
		{"forbidden", Forbidden("nope"), http.StatusForbidden, "forbidden"},
		{"not found", NotFound("missing"), http.StatusNotFound, "not_found"},
		{"dependency", Dependency("upstream", errors.New("boom")), http.StatusBadGateway, "dependency"},
		{"storage", Storage("db", errors.New("boom")), http.StatusInternalServerError, "storage"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.wantStatus)
			}
			if got := Code(tt.err); got != tt.wantCode {
				t.Errorf("Code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NotFound("daily set missing"))
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want KindNotFound", KindOf(wrapped))
	}
	if HTTPStatus(wrapped) != http.StatusNotFound {
		t.Errorf("HTTPStatus(wrapped) = %d, want 404", HTTPStatus(wrapped))
	}
}

func TestErrorMessage(t *testing.T) {
	plain := Validation("grade must be between %d and %d", 1, 6)
	if plain.Error() != "grade must be between 1 and 6" {
		t.Errorf("message = %q", plain.Error())
	}
	withCause := Storage("load profile", errors.New("connection reset"))
	if withCause.Error() != "load profile: connection reset" {
		t.Errorf("message = %q", withCause.Error())
	}
	if !errors.Is(withCause, withCause.Err) {
		t.Error("cause must be reachable through Unwrap")
	}
}
