package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("call failed: %w", ErrQuotaExceeded.WithError(stderrors.New("429")))

	if !stderrors.Is(err, ErrQuotaExceeded) {
		t.Fatal("expected errors.Is to match ErrQuotaExceeded")
	}
	if stderrors.Is(err, ErrCredentialMissing) {
		t.Fatal("unexpected match with ErrCredentialMissing")
	}
}

func TestWithErrorDoesNotMutatePredefined(t *testing.T) {
	_ = ErrLLMCallFailed.WithError(stderrors.New("boom")).WithDetail("x")

	if ErrLLMCallFailed.Err != nil || ErrLLMCallFailed.Detail != "" {
		t.Fatalf("predefined error mutated: %+v", ErrLLMCallFailed)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{ErrInvalidParam, http.StatusBadRequest},
		{ErrHistoryEntryNotFound, http.StatusNotFound},
		{ErrQuotaExceeded, http.StatusTooManyRequests},
		{ErrCredentialMissing, http.StatusServiceUnavailable},
		{ErrLLMCallFailed, http.StatusBadGateway},
		{ErrInternalError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if tt.err.HTTPStatus != tt.want {
			t.Errorf("%s: HTTPStatus = %d, want %d", tt.err.Code, tt.err.HTTPStatus, tt.want)
		}
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrNotFound)
	if got := AsAppError(wrapped); got.Code != CodeNotFound {
		t.Errorf("AsAppError(wrapped).Code = %s, want %s", got.Code, CodeNotFound)
	}
	if got := AsAppError(stderrors.New("plain")); got.Code != CodeUnknown {
		t.Errorf("AsAppError(plain).Code = %s, want %s", got.Code, CodeUnknown)
	}
}
