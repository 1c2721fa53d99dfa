package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKnownKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "terms not accepted"), want: http.StatusBadRequest},
		{name: "not found", err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "unavailable", err: E(KindUnavailable, "store offline"), want: http.StatusServiceUnavailable},
		{name: "unknown kind", err: E(KindUnknown, "boom"), want: http.StatusInternalServerError},
		{name: "untyped", err: stderrors.New("plain failure"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestHTTPStatusUnwrapsNestedErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("submit order: %w", E(KindInvalidInput, "terms not accepted"))
	if got := HTTPStatus(wrapped); got != http.StatusBadRequest {
		t.Fatalf("HTTPStatus(wrapped) = %d, want %d", got, http.StatusBadRequest)
	}
	if !IsInvalidInput(wrapped) {
		t.Fatal("IsInvalidInput(wrapped) = false, want true")
	}
}

func TestErrorMessageFallsBackToKind(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindUnavailable}
	if err.Error() != string(KindUnavailable) {
		t.Fatalf("Error() = %q, want %q", err.Error(), string(KindUnavailable))
	}
}
