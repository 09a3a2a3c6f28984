package services

import (
	"errors"
	"testing"

	"sublint/internal/store"
)

func TestWrapPreservesMarker(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap(ErrValidation, "critic", "review batch", "bad payload", inner)
	if !errors.Is(err, ErrValidation) {
		t.Error("marker lost")
	}
	if !errors.Is(err, inner) {
		t.Error("inner error lost")
	}
	want := "validation error: critic: review batch: bad payload: boom"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Error("nil marker should default to transient")
	}
	if err.Error() != "transient failure: service failure" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestFailureStatus(t *testing.T) {
	tests := []struct {
		err  error
		want store.Status
	}{
		{Wrap(ErrValidation, "c", "o", "m", nil), store.StatusNeedsAttention},
		{Wrap(ErrConfiguration, "c", "o", "m", nil), store.StatusNeedsAttention},
		{Wrap(ErrNotFound, "c", "o", "m", nil), store.StatusNeedsAttention},
		{Wrap(ErrTransient, "c", "o", "m", nil), store.StatusFailed},
		{errors.New("random"), store.StatusFailed},
	}
	for _, tt := range tests {
		if got := FailureStatus(tt.err); got != tt.want {
			t.Errorf("FailureStatus(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
