package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "mix", "amix", "ffmpeg failed", cause)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("marker lost")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if !strings.Contains(err.Error(), "mix: amix: ffmpeg failed") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "stage", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(Wrap(ErrValidation, "s", "o", "m", nil)) {
		t.Fatal("validation errors are fatal")
	}
	if IsFatal(Wrap(ErrTransient, "s", "o", "m", nil)) {
		t.Fatal("transient errors are not fatal")
	}
}
