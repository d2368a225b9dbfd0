package services_test

import (
	"errors"
	"strings"
	"testing"

	"ritualpair/internal/services"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "sampling", "extract frame", "ffmpeg exited", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"sampling", "extract frame", "ffmpeg exited", "boom"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "scan", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	cases := []struct {
		marker error
		fatal  bool
	}{
		{services.ErrNotFound, true},
		{services.ErrValidation, true},
		{services.ErrConfiguration, true},
		{services.ErrExternalTool, false},
		{services.ErrTimeout, false},
		{services.ErrTransient, false},
	}
	for _, tc := range cases {
		err := services.Wrap(tc.marker, "stage", "op", "", nil)
		if got := services.IsFatal(err); got != tc.fatal {
			t.Errorf("IsFatal(%v) = %v, want %v", tc.marker, got, tc.fatal)
		}
	}
}
