package services_test

import (
	"context"
	"testing"

	"ritualpair/internal/services"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id on empty context")
	}
	ctx = services.WithRunID(ctx, "run-123")
	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("expected run-123, got %q ok=%v", id, ok)
	}
}

func TestEmptyValuesAreNotStored(t *testing.T) {
	ctx := services.WithStage(context.Background(), "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("empty stage should not be stored")
	}
	ctx = services.WithDirectory(ctx, "")
	if _, ok := services.DirectoryFromContext(ctx); ok {
		t.Fatal("empty directory should not be stored")
	}
}

func TestStageAndDirectory(t *testing.T) {
	ctx := services.WithStage(context.Background(), "pairing")
	ctx = services.WithDirectory(ctx, "/tmp/in")
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "pairing" {
		t.Fatalf("unexpected stage %q", stage)
	}
	if dir, ok := services.DirectoryFromContext(ctx); !ok || dir != "/tmp/in" {
		t.Fatalf("unexpected directory %q", dir)
	}
}
