package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ritualpair/internal/pairing"
	"ritualpair/internal/testsupport"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runCommand(t)
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	for _, want := range []string{"scan", "pair", "process", "split", "similarity", "config", "deps"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Errorf("output does not mention target: %s", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[pairing]") {
		t.Error("sample config missing pairing section")
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Error("second init without --overwrite should fail")
	}
}

func TestScanCommandJSON(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "p1.jpg"), 32)
	testsupport.WriteFile(t, filepath.Join(dir, "skip.txt"), 16)

	out, err := runCommand(t, "scan", dir, "--json")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var entries []scanEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("parse scan JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Kind != "photo" {
		t.Errorf("entries = %+v, want one photo", entries)
	}
}

func TestScanCommandMissingDirectory(t *testing.T) {
	_, err := runCommand(t, "scan", filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestPairCommandOrderMode(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "a.jpg"), 32)
	testsupport.WriteFile(t, filepath.Join(dir, "b.mp4"), 32)

	out, err := runCommand(t, "pair", dir, "--mode", "order", "--json")
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	var payload resultPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse pair JSON: %v\n%s", err, out)
	}
	if payload.Strategy != "order" || len(payload.Pairs) != 1 {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Pairs[0].Label != "001" {
		t.Errorf("label = %s, want 001", payload.Pairs[0].Label)
	}
	if payload.RunID == "" {
		t.Error("missing run id")
	}
}

func TestPairCommandRejectsUnknownMode(t *testing.T) {
	if _, err := runCommand(t, "pair", t.TempDir(), "--mode", "psychic"); err == nil {
		t.Fatal("expected unknown mode error")
	}
}

func TestSplitCommandRejectsBadSegmentCount(t *testing.T) {
	if _, err := runCommand(t, "split", "/in/v.mp4", t.TempDir(), "--segments", "11"); err == nil {
		t.Fatal("expected segment range error")
	}
}

func TestPairPayloadScores(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	result := &pairing.Result{
		RunID:    "run",
		Strategy: pairing.StrategyImage,
		Pairs: []pairing.Pair{{
			Photo:    testsupport.Photo("/in/p.jpg", base),
			Video:    testsupport.Video("/in/v.mp4", base),
			Sequence: 1,
			Score:    0.42,
			Scored:   true,
		}},
	}
	payload := pairPayload(result)
	if payload.Pairs[0].Score == nil || *payload.Pairs[0].Score != 0.42 {
		t.Errorf("score = %v, want 0.42", payload.Pairs[0].Score)
	}

	result.Pairs[0].Scored = false
	payload = pairPayload(result)
	if payload.Pairs[0].Score != nil {
		t.Error("unscored pair should omit score")
	}
}

func TestYesNo(t *testing.T) {
	if yesNo(true) != "yes" || yesNo(false) != "no" {
		t.Error("yesNo misrenders")
	}
}
