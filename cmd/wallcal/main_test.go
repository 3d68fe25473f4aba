package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wallcal/internal/compose"
	"wallcal/internal/config"
	"wallcal/internal/index"
	"wallcal/internal/source"
)

func TestPromptYear(t *testing.T) {
	var out bytes.Buffer
	y, err := promptYear(strings.NewReader("next year\n0\n 2025 \n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if y != 2025 {
		t.Errorf("year = %d, want 2025", y)
	}
	if n := strings.Count(out.String(), yearPrompt); n != 3 {
		t.Errorf("prompted %d times, want 3", n)
	}

	if _, err := promptYear(strings.NewReader(""), &out); err == nil {
		t.Error("empty input should fail")
	}
}

func TestParseModes(t *testing.T) {
	got, err := parseModes([]string{"a4", "poster"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != compose.ModeCompact || got[1] != compose.ModePoster {
		t.Errorf("parseModes = %v", got)
	}
	if _, err := parseModes([]string{"A4", "Letter"}); !errors.Is(err, compose.ErrUnsupportedMode) {
		t.Errorf("err = %v, want ErrUnsupportedMode", err)
	}
}

func TestApplyFlags(t *testing.T) {
	conf := config.DefaultConfig()
	applyFlags(conf, flagConfig{data: "d.yaml", modes: "A0", logLevel: "debug"})
	if conf.Data != "d.yaml" || conf.LogLevel != "debug" || len(conf.Modes) != 1 || conf.Modes[0] != "A0" {
		t.Errorf("config after flags = %+v", conf)
	}
	if conf.OutputDir != "." {
		t.Errorf("OutputDir changed to %q", conf.OutputDir)
	}
}

func TestBuildSource(t *testing.T) {
	dir := t.TempDir()
	conf := config.DefaultConfig()
	conf.Data = filepath.Join(dir, "events.yaml")

	// Missing dataset: degraded, not fatal.
	if n := index.Load(context.Background(), buildSource(conf)).Len(); n != 0 {
		t.Errorf("missing dataset gave %d events", n)
	}

	if err := source.WriteSample(conf.Data, 2025); err != nil {
		t.Fatal(err)
	}
	ics := filepath.Join(dir, "extra.ics")
	feed := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:test\r\nBEGIN:VEVENT\r\nUID:x\r\nDTSTART;VALUE=DATE:20250315\r\nSUMMARY:Team Offsite\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"
	if err := os.WriteFile(ics, []byte(feed), 0o644); err != nil {
		t.Fatal(err)
	}
	conf.Feeds = []config.FeedConfig{{ID: "offsite", Table: "Special_Days", Path: ics, GridColor: "#FFD700", TextColor: "#000000"}}

	idx := index.Load(context.Background(), buildSource(conf))
	evs := idx.ForDay(index.Date{Year: 2025, Month: 3, Day: 15})
	if len(evs) != 1 || evs[0].Description != "Team Offsite" {
		t.Errorf("feed event = %+v", evs)
	}
	if idx.Len() <= 1 {
		t.Errorf("sample dataset not loaded: %d events", idx.Len())
	}
}
