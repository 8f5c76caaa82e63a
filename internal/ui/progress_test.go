package ui

import (
	"strings"
	"testing"

	"declgen/internal/driver"
)

func TestProgressModelTracksDocuments(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("generating", []string{"a.toml", "b.yaml"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.toml", Stage: driver.StageGenerate, Status: driver.StatusWorking})
	if m.items[0].status != "generating" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.toml", Stage: driver.StageGenerate, Status: driver.StatusCached})
	m.applyEvent(driver.Event{File: "b.yaml", Stage: driver.StageGenerate, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown", Stage: driver.StageGenerate, Status: driver.StatusDone})

	if got := m.percent(); got != (0.9+1.0)/2 {
		t.Fatalf("percent = %v", got)
	}
	view := m.View()
	for _, want := range []string{"cached", "error", "a.toml", "2/2 finished", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("decls/very/long/path/Foo.toml", 10); got != "decls/v..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}
