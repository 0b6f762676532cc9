package ui

import (
	"fmt"
	"strings"
	"testing"

	"xtread/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("check", files, nil).(*progressModel)
}

func TestApplyEventTracksStatus(t *testing.T) {
	m := newModel("a.xtm", "b.xtm")
	m.applyEvent(driver.Event{File: "a.xtm", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "b.xtm", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.xtm", Stage: driver.StageParse, Status: driver.StatusDone})

	if got := m.items[0].status; got != "parsing" {
		t.Fatalf("a status = %q", got)
	}
	finished, failed := m.counts()
	if finished != 1 || failed != 1 {
		t.Fatalf("counts = %d, %d", finished, failed)
	}
	view := m.View()
	if !strings.Contains(view, "check (1/2, 1 failed)") {
		t.Fatalf("header missing:\n%s", view)
	}
}

func TestVisibleCapsRows(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.xtm", i)
	}
	m := newModel(files...)
	last := files[len(files)-1]
	m.applyEvent(driver.Event{File: last, Stage: driver.StageParse, Status: driver.StatusError})

	vis := m.visible()
	if len(vis) != maxRows {
		t.Fatalf("visible = %d rows", len(vis))
	}
	if vis[0].path != last {
		t.Fatalf("failed file not pinned first: %q", vis[0].path)
	}
	if !strings.Contains(m.View(), "5 more") {
		t.Fatalf("hidden counter missing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/very/long/path.xtm", 10); got != "src/ver..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("короткий", 20); got != "короткий" {
		t.Fatalf("truncate = %q", got)
	}
}
