package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeDatum, false},
		{LevelDebug, ScopeDatum, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel accepted junk")
	}
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := StartSpan(ctx, ScopeDriver, "check")
	_, file := StartSpan(ctx, ScopeFile, "file:a.xtm")
	file.WithExtra("bytes", "12").End("ok")
	_, datum := StartSpan(ctx, ScopeDatum, "datum")
	datum.End("")
	run.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4 (datum filtered):\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file:a.xtm" || ev.Extra["bytes"] != "12" || ev.Detail != "ok" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.ParentID != run.ID() {
		t.Fatalf("parent = %d, want %d", ev.ParentID, run.ID())
	}
}

func TestTextFormatIsIndentedByScope(t *testing.T) {
	start := time.Now()
	ev := &Event{
		Time:  start.Add(2 * time.Millisecond),
		Kind:  KindSpanBegin,
		Scope: ScopePass,
		Name:  "parse",
		Extra: map[string]string{"b": "2", "a": "1"},
	}
	got := string(FormatEvent(ev, FormatText, start))
	want := "[    2.000ms]   → parse {a=1, b=2}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeDatum, name, "", 0)
	}
	var names []string
	for _, ev := range r.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, ",") != "c,d,e" {
		t.Fatalf("snapshot = %v", names)
	}

	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatalf("ModeBoth must carry a ring")
	}
}

func TestDisabledTracerIsInert(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop {
		t.Fatalf("LevelOff must return Nop")
	}
	ctx, span := StartSpan(WithTracer(context.Background(), tr), ScopeDriver, "x")
	if span.ID() != 0 || CurrentSpan(ctx) != 0 {
		t.Fatalf("inert span leaked an ID")
	}
	if span.End("") != 0 {
		t.Fatalf("inert span measured time")
	}
	StartHeartbeat(tr, time.Millisecond).Stop()
}
