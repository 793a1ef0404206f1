package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent"

	"github.com/wordwhizkids/wordwhiz/ent/schema"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	ctx := context.Background()
	if err := s1.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "p", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	events, err := s2.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events after reopen, want 1", len(events))
	}
}

func seedEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "challenge-digraph", InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "challenge-spell", InputTokens: 80, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "challenge-digraph", InputTokens: 120, OutputTokens: 60, LatencyMs: 400, Success: false, ErrorMessage: "timeout"},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "challenge-story", InputTokens: 50, OutputTokens: 90, LatencyMs: 300, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestAppendAndQueryNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	events, err := repo.QueryLLMEvents(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i-1].Sequence <= events[i].Sequence {
			t.Errorf("events not newest first: seq %d before %d", events[i-1].Sequence, events[i].Sequence)
		}
	}
	if events[0].Purpose != "challenge-story" {
		t.Errorf("newest purpose = %q, want challenge-story", events[0].Purpose)
	}
	if events[1].ErrorMessage != "timeout" || events[1].Success {
		t.Errorf("failed event not round-tripped: %+v", events[1])
	}
	if time.Since(events[0].Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", events[0].Timestamp)
	}
}

func TestQueryFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"limit", QueryOpts{Limit: 2}, 2},
		{"purpose", QueryOpts{Purpose: "challenge-digraph"}, 2},
		{"after", QueryOpts{After: 2}, 2},
		{"before", QueryOpts{Before: 2}, 1},
		{"from future", QueryOpts{From: time.Now().Add(time.Hour)}, 0},
		{"to past", QueryOpts{To: time.Now().Add(-time.Hour)}, 0},
		{"unknown purpose", QueryOpts{Purpose: "nope"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryLLMEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Sequence != events[0].Sequence {
		t.Fatalf("get returned %+v, want sequence %d", got, events[0].Sequence)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	usage, err := repo.LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 3 {
		t.Fatalf("got %d purposes, want 3", len(usage))
	}
	// Ordered by purpose name.
	d := usage[0]
	if d.Purpose != "challenge-digraph" {
		t.Fatalf("first purpose = %q", d.Purpose)
	}
	if d.Calls != 2 || d.Failures != 1 || d.InputTokens != 220 || d.OutputTokens != 100 || d.AvgLatencyMs != 300 {
		t.Errorf("digraph usage = %+v", d)
	}
}

func TestUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	usage, err := repo.LLMUsageByModel(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("got %d models, want 2", len(usage))
	}
	byModel := map[string]ModelUsage{}
	for _, u := range usage {
		byModel[u.Model] = u
	}
	if g := byModel["gemini-2.5-flash"]; g.Calls != 3 || g.InputTokens != 300 {
		t.Errorf("gemini usage = %+v", g)
	}
	if c := byModel["claude-haiku-4-5"]; c.Calls != 1 || c.OutputTokens != 90 {
		t.Errorf("claude usage = %+v", c)
	}
}

func TestSequenceFollowsAppendOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "challenge-spell", Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	for i, e := range events {
		if want := int64(5 - i); e.Sequence != want {
			t.Errorf("events[%d].Sequence = %d, want %d", i, e.Sequence, want)
		}
	}
}

func TestEnsureParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "wordwhiz.db")
	if err := EnsureParent(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open in new dir: %v", err)
	}
	s.Close()
}

func TestDefaultPathEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "x", "custom.db")
	t.Setenv("WORDWHIZ_DB", want)
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTableMatchesSchema(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.DB().Query("PRAGMA table_info(llm_request_events)")
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols[name] = true
	}

	var fields []ent.Field
	for _, m := range (schema.LLMRequestEvent{}).Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, schema.LLMRequestEvent{}.Fields()...)

	for _, f := range fields {
		name := f.Descriptor().Name
		if !cols[name] {
			t.Errorf("schema field %q has no column", name)
		}
		delete(cols, name)
	}
	delete(cols, "id")
	for name := range cols {
		t.Errorf("column %q is missing from the schema", name)
	}
}
