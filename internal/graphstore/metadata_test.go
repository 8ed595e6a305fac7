package graphstore

import (
	"testing"
	"time"
)

func TestPreprocessMetadataForNeo4j(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	metadata := map[string]any{
		"title":   "hello",
		"count":   3,
		"ratio":   1.5,
		"active":  true,
		"when":    ts,
		"missing": nil,
		"nested":  map[string]any{"a": 1},
		"tags":    []any{"x", map[string]any{"b": 2}, ts},
	}

	got := preprocessMetadataForNeo4j(metadata)

	if got["title"] != "hello" || got["count"] != 3 || got["ratio"] != 1.5 || got["active"] != true {
		t.Errorf("scalar passthrough failed: %+v", got)
	}
	if got["missing"] != nil {
		t.Errorf("got[missing] = %v, want nil", got["missing"])
	}
	if got["when"] != "2026-01-02T03:04:05Z" {
		t.Errorf("got[when] = %v, want RFC3339 string", got["when"])
	}
	if got["nested"] != `{"a":1}` {
		t.Errorf("got[nested] = %v, want JSON string", got["nested"])
	}
	tags, ok := got["tags"].([]any)
	if !ok || len(tags) != 3 {
		t.Fatalf("got[tags] = %v, want a 3-element []any", got["tags"])
	}
	if tags[0] != "x" {
		t.Errorf("tags[0] = %v, want %q", tags[0], "x")
	}
	if tags[1] != `{"b":2}` {
		t.Errorf("tags[1] = %v, want JSON string", tags[1])
	}
	if tags[2] != "2026-01-02T03:04:05Z" {
		t.Errorf("tags[2] = %v, want RFC3339 string", tags[2])
	}
}

func TestPreprocessMetadataForNeo4j_StringifiesUnknownScalars(t *testing.T) {
	type custom struct{ X int }
	got := preprocessMetadataForNeo4j(map[string]any{"v": custom{X: 7}})

	if got["v"] != `{"X":7}` {
		t.Errorf("got[v] = %v, want JSON string of the struct", got["v"])
	}
}

func TestNormalizeEntityName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Acme Corp  ", "acme corp"},
		{"ACME", "acme"},
		{"Acme, Inc.", "acme, inc."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeEntityName(tt.in); got != tt.want {
			t.Errorf("normalizeEntityName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
