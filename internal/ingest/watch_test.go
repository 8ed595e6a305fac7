package ingest

import (
	"testing"
	"time"
)

func TestWatchOptionsDebounce(t *testing.T) {
	if got := (WatchOptions{}).debounce(); got != 300*time.Millisecond {
		t.Errorf("zero-value Debounce = %v, want 300ms default", got)
	}
	if got := (WatchOptions{Debounce: 50 * time.Millisecond}).debounce(); got != 50*time.Millisecond {
		t.Errorf("Debounce = %v, want the configured 50ms", got)
	}
	if got := (WatchOptions{Debounce: -1}).debounce(); got != 300*time.Millisecond {
		t.Errorf("negative Debounce = %v, want the 300ms default", got)
	}
}

func TestWatchOptionsMatches(t *testing.T) {
	unfiltered := WatchOptions{}
	if !unfiltered.matches("notes.txt") {
		t.Error("empty Extensions should match any file")
	}

	filtered := WatchOptions{Extensions: []string{".md", ".TXT"}}
	tests := []struct {
		name string
		want bool
	}{
		{"README.md", true},
		{"notes.txt", true},
		{"image.png", false},
		{"UPPER.MD", true},
	}
	for _, tt := range tests {
		if got := filtered.matches(tt.name); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestContentHash(t *testing.T) {
	a := contentHash([]byte("hello"))
	b := contentHash([]byte("hello"))
	c := contentHash([]byte("world"))

	if a != b {
		t.Errorf("contentHash should be deterministic: %q != %q", a, b)
	}
	if a == c {
		t.Errorf("contentHash should differ for different content: both %q", a)
	}
	if len(a) != 64 {
		t.Errorf("len(contentHash) = %d, want 64 (hex-encoded sha256)", len(a))
	}
}
