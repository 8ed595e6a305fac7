package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

func TestReportUsageAndReadUsageLog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GRAPHFORRAG_USAGE_LOG", filepath.Join(dir, "usage.jsonl"))

	var buf bytes.Buffer
	reportUsage(&buf, llmfacade.Usage{Requests: 1, RequestTokens: 10, ResponseTokens: 5, TotalTokens: 15})
	reportUsage(&buf, llmfacade.Usage{Requests: 2, RequestTokens: 20, ResponseTokens: 8, TotalTokens: 28})

	total, runs, err := readUsageLog()
	if err != nil {
		t.Fatalf("readUsageLog() error = %v", err)
	}
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	want := llmfacade.Usage{Requests: 3, RequestTokens: 30, ResponseTokens: 13, TotalTokens: 43}
	if total != want {
		t.Errorf("total = %+v, want %+v", total, want)
	}
}

func TestReadUsageLog_MissingFile(t *testing.T) {
	t.Setenv("GRAPHFORRAG_USAGE_LOG", filepath.Join(t.TempDir(), "does-not-exist.jsonl"))

	total, runs, err := readUsageLog()
	if err != nil {
		t.Fatalf("readUsageLog() error = %v", err)
	}
	if runs != 0 || total != (llmfacade.Usage{}) {
		t.Errorf("got (%+v, %d), want zero value and 0 runs", total, runs)
	}
}

func TestReportUsage_UnwritableLogDoesNotPanic(t *testing.T) {
	t.Setenv("GRAPHFORRAG_USAGE_LOG", filepath.Join(string(os.PathSeparator), "nonexistent-dir", "usage.jsonl"))

	var buf bytes.Buffer
	reportUsage(&buf, llmfacade.Usage{Requests: 1})
	if buf.Len() == 0 {
		t.Error("reportUsage should still write the summary line even if the log can't be opened")
	}
}
