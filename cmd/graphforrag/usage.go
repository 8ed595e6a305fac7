package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

// usageLogPath is where reportUsage appends one JSON line per command run
// and newUsageCmd sums them back up, the standing-file equivalent of the
// original scripts' end-of-run usage print (SPEC_FULL.md §12).
func usageLogPath() string {
	if p := os.Getenv("GRAPHFORRAG_USAGE_LOG"); p != "" {
		return p
	}
	return ".graphforrag_usage.jsonl"
}

// reportUsage prints u to w as a one-line summary and appends it to the
// usage log; a failure to open the log is logged to stderr, not fatal.
func reportUsage(w io.Writer, u llmfacade.Usage) {
	fmt.Fprintf(w, "usage: %d requests, %d prompt tokens, %d completion tokens, %d total\n",
		u.Requests, u.RequestTokens, u.ResponseTokens, u.TotalTokens)

	f, err := os.OpenFile(usageLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open usage log %q: %v\n", usageLogPath(), err)
		return
	}
	defer func() { _ = f.Close() }()

	line, err := json.Marshal(u)
	if err != nil {
		return
	}
	fmt.Fprintln(f, string(line))
}

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Print accumulated LLM/embedding usage across every recorded command run",
		RunE: func(cmd *cobra.Command, args []string) error {
			total, runs, err := readUsageLog()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %10s %10s %10s %10s\n", "", "runs", "requests", "prompt", "completion")
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %10d %10d %10d %10d\n", "total", runs, total.Requests, total.RequestTokens, total.ResponseTokens)
			fmt.Fprintf(cmd.OutOrStdout(), "total tokens: %d\n", total.TotalTokens)
			return nil
		},
	}
}

func readUsageLog() (llmfacade.Usage, int, error) {
	var total llmfacade.Usage
	f, err := os.Open(usageLogPath())
	if os.IsNotExist(err) {
		return total, 0, nil
	}
	if err != nil {
		return total, 0, fmt.Errorf("open usage log: %w", err)
	}
	defer func() { _ = f.Close() }()

	runs := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var u llmfacade.Usage
		if err := json.Unmarshal(scanner.Bytes(), &u); err != nil {
			continue
		}
		total.Add(u)
		runs++
	}
	return total, runs, scanner.Err()
}
