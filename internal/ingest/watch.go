package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures Watch's debouncing and file filtering.
type WatchOptions struct {
	// Debounce is how long to wait after the last change in a burst before
	// re-ingesting, matching cmd/wetwire-neo4j/watch.go's default of 300ms.
	Debounce time.Duration
	// Extensions restricts which file extensions are watched; empty means
	// every regular file is considered.
	Extensions []string
}

func (o WatchOptions) debounce() time.Duration {
	if o.Debounce <= 0 {
		return 300 * time.Millisecond
	}
	return o.Debounce
}

func (o WatchOptions) matches(name string) bool {
	if len(o.Extensions) == 0 {
		return true
	}
	for _, ext := range o.Extensions {
		if strings.EqualFold(filepath.Ext(name), ext) {
			return true
		}
	}
	return false
}

// Watch monitors dir for file creates/writes and re-ingests each changed
// file as a single-chunk Source, skipping files whose content hash matches
// what is already stored (the re-ingestion idempotency check SPEC_FULL.md
// §12 adds on top of build_knowledge_base.py). It blocks until ctx is
// canceled, a Go port of cmd/wetwire-neo4j/watch.go's event loop rewired to
// call AddDocumentsFromSource instead of the lint/build pipeline.
func (o *Orchestrator) Watch(ctx context.Context, dir string, opts WatchOptions, onEvent func(path string, result Result, err error)) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		return fmt.Errorf("watch path %q is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(absDir); err != nil {
		return fmt.Errorf("watch directory %q: %w", absDir, err)
	}

	o.log.Info("watching directory for changes", "dir", absDir)

	debounce := opts.debounce()
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !(event.Op&(fsnotify.Write|fsnotify.Create) != 0) {
				continue
			}
			if !opts.matches(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.log.Error("watch error", "error", err)
		case <-timer.C:
			for path := range pending {
				result, err := o.ingestFile(ctx, path)
				if onEvent != nil {
					onEvent(path, result, err)
				}
			}
			pending = map[string]bool{}
		}
	}
}

func (o *Orchestrator) ingestFile(ctx context.Context, path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %q: %w", path, err)
	}
	hash := contentHash(content)

	unchanged, err := o.sourceUnchanged(ctx, path, hash)
	if err != nil {
		o.log.Warn("could not check existing source hash, re-ingesting", "path", path, "error", err)
	} else if unchanged {
		o.log.Info("source unchanged, skipping re-ingestion", "path", path)
		return Result{}, nil
	}

	items := []Item{{NodeType: "chunk", PageContent: string(content), Metadata: map[string]any{"chunk_number": 1}}}
	return o.AddDocumentsFromSource(ctx, path, "file", hash, "", nil, items)
}

// sourceUnchanged reports whether a Source by this name already carries
// the same content hash, per the idempotency check in SPEC_FULL.md §12.
func (o *Orchestrator) sourceUnchanged(ctx context.Context, name, hash string) (bool, error) {
	records, err := o.graph.RunRead(ctx, "MATCH (s:Source {name: $name}) RETURN s.source_content_hash AS hash", map[string]any{"name": name})
	if err != nil || len(records) == 0 {
		return false, err
	}
	v, ok := records[0].Get("hash")
	if !ok {
		return false, nil
	}
	existing, _ := v.(string)
	return existing != "" && existing == hash, nil
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
