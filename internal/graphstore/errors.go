package graphstore

import "errors"

// Sentinel error kinds implementing spec.md §7's error taxonomy. Callers
// use errors.Is against these to decide retry/skip/propagate policy; every
// returned error is wrapped with fmt.Errorf("...: %w", kind) so the
// sentinel survives while context is preserved.
var (
	// ErrConfig marks a fatal initialization error (bad URI, missing
	// credentials, unreachable instance). Propagates to the caller of
	// NewGraph; nothing downstream should try to recover from it.
	ErrConfig = errors.New("config error")

	// ErrTransientStore marks a store error worth retrying with backoff
	// (deadlock, connection reset, leader switch).
	ErrTransientStore = errors.New("transient store error")

	// ErrPermanentStore marks a store error that will not succeed on
	// retry (constraint violation, malformed Cypher); the enclosing
	// operation logs and skips the offending item.
	ErrPermanentStore = errors.New("permanent store error")

	// ErrLLM marks an LLM call failure; callers fall back through the
	// model chain and, if every model fails, degrade to a conservative
	// empty result rather than aborting ingestion/search.
	ErrLLM = errors.New("llm error")

	// ErrEmbedding marks an embedding call failure; the affected item
	// remains full-text indexable but is skipped for vector search.
	ErrEmbedding = errors.New("embedding error")

	// ErrData marks unparseable input data (e.g. a product document whose
	// page_content isn't valid JSON); callers fall back to treating the
	// raw content as a description rather than failing the item.
	ErrData = errors.New("data error")
)
