// Package llmfacade provides the LLM fallback-chain model, a typed-output
// agent wrapper, and the embedder client used by extraction, resolution,
// and search. It is grounded on files/llm_models.py, embedder_client.py,
// and the pydantic_ai Usage accounting used throughout graphforrag_core.
package llmfacade

import "sync"

// Usage accumulates token/request counts across every LLM and embedding
// call made through a Graph, mirroring pydantic_ai's Usage object and
// spec.md §9's global usage accounting requirement.
type Usage struct {
	Requests       int
	RequestTokens  int
	ResponseTokens int
	TotalTokens    int
}

// Add accumulates other into u.
func (u *Usage) Add(other Usage) {
	u.Requests += other.Requests
	u.RequestTokens += other.RequestTokens
	u.ResponseTokens += other.ResponseTokens
	u.TotalTokens += other.TotalTokens
}

// Tracker is a concurrency-safe Usage accumulator. Nothing in this
// repository creates one; the ingestion orchestrator and search manager
// add usage with Usage.Add on plain values.
type Tracker struct {
	mu    sync.Mutex
	total Usage
}

// Record adds u to the tracker's running total.
func (t *Tracker) Record(u Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total.Add(u)
}

// Snapshot returns a copy of the current total.
func (t *Tracker) Snapshot() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}
