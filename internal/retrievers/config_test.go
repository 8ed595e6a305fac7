package retrievers

import (
	"testing"

	"github.com/dbczarnota/graphforrag-go/internal/search"
)

func TestDefaultRetrievers(t *testing.T) {
	rs := DefaultRetrievers(search.DefaultConfig())

	var sawText2Cypher bool
	for _, r := range rs {
		if r.RetrieverType() == Text2Cypher {
			sawText2Cypher = true
		}
		if r.RetrieverName() == "" {
			t.Errorf("retriever %T has an empty name", r)
		}
	}
	if !sawText2Cypher {
		t.Error("DefaultRetrievers() is missing the Text2Cypher fallback entry")
	}
	if len(rs) != 7 {
		t.Errorf("len(DefaultRetrievers()) = %d, want 7", len(rs))
	}
}

func TestDefaultRetrievers_TopKTracksSearchConfig(t *testing.T) {
	cfg := search.DefaultConfig()
	cfg.Chunk.Limit = 42

	rs := DefaultRetrievers(cfg)

	chunk, ok := rs[0].(*HybridRetriever)
	if !ok || chunk.Name != "chunk_search" {
		t.Fatalf("rs[0] = %+v, want the chunk_search HybridRetriever", rs[0])
	}
	if chunk.TopK != 42 {
		t.Errorf("chunk.TopK = %d, want 42 (derived from cfg.Chunk.Limit, not hand-duplicated)", chunk.TopK)
	}
}
