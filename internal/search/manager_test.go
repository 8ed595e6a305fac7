package search

import (
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestSuffixParams_RenamesParamsAndRewritesCypher(t *testing.T) {
	p := queryPart{
		method: "fulltext",
		cypher: "MATCH (c:Chunk) WHERE c.uuid = $uuid RETURN c, $uuid AS again",
		params: map[string]any{"uuid": "abc"},
	}

	cypher, params := suffixParams(p, 2)

	wantCypher := "MATCH (c:Chunk) WHERE c.uuid = $uuid_2 RETURN c, $uuid_2 AS again"
	if cypher != wantCypher {
		t.Errorf("cypher = %q, want %q", cypher, wantCypher)
	}
	if params["uuid_2"] != "abc" {
		t.Errorf("params[uuid_2] = %v, want %v", params["uuid_2"], "abc")
	}
	if _, ok := params["uuid"]; ok {
		t.Errorf("params should not carry the unsuffixed key, got %+v", params)
	}
}

func TestReplaceParam_OnlyMatchesWholeWord(t *testing.T) {
	cypher := "$uuid and $uuid_other and $uuidx stay, $uuid. here"

	got := replaceParam(cypher, "uuid", "uuid_1")

	want := "$uuid_1 and $uuid_other and $uuidx stay, $uuid_1. here"
	if got != want {
		t.Errorf("replaceParam() = %q, want %q", got, want)
	}
}

func TestIndexOfWordBoundary(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		substr  string
		wantIdx int
	}{
		{"not found", "hello world", "$x", -1},
		{"found at end of string", "value $uuid", "$uuid", 6},
		{"found mid-string with boundary", "($uuid)", "$uuid", 1},
		{"rejects partial match followed by word char", "$uuidx stays", "$uuid", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indexOfWordBoundary(tt.s, tt.substr); got != tt.wantIdx {
				t.Errorf("indexOfWordBoundary(%q, %q) = %d, want %d", tt.s, tt.substr, got, tt.wantIdx)
			}
		})
	}
}

func TestRecordToRaw(t *testing.T) {
	rec := &neo4j.Record{
		Keys: []string{"uuid", "score", "name", "content", "fact_sentence", "label", "source_node_uuid", "target_node_uuid"},
		Values: []any{
			"entity-1", 0.75, "Acme", nil, nil, "Organization", nil, nil,
		},
	}

	got := recordToRaw(rec)

	if got.UUID != "entity-1" || got.Score != 0.75 || got.Name != "Acme" || got.Label != "Organization" {
		t.Errorf("recordToRaw() = %+v, unexpected fields", got)
	}
	if got.Content != "" || got.FactSentence != "" {
		t.Errorf("recordToRaw() = %+v, want nil fields left as empty string", got)
	}
	if got.fieldCount != 4 {
		t.Errorf("fieldCount = %d, want 4 (uuid, score counts separately, name, label)", got.fieldCount)
	}
}

func TestRecordToRaw_MissingKeysDefaultToZeroValues(t *testing.T) {
	rec := &neo4j.Record{Keys: []string{"uuid"}, Values: []any{"only-uuid"}}

	got := recordToRaw(rec)

	if got.UUID != "only-uuid" {
		t.Errorf("got.UUID = %q, want %q", got.UUID, "only-uuid")
	}
	if got.Score != 0 {
		t.Errorf("got.Score = %v, want 0", got.Score)
	}
	if got.fieldCount != 1 {
		t.Errorf("fieldCount = %d, want 1", got.fieldCount)
	}
}

func TestRerank_RRFMergesAcrossMethods(t *testing.T) {
	grouped := map[string][]rawResult{
		"fulltext": {{UUID: "a", Score: 0.9}},
		"vector":   {{UUID: "a", Score: 0.95}, {UUID: "b", Score: 0.2}},
	}

	got := rerank(grouped, RRF, 60, 10, ChunkResult)

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].UUID != "a" {
		t.Errorf("got[0].UUID = %q, want %q", got[0].UUID, "a")
	}
}

func TestRerank_ScoreOnlyFlattensAndSorts(t *testing.T) {
	grouped := map[string][]rawResult{
		"fulltext": {{UUID: "a", Score: 0.3}},
		"vector":   {{UUID: "b", Score: 0.8}},
	}

	got := rerank(grouped, ScoreOnly, 60, 10, ChunkResult)

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].UUID != "b" {
		t.Errorf("got[0].UUID = %q, want %q (higher score first)", got[0].UUID, "b")
	}
}

func TestRecordsToMaps(t *testing.T) {
	records := []*neo4j.Record{
		{Keys: []string{"uuid", "name"}, Values: []any{"1", "Acme"}},
		{Keys: []string{"uuid", "name"}, Values: []any{"2", "Globex"}},
	}

	got := recordsToMaps(records)

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0]["uuid"] != "1" || got[0]["name"] != "Acme" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1]["uuid"] != "2" || got[1]["name"] != "Globex" {
		t.Errorf("got[1] = %+v", got[1])
	}
}
