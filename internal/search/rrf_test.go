package search

import "testing"

func TestApplyRRF_MergesAndRanksByReciprocalRank(t *testing.T) {
	fulltext := []rawResult{
		{UUID: "a", Score: 0.9, Name: "Alpha"},
		{UUID: "b", Score: 0.5, Name: "Beta"},
	}
	vector := []rawResult{
		{UUID: "b", Score: 0.95, Name: "Beta"},
		{UUID: "c", Score: 0.4, Name: "Gamma"},
	}

	got := ApplyRRF([][]rawResult{fulltext, vector}, 60, 10, EntityResult)

	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	// "b" appears at rank 0 in one list and rank 1 in fulltext => highest combined RRF score.
	if got[0].UUID != "b" {
		t.Errorf("got[0].UUID = %q, want %q (should win by appearing in both lists)", got[0].UUID, "b")
	}
	if got[0].Name != "Beta" {
		t.Errorf("got[0].Name = %q, want %q", got[0].Name, "Beta")
	}
	for _, item := range got {
		if item.Type != EntityResult {
			t.Errorf("item.Type = %v, want %v", item.Type, EntityResult)
		}
	}
}

func TestApplyRRF_SkipsEmptyUUIDAndRespectsLimit(t *testing.T) {
	list := []rawResult{
		{UUID: "", Score: 1.0},
		{UUID: "a", Score: 0.8},
		{UUID: "b", Score: 0.6},
		{UUID: "c", Score: 0.4},
	}

	got := ApplyRRF([][]rawResult{list}, 60, 2, ChunkResult)

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2 (limit applied)", len(got))
	}
	if got[0].UUID != "a" || got[1].UUID != "b" {
		t.Errorf("got UUIDs = [%s, %s], want [a, b]", got[0].UUID, got[1].UUID)
	}
}

func TestApplyRRF_PopulatesFieldsByResultType(t *testing.T) {
	rel := []rawResult{{UUID: "r1", Score: 0.5, FactSentence: "A relates to B", SourceNodeUUID: "a", TargetNodeUUID: "b"}}

	got := ApplyRRF([][]rawResult{rel}, 60, 10, RelationshipResult)

	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	item := got[0]
	if item.FactSentence != "A relates to B" || item.SourceNodeUUID != "a" || item.TargetNodeUUID != "b" {
		t.Errorf("item = %+v, want fact/source/target populated", item)
	}
	if item.Name != "" || item.Content != "" {
		t.Errorf("item = %+v, want Name/Content left zero for a relationship result", item)
	}
}

func TestScoreSortResults_DedupesByUUIDKeepingHighestScore(t *testing.T) {
	results := []rawResult{
		{UUID: "a", Score: 0.3, Content: "low"},
		{UUID: "a", Score: 0.9, Content: "high"},
		{UUID: "b", Score: 0.5, Content: "mid"},
	}

	got := scoreSortResults(results, 10, ChunkResult)

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].UUID != "a" || got[0].Content != "high" {
		t.Errorf("got[0] = %+v, want the higher-scoring occurrence of %q", got[0], "a")
	}
	if got[1].UUID != "b" {
		t.Errorf("got[1].UUID = %q, want %q", got[1].UUID, "b")
	}
}

func TestScoreSortResults_LimitZeroMeansUnbounded(t *testing.T) {
	results := []rawResult{
		{UUID: "a", Score: 0.1},
		{UUID: "b", Score: 0.2},
		{UUID: "c", Score: 0.3},
	}

	got := scoreSortResults(results, 0, ChunkResult)

	if len(got) != 3 {
		t.Errorf("len(got) = %d, want 3 (limit 0 should not truncate)", len(got))
	}
}
