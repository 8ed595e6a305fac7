package search

import "sort"

// rawResult is one row from a single search method's Cypher part, keyed by
// the fields RRF and per-type population need — the Go equivalent of the
// loosely-typed dict records search_manager.py works with directly from
// the Neo4j driver.
type rawResult struct {
	UUID           string
	Score          float64
	Name           string
	Content        string
	FactSentence   string
	Label          string
	SourceNodeUUID string
	TargetNodeUUID string
	fieldCount     int // breaks RRF's tie-break, see ApplyRRF
}

// ApplyRRF merges the per-method result lists for one search kind with
// reciprocal rank fusion and slices to limit, a direct port of
// search_manager.py::SearchManager._apply_rrf. Each inner slice of
// resultsLists is one method's results already ranked best-first.
func ApplyRRF(resultsLists [][]rawResult, rrfK, limit int, resultType ResultType) []ResultItem {
	scores := map[string]float64{}
	byUUID := map[string]rawResult{}

	for _, methodResults := range resultsLists {
		for rank, item := range methodResults {
			if item.UUID == "" {
				continue
			}
			scores[item.UUID] += 1.0 / float64(rrfK+rank+1)

			existing, ok := byUUID[item.UUID]
			if !ok || item.Score > existing.Score || (item.Score == existing.Score && item.fieldCount > existing.fieldCount) {
				byUUID[item.UUID] = item
			}
		}
	}

	uuids := make([]string, 0, len(scores))
	for u := range scores {
		uuids = append(uuids, u)
	}
	sort.SliceStable(uuids, func(i, j int) bool {
		si, sj := scores[uuids[i]], scores[uuids[j]]
		if si != sj {
			return si > sj
		}
		return byUUID[uuids[i]].Score > byUUID[uuids[j]].Score
	})
	if limit > 0 && len(uuids) > limit {
		uuids = uuids[:limit]
	}

	out := make([]ResultItem, 0, len(uuids))
	for _, u := range uuids {
		raw := byUUID[u]
		item := ResultItem{
			UUID:     raw.UUID,
			Score:    scores[u],
			Type:     resultType,
			Metadata: map[string]any{"original_search_score": raw.Score},
		}
		switch resultType {
		case ChunkResult, SourceResult:
			item.Content = raw.Content
		case EntityResult:
			item.Name = raw.Name
			item.Label = raw.Label
		case ProductResult:
			item.Name = raw.Name
			item.Content = raw.Content
		case RelationshipResult, MentionResult:
			item.FactSentence = raw.FactSentence
			item.SourceNodeUUID = raw.SourceNodeUUID
			item.TargetNodeUUID = raw.TargetNodeUUID
		}
		out = append(out, item)
	}
	return out
}

// fuseRankedLists re-applies reciprocal rank fusion to lists that are
// already ResultItems rather than raw Cypher rows — the top-level fusion
// step that merges each sub-query's per-kind ranked list into one, a
// direct port of the RRF formula used a second time over
// search_manager.py::SearchManager's per-sub-query result lists. Each
// inner slice is one sub-query's already kind-reranked results,
// best-first.
func fuseRankedLists(lists [][]ResultItem, rrfK, limit int) []ResultItem {
	scores := map[string]float64{}
	byUUID := map[string]ResultItem{}

	for _, list := range lists {
		for rank, item := range list {
			if item.UUID == "" {
				continue
			}
			scores[item.UUID] += 1.0 / float64(rrfK+rank+1)

			existing, ok := byUUID[item.UUID]
			if !ok || item.Score > existing.Score {
				byUUID[item.UUID] = item
			}
		}
	}

	uuids := make([]string, 0, len(scores))
	for u := range scores {
		uuids = append(uuids, u)
	}
	sort.SliceStable(uuids, func(i, j int) bool {
		si, sj := scores[uuids[i]], scores[uuids[j]]
		if si != sj {
			return si > sj
		}
		return byUUID[uuids[i]].Score > byUUID[uuids[j]].Score
	})
	if limit > 0 && len(uuids) > limit {
		uuids = uuids[:limit]
	}

	out := make([]ResultItem, 0, len(uuids))
	for _, u := range uuids {
		item := byUUID[u]
		item.Metadata = mergeOriginalScore(item.Metadata, item.Score)
		item.Score = scores[u]
		out = append(out, item)
	}
	return out
}

func mergeOriginalScore(metadata map[string]any, score float64) map[string]any {
	out := map[string]any{"original_search_score": score}
	for k, v := range metadata {
		if k != "original_search_score" {
			out[k] = v
		}
	}
	return out
}

// scoreSortResults orders a flattened union of method results by score
// descending and slices to limit, the non-RRF reranker path
// (Reranker == ScoreOnly), deduplicating by uuid in favor of the
// highest-scoring occurrence.
func scoreSortResults(results []rawResult, limit int, resultType ResultType) []ResultItem {
	best := map[string]rawResult{}
	for _, r := range results {
		if r.UUID == "" {
			continue
		}
		if existing, ok := best[r.UUID]; !ok || r.Score > existing.Score {
			best[r.UUID] = r
		}
	}
	sorted := make([]rawResult, 0, len(best))
	for _, r := range best {
		sorted = append(sorted, r)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]ResultItem, 0, len(sorted))
	for _, raw := range sorted {
		item := ResultItem{UUID: raw.UUID, Score: raw.Score, Type: resultType}
		switch resultType {
		case ChunkResult, SourceResult:
			item.Content = raw.Content
		case EntityResult:
			item.Name = raw.Name
			item.Label = raw.Label
		case ProductResult:
			item.Name = raw.Name
			item.Content = raw.Content
		case RelationshipResult, MentionResult:
			item.FactSentence = raw.FactSentence
			item.SourceNodeUUID = raw.SourceNodeUUID
			item.TargetNodeUUID = raw.TargetNodeUUID
		}
		out = append(out, item)
	}
	return out
}
