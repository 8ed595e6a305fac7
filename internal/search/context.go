package search

import (
	"fmt"
	"strings"
)

// contextKindOrder fixes the section order Search's context_snippet groups
// results by, matching the order SearchConfig declares its per-kind
// configs in.
var contextKindOrder = []ResultType{
	ChunkResult, EntityResult, RelationshipResult, MentionResult, SourceResult, ProductResult,
}

// buildContextSnippet assembles the final answer's items into one ordered,
// kind-grouped textual block suitable for handing to an LLM as context, a
// Go port of search_manager.py's context-assembly step (spec step 7):
// group by kind in a fixed order, render one line per item.
func buildContextSnippet(items []ResultItem) string {
	byKind := map[ResultType][]ResultItem{}
	for _, item := range items {
		byKind[item.Type] = append(byKind[item.Type], item)
	}

	var b strings.Builder
	for _, kind := range contextKindOrder {
		group := byKind[kind]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n", kind)
		for _, item := range group {
			line := contextLineFor(item)
			if line == "" {
				continue
			}
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// contextLineFor renders the single salient text field a kind carries.
func contextLineFor(item ResultItem) string {
	switch item.Type {
	case ChunkResult, SourceResult:
		return item.Content
	case EntityResult:
		if item.Label != "" {
			return fmt.Sprintf("%s (%s)", item.Name, item.Label)
		}
		return item.Name
	case ProductResult:
		if item.Content != "" {
			return fmt.Sprintf("%s: %s", item.Name, item.Content)
		}
		return item.Name
	case RelationshipResult, MentionResult:
		return item.FactSentence
	default:
		return item.Name
	}
}

// buildSourceDataReferences collects the unique Chunk/Source/Product items
// among the final answer's items — the node kinds that actually carry
// ingested content a reader can cite as provenance, per spec step 7's
// "de-duplicated set of Chunks/Products/Sources that contributed facts."
// Entities/Relationships/Mentions are excluded: they describe the graph's
// structure, not a source document.
func buildSourceDataReferences(items []ResultItem) []ResultItem {
	seen := map[string]bool{}
	var refs []ResultItem
	for _, item := range items {
		switch item.Type {
		case ChunkResult, SourceResult, ProductResult:
		default:
			continue
		}
		if item.UUID == "" || seen[item.UUID] {
			continue
		}
		seen[item.UUID] = true
		refs = append(refs, item)
	}
	return refs
}

// buildSourceDataSnippet renders source_data_references as one line per
// reference, the textual snippet search_types.py::source_data_snippet
// describes as "derived from the source_data_references."
func buildSourceDataSnippet(refs []ResultItem) string {
	var b strings.Builder
	for _, r := range refs {
		line := contextLineFor(r)
		if line == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
