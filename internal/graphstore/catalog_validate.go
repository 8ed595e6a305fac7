package graphstore

import (
	"fmt"
	"strings"

	"github.com/dbczarnota/graphforrag-go/pkg/neo4j/schema"
)

// validateCatalog checks the declarative catalog in catalog.go for
// structural consistency before a Graph ever talks to Neo4j: every
// relationship's Source/Target must name a declared node label, every
// constraint/index name must be unique, and every vector index must carry
// consistent dimensions/similarity options. Adapted from
// internal/validator's label/relationship-type existence checks, with the
// live-database lookups replaced by checks against the catalog itself —
// there is no running instance to ask at this point in NewGraph.
func validateCatalog() error {
	labels := map[string]bool{}
	for _, nt := range NodeTypes() {
		if nt.Label == "" {
			return fmt.Errorf("catalog has a node type with an empty label")
		}
		if labels[nt.Label] {
			return fmt.Errorf("catalog declares node label %q more than once", nt.Label)
		}
		labels[nt.Label] = true
	}

	seenNames := map[string]bool{}
	for _, nt := range NodeTypes() {
		if err := checkNames(nt.Label, nt.Constraints, nt.Indexes, seenNames); err != nil {
			return err
		}
		if err := checkVectorIndexes(nt.Label, nt.Indexes); err != nil {
			return err
		}
	}

	for _, rt := range RelationshipTypes() {
		if rt.Label == "" {
			return fmt.Errorf("catalog has a relationship type with an empty label")
		}
		if rt.Source != "" && !labels[rt.Source] {
			return fmt.Errorf("relationship %s: source label %q is not declared: %w", rt.Label, rt.Source, ErrConfig)
		}
		if rt.Target != "" && !labels[rt.Target] {
			return fmt.Errorf("relationship %s: target label %q is not declared: %w", rt.Label, rt.Target, ErrConfig)
		}
		if err := checkNames(rt.Label, rt.Constraints, nil, seenNames); err != nil {
			return err
		}
	}

	return nil
}

func checkNames(owner string, constraints []schema.Constraint, indexes []schema.Index, seen map[string]bool) error {
	for _, c := range constraints {
		if c.Name == "" {
			return fmt.Errorf("%s: constraint with no name: %w", owner, ErrConfig)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s: constraint name %q reused across the catalog: %w", owner, c.Name, ErrConfig)
		}
		seen[c.Name] = true
	}
	for _, idx := range indexes {
		if idx.Name == "" {
			return fmt.Errorf("%s: index with no name: %w", owner, ErrConfig)
		}
		if seen[idx.Name] {
			return fmt.Errorf("%s: index name %q reused across the catalog: %w", owner, idx.Name, ErrConfig)
		}
		seen[idx.Name] = true
	}
	return nil
}

func checkVectorIndexes(label string, indexes []schema.Index) error {
	for _, idx := range indexes {
		if idx.Type != schema.VECTOR {
			continue
		}
		dims, ok := idx.Options["dimensions"].(int)
		if !ok || dims <= 0 {
			return fmt.Errorf("%s: vector index %q has no valid dimensions option: %w", label, idx.Name, ErrConfig)
		}
		if dims != EmbeddingDimensions {
			return fmt.Errorf("%s: vector index %q declares %d dimensions, embedder produces %d: %w",
				label, idx.Name, dims, EmbeddingDimensions, ErrConfig)
		}
		if sim, ok := idx.Options["similarity_function"].(string); !ok || strings.TrimSpace(sim) == "" {
			return fmt.Errorf("%s: vector index %q has no similarity_function option: %w", label, idx.Name, ErrConfig)
		}
	}
	return nil
}
