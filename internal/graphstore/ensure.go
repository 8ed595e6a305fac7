package graphstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dbczarnota/graphforrag-go/internal/serializer"
)

// EnsureSchema creates every constraint and index in the catalog that
// doesn't already exist, a Go port of
// schema_manager.py::ensure_indices_and_constraints. Statement text is
// produced by internal/serializer's Cypher templates (the teacher's
// codegen serializer, repurposed here to emit DDL this package executes
// directly via IF NOT EXISTS rather than handing text to a generated-file
// writer).
func (g *Graph) EnsureSchema(ctx context.Context) error {
	cypherSerializer := serializer.NewCypherSerializer()

	var statements []string
	for _, nt := range NodeTypes() {
		node := nt
		block, err := cypherSerializer.SerializeNodeType(&node)
		if err != nil {
			return fmt.Errorf("serialize node type %s: %w: %w", node.Label, ErrConfig, err)
		}
		statements = append(statements, splitStatements(block)...)
	}
	for _, rt := range RelationshipTypes() {
		rel := rt
		block, err := cypherSerializer.SerializeRelationshipType(&rel)
		if err != nil {
			return fmt.Errorf("serialize relationship type %s: %w: %w", rel.Label, ErrConfig, err)
		}
		statements = append(statements, splitStatements(block)...)
	}

	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()

	statements = append(statements, relationshipIndexStatements()...)

	for _, stmt := range statements {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, stmt, nil)
		})
		if err != nil {
			return fmt.Errorf("apply schema statement %q: %w: %w", stmt, ErrPermanentStore, err)
		}
	}
	return nil
}

// relationshipIndexStatements returns the fulltext and vector index DDL for
// RELATES_TO.fact_sentence/fact_embedding and
// MENTIONS.fact_sentence/fact_embedding.
// schema.RelationshipType carries no Indexes field (unlike NodeType), so
// the declarative catalog walk above cannot express relationship-level
// indexes; these statements are issued directly instead of extending the
// shared schema package this late for two call sites.
func relationshipIndexStatements() []string {
	return []string{
		`CREATE FULLTEXT INDEX relationship_fact_ft IF NOT EXISTS FOR ()-[r:RELATES_TO]-() ON EACH [r.fact_sentence]`,
		`CREATE FULLTEXT INDEX mentions_fact_ft IF NOT EXISTS FOR ()-[r:MENTIONS]-() ON EACH [r.fact_sentence]`,
		fmt.Sprintf(`CREATE VECTOR INDEX relates_to_fact_embedding_vector IF NOT EXISTS FOR ()-[r:RELATES_TO]-() ON (r.fact_embedding) OPTIONS {indexConfig: {`+"`vector.dimensions`"+`: %d, `+"`vector.similarity_function`"+`: 'cosine'}}`, EmbeddingDimensions),
		fmt.Sprintf(`CREATE VECTOR INDEX mentions_fact_embedding_vector IF NOT EXISTS FOR ()-[r:MENTIONS]-() ON (r.fact_embedding) OPTIONS {indexConfig: {`+"`vector.dimensions`"+`: %d, `+"`vector.similarity_function`"+`: 'cosine'}}`, EmbeddingDimensions),
	}
}

// ClearSchema drops every constraint and index that SHOW CONSTRAINTS and
// SHOW INDEXES list, adapted from
// schema_manager.py::clear_all_known_indexes_and_constraints. It does not
// limit itself to the objects EnsureSchema and EnsureDynamicIndexes create:
// constraints and indexes made by anything else in the database are dropped
// too.
func (g *Graph) ClearSchema(ctx context.Context) error {
	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()

	names, err := collectIndexAndConstraintNames(ctx, session)
	if err != nil {
		return fmt.Errorf("list schema objects: %w: %w", ErrTransientStore, err)
	}

	for kind, nameList := range names {
		for _, name := range nameList {
			stmt := fmt.Sprintf("DROP %s %s IF EXISTS", kind, quoteIdentifier(name))
			_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
				return tx.Run(ctx, stmt, nil)
			})
			if err != nil {
				g.log.Warn("failed to drop schema object", "kind", kind, "name", name, "error", err)
			}
		}
	}
	return nil
}

func collectIndexAndConstraintNames(ctx context.Context, session neo4j.SessionWithContext) (map[string][]string, error) {
	out := map[string][]string{"CONSTRAINT": {}, "INDEX": {}}

	res, err := session.Run(ctx, "SHOW CONSTRAINTS YIELD name RETURN name", nil)
	if err != nil {
		return nil, err
	}
	for res.Next(ctx) {
		if v, ok := res.Record().Get("name"); ok {
			out["CONSTRAINT"] = append(out["CONSTRAINT"], fmt.Sprintf("%v", v))
		}
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	res, err = session.Run(ctx, "SHOW INDEXES YIELD name RETURN name", nil)
	if err != nil {
		return nil, err
	}
	for res.Next(ctx) {
		if v, ok := res.Record().Get("name"); ok {
			out["INDEX"] = append(out["INDEX"], fmt.Sprintf("%v", v))
		}
	}
	return out, res.Err()
}

func quoteIdentifier(name string) string {
	return fmt.Sprintf("`%s`", name)
}

// splitStatements breaks the ";\n"-joined, ";"-terminated block returned by
// internal/serializer's Cypher templates back into individual statements.
func splitStatements(block string) []string {
	parts := strings.Split(block, ";\n")
	statements := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimSuffix(p, ";")
		p = strings.TrimSpace(p)
		if p != "" {
			statements = append(statements, p)
		}
	}
	return statements
}
