package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dbczarnota/graphforrag-go/internal/graphstore"
	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
	"github.com/dbczarnota/graphforrag-go/pkg/neo4j/schema"
)

const cypherGenerationTemplate = `Task: Generate a Cypher statement to query a graph database.
Instructions:
Use only the provided relationship types and properties in the schema.
Do not use any other relationship types or properties that are not provided.
Focus on constructing base Cypher queries using property matching and relationship traversal.

Property Value Handling:
- Case-Insensitivity for Strings: property values may have mixed casing. Use case-insensitive comparisons on string properties when appropriate, e.g. toLower(n.property) = toLower('value') or toLower(n.property) CONTAINS toLower('keyword').
- List Properties: to check if a value exists in a list, use value IN n.listProperty, or ANY(item IN n.listProperty WHERE toLower(item) = toLower('value')) for case-insensitive element matching, or ANY(item IN n.listProperty WHERE toLower(item) CONTAINS toLower('substring')) for substring matching.

Combining Results from Different Queries:
- If the question implies searching across distinct node types or distinct graph patterns, use UNION ALL to combine the results.
- Every branch of a UNION ALL must return the same columns with the same names and compatible types; alias with AS where needed.

Do not generate queries that call db.index procedures for vector or fulltext search. Those searches are handled by other components.

Schema:
%s

Note: do not include any explanations or apologies in your response.
Do not answer anything other than a Cypher statement.
Output only the Cypher query. If you cannot generate one from the schema and question, output the single word "NONE".

Examples:
# What investment firms are in San Francisco?
MATCH (mgr:Manager)-[:LOCATED_AT]->(mgrAddress:Address)
WHERE toLower(mgrAddress.city) = toLower('San Francisco')
RETURN mgr.managerName

# What documents mention "renewable energy"?
MATCH (doc:Document)
WHERE toLower(doc.content) CONTAINS toLower('renewable energy')
RETURN doc.title, doc.content

# Find products with "Dell XPS 13" in their description.
MATCH (p:Product)
WHERE toLower(p.description) CONTAINS toLower('Dell XPS 13')
RETURN p.name, p.description

# Find products that have the tag "eco-friendly". (tags is LIST<STRING>)
MATCH (p:Product)
WHERE ANY(tag IN p.tags WHERE toLower(tag) = toLower('eco-friendly'))
RETURN p.name, p.tags

# Find any Entity or Product named "Apex Innovations".
MATCH (e:Entity) WHERE toLower(e.name) = toLower('Apex Innovations') RETURN e.name AS entityName, labels(e)[0] AS entityType
UNION ALL
MATCH (p:Product) WHERE toLower(p.name) = toLower('Apex Innovations') RETURN p.name AS entityName, labels(p)[0] AS entityType

The question is:
%s`

type generatedCypherQuery struct {
	CypherQuery string `json:"cypher_query"`
}

// CypherGenerator turns a natural-language question into a Cypher query
// against the knowledge graph's schema, a Go port of
// graphforrag_core/cypher_generator.py::CypherGenerator. Its agent carries
// no system prompt: every instruction lives in the per-call user prompt,
// matching the Python original.
type CypherGenerator struct {
	agent *llmfacade.Agent[generatedCypherQuery]
}

// NewCypherGenerator builds a CypherGenerator over an already-assembled
// fallback model. The schema string it prompts with comes from the
// package-level SchemaString, not from a live graph connection — the
// caller (Manager.Search) owns running the query the LLM returns.
func NewCypherGenerator(model *llmfacade.FallbackModel, log *slog.Logger) *CypherGenerator {
	return &CypherGenerator{
		agent: llmfacade.NewAgent[generatedCypherQuery](model, "", log),
	}
}

// GenerateCypher asks the LLM for a Cypher query answering question,
// against either customSchema (if non-empty) or the catalog-derived
// schema string. Returns ("", usage, nil) — not an error — when the
// schema is empty or the LLM declines with "NONE", matching the Python
// original's degrade-to-nothing behavior.
func (c *CypherGenerator) GenerateCypher(ctx context.Context, question, customSchema string) (string, llmfacade.Usage, error) {
	schemaString := customSchema
	if schemaString == "" {
		schemaString = SchemaString()
	}
	if strings.TrimSpace(schemaString) == "" || strings.Contains(schemaString, "Error") {
		return "", llmfacade.Usage{}, nil
	}

	prompt := fmt.Sprintf(cypherGenerationTemplate, schemaString, question)
	result, usage, err := c.agent.Run(ctx, prompt)
	if err != nil {
		return "", usage, nil
	}

	query := strings.TrimSpace(result.CypherQuery)
	if query == "" || strings.EqualFold(query, "NONE") {
		return "", usage, nil
	}
	return query, usage, nil
}

// SchemaString renders the catalog's node/relationship types into the
// plain-text schema description the Cypher-generation prompt expects, a Go
// port of schema_manager.py::get_schema_string restricted to the static
// catalog (the Python original also merges in live-discovered dynamic
// properties via introspect.go's DynamicBTreeProperties; callers needing
// those can still pass a richer customSchema to GenerateCypher).
func SchemaString() string {
	var b strings.Builder
	b.WriteString("Node properties:\n")
	for _, nt := range graphstore.NodeTypes() {
		fmt.Fprintf(&b, "- %s: %s\n", nt.Label, propertyList(nt.Properties))
	}
	b.WriteString("\nRelationships:\n")
	for _, rt := range graphstore.RelationshipTypes() {
		fmt.Fprintf(&b, "- (:%s)-[:%s]->(:%s): %s\n", rt.Source, rt.Label, rt.Target, propertyList(rt.Properties))
	}
	return b.String()
}

func propertyList(props []schema.Property) string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.Type))
	}
	return strings.Join(names, ", ")
}
