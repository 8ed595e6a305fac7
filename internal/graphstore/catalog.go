// Package graphstore implements the Neo4j-backed node manager, schema
// manager, and source-deletion cascade described by the knowledge graph's
// data model.
package graphstore

import (
	"github.com/dbczarnota/graphforrag-go/pkg/neo4j/schema"
)

// EmbeddingDimensions is the vector width produced by the configured
// embedder. text-embedding-3-small (the default embedder, see
// internal/llmfacade/embedder.go) produces 1536-dimensional vectors.
const EmbeddingDimensions = 1536

// Catalog is the full declarative node/relationship catalog for the
// knowledge graph: Source, Chunk, Product, Entity nodes and their
// relationships. EnsureSchema walks this catalog to create constraints and
// indexes; ClearSchema does not consult it (it drops what the database
// lists).
var Catalog = struct {
	Source    schema.NodeType
	Chunk     schema.NodeType
	Product   schema.NodeType
	Entity    schema.NodeType
	BelongsTo schema.RelationshipType
	NextChunk schema.RelationshipType
	Mentions  schema.RelationshipType
	RelatesTo schema.RelationshipType
}{
	Source: schema.NodeType{
		Label:       "Source",
		Description: "A document, feed item, or catalog entry that chunks and products are derived from.",
		Properties: []schema.Property{
			{Name: "uuid", Type: schema.STRING, Required: true, Unique: true},
			{Name: "name", Type: schema.STRING, Required: true},
			{Name: "source_type", Type: schema.STRING},
			{Name: "source_content_hash", Type: schema.STRING},
			{Name: "content", Type: schema.STRING},
			{Name: "content_embedding", Type: schema.LIST_FLOAT},
			{Name: "created_at", Type: schema.DATETIME, Required: true},
			{Name: "updated_at", Type: schema.DATETIME, Required: true},
		},
		Constraints: []schema.Constraint{
			{Name: "source_uuid_unique", Type: schema.UNIQUE, Properties: []string{"uuid"}},
		},
		Indexes: []schema.Index{
			{Name: "source_name_ft", Type: schema.FULLTEXT, Properties: []string{"name", "content"}},
			{Name: "source_content_embedding_vector", Type: schema.VECTOR, Properties: []string{"content_embedding"},
				Options: map[string]any{"dimensions": EmbeddingDimensions, "similarity_function": "cosine"}},
		},
	},
	Chunk: schema.NodeType{
		Label:       "Chunk",
		Description: "One ordered unit of a Source's text content.",
		Properties: []schema.Property{
			{Name: "uuid", Type: schema.STRING, Required: true, Unique: true},
			{Name: "content", Type: schema.STRING, Required: true},
			{Name: "chunk_number", Type: schema.INTEGER, Required: true},
			{Name: "content_embedding", Type: schema.LIST_FLOAT},
			{Name: "created_at", Type: schema.DATETIME, Required: true},
			{Name: "updated_at", Type: schema.DATETIME, Required: true},
		},
		Constraints: []schema.Constraint{
			{Name: "chunk_uuid_unique", Type: schema.UNIQUE, Properties: []string{"uuid"}},
		},
		Indexes: []schema.Index{
			{Name: "chunk_content_embedding_vector", Type: schema.VECTOR, Properties: []string{"content_embedding"},
				Options: map[string]any{"dimensions": EmbeddingDimensions, "similarity_function": "cosine"}},
			{Name: "chunk_content_ft", Type: schema.FULLTEXT, Properties: []string{"content"}},
		},
	},
	Product: schema.NodeType{
		Label:       "Product",
		Description: "A catalog item, promoted from an Entity when its facts look like a product, or ingested directly.",
		Properties: []schema.Property{
			{Name: "uuid", Type: schema.STRING, Required: true, Unique: true},
			{Name: "name", Type: schema.STRING, Required: true},
			{Name: "content", Type: schema.STRING},
			{Name: "price", Type: schema.FLOAT},
			{Name: "sku", Type: schema.STRING},
			{Name: "category", Type: schema.STRING},
			{Name: "name_embedding", Type: schema.LIST_FLOAT},
			{Name: "content_embedding", Type: schema.LIST_FLOAT},
			{Name: "created_at", Type: schema.DATETIME, Required: true},
			{Name: "updated_at", Type: schema.DATETIME, Required: true},
		},
		Constraints: []schema.Constraint{
			{Name: "product_uuid_unique", Type: schema.UNIQUE, Properties: []string{"uuid"}},
		},
		Indexes: []schema.Index{
			{Name: "product_name_embedding_vector", Type: schema.VECTOR, Properties: []string{"name_embedding"},
				Options: map[string]any{"dimensions": EmbeddingDimensions, "similarity_function": "cosine"}},
			{Name: "product_content_embedding_vector", Type: schema.VECTOR, Properties: []string{"content_embedding"},
				Options: map[string]any{"dimensions": EmbeddingDimensions, "similarity_function": "cosine"}},
			{Name: "product_name_content_ft", Type: schema.FULLTEXT, Properties: []string{"name", "content"}},
		},
	},
	Entity: schema.NodeType{
		Label:       "Entity",
		Description: "A resolved real-world thing mentioned by one or more chunks, identified by (normalized_name, label).",
		Properties: []schema.Property{
			{Name: "uuid", Type: schema.STRING, Required: true, Unique: true},
			{Name: "name", Type: schema.STRING, Required: true},
			{Name: "normalized_name", Type: schema.STRING, Required: true},
			{Name: "label", Type: schema.STRING, Required: true},
			{Name: "name_embedding", Type: schema.LIST_FLOAT},
			{Name: "created_at", Type: schema.DATETIME, Required: true},
			{Name: "updated_at", Type: schema.DATETIME, Required: true},
		},
		Constraints: []schema.Constraint{
			{Name: "entity_uuid_unique", Type: schema.UNIQUE, Properties: []string{"uuid"}},
		},
		Indexes: []schema.Index{
			{Name: "entity_name_embedding_vector", Type: schema.VECTOR, Properties: []string{"name_embedding"},
				Options: map[string]any{"dimensions": EmbeddingDimensions, "similarity_function": "cosine"}},
			{Name: "entity_name_ft", Type: schema.FULLTEXT, Properties: []string{"name"}},
		},
	},
	BelongsTo: schema.RelationshipType{
		Label:       "BELONGS_TO_SOURCE",
		Source:      "Chunk",
		Target:      "Source",
		Cardinality: schema.MANY_TO_ONE,
		Description: "A Chunk or Product originates from this Source.",
	},
	NextChunk: schema.RelationshipType{
		Label:       "NEXT_CHUNK",
		Source:      "Chunk",
		Target:      "Chunk",
		Cardinality: schema.ONE_TO_ONE,
		Description: "Orders chunks within a Source; points from chunk N to chunk N+1.",
	},
	Mentions: schema.RelationshipType{
		Label:       "MENTIONS",
		Source:      "Chunk",
		Target:      "Entity",
		Cardinality: schema.MANY_TO_MANY,
		Description: "A Chunk mentions an Entity or Product (target label varies; see node manager).",
		Properties: []schema.Property{
			{Name: "uuid", Type: schema.STRING, Required: true, Unique: true},
			{Name: "fact_sentence", Type: schema.STRING},
			{Name: "fact_embedding", Type: schema.LIST_FLOAT},
		},
	},
	RelatesTo: schema.RelationshipType{
		Label:       "RELATES_TO",
		Source:      "Entity",
		Target:      "Entity",
		Cardinality: schema.MANY_TO_MANY,
		Description: "An extracted relationship between two resolved entities/products.",
		Properties: []schema.Property{
			{Name: "uuid", Type: schema.STRING, Required: true, Unique: true},
			{Name: "relation_label", Type: schema.STRING},
			{Name: "fact_sentence", Type: schema.STRING, Required: true},
			{Name: "fact_embedding", Type: schema.LIST_FLOAT},
			{Name: "source_chunk_uuid", Type: schema.STRING},
		},
	},
}

// NodeTypes returns every declared node type, in a stable order, for
// schema walking (EnsureSchema/EnsureDynamicIndexes/catalog validation).
func NodeTypes() []schema.NodeType {
	return []schema.NodeType{Catalog.Source, Catalog.Chunk, Catalog.Product, Catalog.Entity}
}

// RelationshipTypes returns every declared relationship type, in a stable
// order.
func RelationshipTypes() []schema.RelationshipType {
	return []schema.RelationshipType{Catalog.BelongsTo, Catalog.NextChunk, Catalog.Mentions, Catalog.RelatesTo}
}

// reservedDynamicProperties lists properties that are part of the fixed
// catalog above and must never be re-created as a dynamic per-label
// B-tree index (see introspect.go), mirroring
// schema_manager.py's EXCLUDED_PROPERTIES_FOR_DYNAMIC_BTREE.
var reservedDynamicProperties = map[string]bool{
	"uuid": true, "name": true, "content": true, "chunk_number": true,
	"name_embedding": true, "content_embedding": true, "normalized_name": true,
	"label": true, "created_at": true, "updated_at": true,
	"fact_sentence": true, "fact_embedding": true, "relation_label": true,
	"source_chunk_uuid": true,
}
