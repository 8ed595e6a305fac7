package graphstore

import (
	"errors"
	"testing"

	"github.com/dbczarnota/graphforrag-go/pkg/neo4j/schema"
)

func TestValidateCatalog_RealCatalogIsConsistent(t *testing.T) {
	if err := validateCatalog(); err != nil {
		t.Fatalf("validateCatalog() on the real catalog = %v, want nil", err)
	}
}

func TestCheckNames_RejectsDuplicateAcrossOwners(t *testing.T) {
	seen := map[string]bool{}
	constraintsA := []schema.Constraint{{Name: "chunk_uuid_unique"}}
	if err := checkNames("Chunk", constraintsA, nil, seen); err != nil {
		t.Fatalf("first checkNames() = %v, want nil", err)
	}

	constraintsB := []schema.Constraint{{Name: "chunk_uuid_unique"}}
	err := checkNames("Entity", constraintsB, nil, seen)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("checkNames() with a reused name = %v, want a wrapped ErrConfig", err)
	}
}

func TestCheckNames_RejectsEmptyName(t *testing.T) {
	seen := map[string]bool{}
	indexes := []schema.Index{{Name: ""}}
	if err := checkNames("Chunk", nil, indexes, seen); !errors.Is(err, ErrConfig) {
		t.Errorf("checkNames() with an empty index name = %v, want a wrapped ErrConfig", err)
	}
}

func TestCheckVectorIndexes_RejectsWrongDimensions(t *testing.T) {
	indexes := []schema.Index{{
		Name: "chunk_embedding_vector",
		Type: schema.VECTOR,
		Options: map[string]any{
			"dimensions":          768,
			"similarity_function": "cosine",
		},
	}}

	err := checkVectorIndexes("Chunk", indexes)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("checkVectorIndexes() with mismatched dimensions = %v, want a wrapped ErrConfig", err)
	}
}

func TestCheckVectorIndexes_RejectsMissingSimilarityFunction(t *testing.T) {
	indexes := []schema.Index{{
		Name:    "chunk_embedding_vector",
		Type:    schema.VECTOR,
		Options: map[string]any{"dimensions": EmbeddingDimensions},
	}}

	if err := checkVectorIndexes("Chunk", indexes); !errors.Is(err, ErrConfig) {
		t.Errorf("checkVectorIndexes() with no similarity_function = %v, want a wrapped ErrConfig", err)
	}
}

func TestCheckVectorIndexes_IgnoresNonVectorIndexes(t *testing.T) {
	indexes := []schema.Index{{Name: "chunk_content_ft", Type: schema.FULLTEXT}}

	if err := checkVectorIndexes("Chunk", indexes); err != nil {
		t.Errorf("checkVectorIndexes() on a fulltext index = %v, want nil", err)
	}
}
