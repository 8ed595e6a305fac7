package extraction

import (
	"context"
	"testing"
)

func TestRelationshipExtractor_Extract_EmptyTextShortCircuits(t *testing.T) {
	r := NewRelationshipExtractor(nil, nil)

	rels, _, err := r.Extract(context.Background(), "", []Entity{{Name: "Acme"}})
	if err != nil {
		t.Fatalf("Extract() error = %v, want nil", err)
	}
	if rels != nil {
		t.Errorf("rels = %+v, want nil", rels)
	}
}

func TestRelationshipExtractor_Extract_NoEntitiesShortCircuits(t *testing.T) {
	r := NewRelationshipExtractor(nil, nil)

	rels, _, err := r.Extract(context.Background(), "Acme Corp makes widgets.", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v, want nil", err)
	}
	if rels != nil {
		t.Errorf("rels = %+v, want nil", rels)
	}
}

func TestRelationshipExtractor_Extract_NoModelDegradesToEmptyResult(t *testing.T) {
	r := NewRelationshipExtractor(nil, nil)

	rels, _, err := r.Extract(context.Background(), "Acme Corp makes widgets.", []Entity{{Name: "Acme Corp", Label: "Organization"}})
	if err != nil {
		t.Fatalf("Extract() with no model configured = %v, want nil (degrades instead of erroring)", err)
	}
	if rels != nil {
		t.Errorf("rels = %+v, want nil", rels)
	}
}
