package extraction

import (
	"context"
	"testing"

	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
)

func TestEntityExtractor_Extract_EmptyTextShortCircuits(t *testing.T) {
	e := NewEntityExtractor(nil, nil)

	entities, usage, err := e.Extract(context.Background(), "   ", "")
	if err != nil {
		t.Fatalf("Extract() error = %v, want nil", err)
	}
	if entities != nil {
		t.Errorf("entities = %+v, want nil", entities)
	}
	if usage != (llmfacade.Usage{}) {
		t.Errorf("usage = %+v, want zero value", usage)
	}
}

func TestEntityExtractor_Extract_NoModelDegradesToEmptyResult(t *testing.T) {
	e := NewEntityExtractor(nil, nil)

	entities, _, err := e.Extract(context.Background(), "Acme Corp makes widgets.", "")
	if err != nil {
		t.Fatalf("Extract() with no model configured = %v, want nil (degrades instead of erroring)", err)
	}
	if entities != nil {
		t.Errorf("entities = %+v, want nil", entities)
	}
}
