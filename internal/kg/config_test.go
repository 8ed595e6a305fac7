package kg

import "testing"

func TestDefaultPipeline(t *testing.T) {
	p := DefaultPipeline([]string{"claude-opus-4", "gpt-4.1-mini"}, 1536, 0.85)

	if p.PipelineType() != SimpleKG {
		t.Errorf("PipelineType() = %v, want SimpleKG", p.PipelineType())
	}
	if len(p.EntityTypes) != 2 {
		t.Fatalf("len(EntityTypes) = %d, want 2", len(p.EntityTypes))
	}
	if len(p.RelationTypes) != 1 || p.RelationTypes[0].Name != "RELATES_TO" {
		t.Errorf("RelationTypes = %+v, want a single RELATES_TO entry", p.RelationTypes)
	}
	if p.PerformEntityResolution == nil || !*p.PerformEntityResolution {
		t.Errorf("PerformEntityResolution = %v, want true", p.PerformEntityResolution)
	}
	if p.LLMConfig.Model != "claude-opus-4,gpt-4.1-mini" {
		t.Errorf("LLMConfig.Model = %q, want the fallback chain joined with commas", p.LLMConfig.Model)
	}
	if p.EmbedderConfig.Dimensions != 1536 {
		t.Errorf("EmbedderConfig.Dimensions = %d, want 1536 (derived from the embeddingDimensions argument)", p.EmbedderConfig.Dimensions)
	}
	resolver, ok := p.EntityResolver.(*SemanticMatchResolver)
	if !ok {
		t.Fatalf("EntityResolver = %T, want *SemanticMatchResolver", p.EntityResolver)
	}
	if resolver.Threshold != 0.85 {
		t.Errorf("resolver.Threshold = %v, want 0.85 (derived from the resolverSimilarityThreshold argument)", resolver.Threshold)
	}
}
