// Package ingest drives documents and product records into the graph
// store: source creation, chunking, entity extraction/resolution, and
// relationship extraction, a Go port of
// graphforrag_core/build_knowledge_base.py's canonical ingestion path (the
// only one ported — see the decision on graphforrag.py's legacy duplicate
// path in the design notes).
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dbczarnota/graphforrag-go/internal/extraction"
	"github.com/dbczarnota/graphforrag-go/internal/graphstore"
	"github.com/dbczarnota/graphforrag-go/internal/llmfacade"
	"github.com/dbczarnota/graphforrag-go/internal/resolver"
)

// Item is one unit of source material to ingest: either a text chunk or a
// product definition, selected by NodeType, a Go port of the
// item_data/page_content pair passed through _process_single_chunk_for_kb.
type Item struct {
	NodeType    string // "chunk" (default) or "product"
	ContentType string // "text" (default) or "json"
	PageContent string
	Metadata    map[string]any
}

// Result is what AddDocumentsFromSource returns for the whole batch: the
// Source's uuid, the uuid of every Chunk/Product created, and accumulated
// LLM/embedding usage.
type Result struct {
	SourceUUID uuid.UUID
	ItemUUIDs  []uuid.UUID
	Usage      llmfacade.Usage
}

// Orchestrator wires the node manager, embedder, extractors, and resolver
// together into the single ingestion entry point.
type Orchestrator struct {
	graph         *graphstore.Graph
	embedder      llmfacade.EmbedderClient
	entities      *extraction.EntityExtractor
	relationships *extraction.RelationshipExtractor
	resolver      *resolver.Resolver
	log           *slog.Logger
}

// New builds an Orchestrator over an already-connected Graph and an
// already-assembled extraction/resolution stack, all sharing one
// llmfacade.FallbackModel upstream.
func New(graph *graphstore.Graph, embedder llmfacade.EmbedderClient, entities *extraction.EntityExtractor, relationships *extraction.RelationshipExtractor, res *resolver.Resolver, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		graph:         graph,
		embedder:      embedder,
		entities:      entities,
		relationships: relationships,
		resolver:      res,
		log:           log.With("component", "ingest"),
	}
}

type resolvedMention struct {
	uuid  uuid.UUID
	name  string
	label string
}

// AddDocumentsFromSource ingests every item against one Source node, a Go
// port of add_documents_to_knowledge_base: it creates/merges the Source,
// embeds its content, then processes each item in order so that a text
// chunk's previous-chunk context carries forward (product items reset the
// running context, matching the original's behavior).
func (o *Orchestrator) AddDocumentsFromSource(ctx context.Context, sourceIdentifier, sourceType, sourceContentHash, sourceContent string, sourceMetadata map[string]any, items []Item) (Result, error) {
	var result Result

	sourceUUID, err := o.graph.Nodes().MergeSourceNode(ctx, sourceIdentifier, sourceType, sourceContentHash, sourceContent, sourceMetadata)
	if err != nil {
		return result, fmt.Errorf("merge source node for %q: %w", sourceIdentifier, err)
	}
	result.SourceUUID = sourceUUID

	if o.embedder != nil && sourceContent != "" {
		vectors, embedUsage, err := o.embedder.Embed(ctx, []string{sourceContent})
		result.Usage.Add(embedUsage)
		if err == nil && len(vectors) > 0 {
			if err := o.graph.Nodes().SetSourceContentEmbedding(ctx, sourceUUID, vectors[0]); err != nil {
				o.log.Error("set source content embedding failed", "source", sourceIdentifier, "error", err)
			}
		}
	}

	var previousChunkContent string
	for i, item := range items {
		itemUUID, usage, err := o.processItem(ctx, item, sourceUUID, &previousChunkContent)
		result.Usage.Add(usage)
		if err != nil {
			o.log.Error("failed to add item", "index", i, "source", sourceIdentifier, "error", err)
			continue
		}
		if itemUUID != uuid.Nil {
			result.ItemUUIDs = append(result.ItemUUIDs, itemUUID)
		}
	}

	o.log.Info("finished building knowledge base for source", "source", sourceIdentifier, "items_added", len(result.ItemUUIDs))
	return result, nil
}

func (o *Orchestrator) processItem(ctx context.Context, item Item, sourceUUID uuid.UUID, previousChunkContent *string) (uuid.UUID, llmfacade.Usage, error) {
	nodeType := strings.ToLower(orDefault(item.NodeType, "chunk"))

	switch nodeType {
	case "product":
		*previousChunkContent = ""
		return o.processProduct(ctx, item, sourceUUID)
	case "chunk":
		id, usage, err := o.processChunk(ctx, item, sourceUUID, *previousChunkContent)
		if err == nil {
			*previousChunkContent = item.PageContent
		}
		return id, usage, err
	default:
		return uuid.Nil, llmfacade.Usage{}, fmt.Errorf("unknown node_type %q: %w", item.NodeType, graphstore.ErrData)
	}
}

func (o *Orchestrator) processProduct(ctx context.Context, item Item, sourceUUID uuid.UUID) (uuid.UUID, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	meta := cloneMetadata(item.Metadata)

	name, _ := meta["name"].(string)
	if name == "" {
		name = "Unknown Product"
	}
	delete(meta, "name")
	sku, _ := meta["sku"].(string)
	category, _ := meta["category"].(string)
	var price *float64
	if p, ok := meta["price"].(float64); ok {
		price = &p
	}

	content := item.PageContent
	if strings.ToLower(orDefault(item.ContentType, "text")) == "json" {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(item.PageContent), &decoded); err == nil {
			for k, v := range decoded {
				meta[k] = v
			}
			if n, ok := decoded["productName"].(string); ok {
				name = n
			} else if n, ok := decoded["title"].(string); ok {
				name = n
			}
		} else {
			o.log.Warn("product page_content is not valid JSON", "product", name)
		}
	}

	matchedEntityUUID, matchUsage, _, err := o.resolver.FindMatchingEntityForProductPromotion(ctx, name, content, meta)
	usage.Add(matchUsage)
	if err != nil {
		o.log.Error("product promotion lookup failed", "product", name, "error", err)
	}

	var productUUID uuid.UUID
	if matchedEntityUUID != "" {
		entityUUID, parseErr := uuid.Parse(matchedEntityUUID)
		if parseErr == nil {
			newProductUUID := uuid.New()
			counts, err := o.graph.Nodes().PromoteEntityToProduct(ctx, entityUUID, newProductUUID, name, content, sku, category, price)
			if err != nil {
				o.log.Error("promotion failed, falling back to new product", "entity", matchedEntityUUID, "error", err)
			} else {
				o.log.Info("promoted entity to product", "entity", matchedEntityUUID, "product", newProductUUID,
					"incoming_rels_copied", counts.IncomingRelsCopied, "outgoing_rels_copied", counts.OutgoingRelsCopied)
				productUUID = newProductUUID
			}
		}
	}

	if productUUID == uuid.Nil {
		created, err := o.graph.Nodes().MergeProductNode(ctx, name, content, sku, category, price, meta)
		if err != nil {
			return uuid.Nil, usage, fmt.Errorf("create product node %q: %w", name, err)
		}
		productUUID = created
	}

	if err := o.graph.Nodes().LinkProductToSource(ctx, productUUID, sourceUUID); err != nil {
		return uuid.Nil, usage, fmt.Errorf("link product %q to source: %w", name, err)
	}

	if o.embedder != nil {
		if name != "" {
			vectors, embedUsage, err := o.embedder.Embed(ctx, []string{name})
			usage.Add(embedUsage)
			if err == nil && len(vectors) > 0 {
				if err := o.graph.Nodes().SetProductEmbeddings(ctx, productUUID, vectors[0], nil); err != nil {
					o.log.Error("set product name embedding failed", "product", name, "error", err)
				}
			}
		}
		if content != "" {
			vectors, embedUsage, err := o.embedder.Embed(ctx, []string{content})
			usage.Add(embedUsage)
			if err == nil && len(vectors) > 0 {
				if err := o.graph.Nodes().SetProductEmbeddings(ctx, productUUID, nil, vectors[0]); err != nil {
					o.log.Error("set product content embedding failed", "product", name, "error", err)
				}
			}
		}
	}

	return productUUID, usage, nil
}

func (o *Orchestrator) processChunk(ctx context.Context, item Item, docSourceUUID uuid.UUID, previousChunkContent string) (uuid.UUID, llmfacade.Usage, error) {
	var usage llmfacade.Usage
	meta := cloneMetadata(item.Metadata)
	chunkNumber := 0
	if n, ok := meta["chunk_number"].(int); ok {
		chunkNumber = n
	}

	chunkUUID, err := o.graph.Nodes().AddChunkAndLinkToSource(ctx, docSourceUUID, item.PageContent, chunkNumber)
	if err != nil {
		return uuid.Nil, usage, fmt.Errorf("create chunk and link to source: %w", err)
	}

	var mentions []resolvedMention

	if o.entities != nil && o.resolver != nil {
		extracted, extractUsage, err := o.entities.Extract(ctx, item.PageContent, previousChunkContent)
		usage.Add(extractUsage)
		if err != nil {
			o.log.Error("entity extraction failed", "chunk", chunkUUID, "error", err)
		}

		for _, e := range extracted {
			decision, genUsage, embedUsage, err := o.resolver.ResolveEntity(ctx, e)
			usage.Add(genUsage)
			usage.Add(embedUsage)
			if err != nil {
				o.log.Error("entity resolution failed", "entity", e.Name, "error", err)
				continue
			}

			var targetUUID uuid.UUID
			targetLabel := "Entity"
			targetName := decision.CanonicalName
			if decision.IsDuplicate && decision.DuplicateUUID != nil {
				existing, parseErr := uuid.Parse(*decision.DuplicateUUID)
				if parseErr == nil {
					targetUUID = existing
					// The resolver only hands back Entity/Product uuids that
					// matched its own vector search, so whichever label the
					// node actually carries is discovered, not assumed;
					// MENTIONS accepts either.
					targetLabel = resolveExistingLabel(ctx, o.graph, existing)
				}
			}
			if targetUUID == uuid.Nil {
				merged, _, mergeErr := o.graph.Nodes().MergeEntityNode(ctx, targetName, e.Label)
				if mergeErr != nil {
					o.log.Error("merge entity node failed", "entity", targetName, "error", mergeErr)
					continue
				}
				targetUUID = merged
				targetLabel = "Entity"

				if o.embedder != nil {
					vectors, embedUsage, err := o.embedder.Embed(ctx, []string{targetName})
					usage.Add(embedUsage)
					if err == nil && len(vectors) > 0 {
						if err := o.graph.Nodes().SetEntityEmbedding(ctx, targetUUID, vectors[0]); err != nil {
							o.log.Error("set entity embedding failed", "entity", targetName, "error", err)
						}
					}
				}
			}

			if err := o.graph.Nodes().LinkChunkMentions(ctx, chunkUUID, targetUUID, targetLabel, e.ContextualFact); err != nil {
				o.log.Error("link chunk mentions failed", "entity", targetName, "error", err)
				continue
			}
			if o.embedder != nil && e.ContextualFact != "" {
				vectors, embedUsage, err := o.embedder.Embed(ctx, []string{e.ContextualFact})
				usage.Add(embedUsage)
				if err == nil && len(vectors) > 0 {
					if err := o.graph.Nodes().SetMentionFactEmbedding(ctx, chunkUUID, targetUUID, vectors[0]); err != nil {
						o.log.Error("set mention fact embedding failed", "entity", targetName, "error", err)
					}
				}
			}
			mentions = append(mentions, resolvedMention{uuid: targetUUID, name: targetName, label: e.Label})
		}
	}

	if o.relationships != nil && len(mentions) > 0 {
		mentionEntities := make([]extraction.Entity, 0, len(mentions))
		for _, m := range mentions {
			mentionEntities = append(mentionEntities, extraction.Entity{Name: m.name, Label: m.label})
		}
		rels, relUsage, err := o.relationships.Extract(ctx, item.PageContent, mentionEntities)
		usage.Add(relUsage)
		if err != nil {
			o.log.Error("relationship extraction failed", "chunk", chunkUUID, "error", err)
		}

		byName := map[string]uuid.UUID{}
		for _, m := range mentions {
			byName[m.name] = m.uuid
		}
		for _, rel := range rels {
			relSourceUUID, ok1 := byName[rel.SourceEntityName]
			relTargetUUID, ok2 := byName[rel.TargetEntityName]
			if !ok1 || !ok2 || relSourceUUID == relTargetUUID {
				continue
			}
			relUUID, err := o.graph.Nodes().MergeRelationship(ctx, relSourceUUID, relTargetUUID, rel.RelationLabel, rel.FactSentence, chunkUUID)
			if err != nil {
				o.log.Error("merge relationship failed", "fact", rel.FactSentence, "error", err)
				continue
			}
			if o.embedder != nil && rel.FactSentence != "" {
				vectors, embedUsage, err := o.embedder.Embed(ctx, []string{rel.FactSentence})
				usage.Add(embedUsage)
				if err == nil && len(vectors) > 0 {
					if err := o.graph.Nodes().SetRelationshipFactEmbedding(ctx, relUUID, vectors[0]); err != nil {
						o.log.Error("set relationship fact embedding failed", "fact", rel.FactSentence, "error", err)
					}
				}
			}
		}
	}

	if o.embedder != nil {
		vectors, embedUsage, err := o.embedder.Embed(ctx, []string{item.PageContent})
		usage.Add(embedUsage)
		if err == nil && len(vectors) > 0 {
			if err := o.graph.Nodes().SetChunkEmbedding(ctx, chunkUUID, vectors[0]); err != nil {
				o.log.Error("set chunk embedding failed", "chunk", chunkUUID, "error", err)
			}
		}
	}

	return chunkUUID, usage, nil
}

// resolveExistingLabel looks up whether a resolved duplicate uuid currently
// carries the Entity or Product label, since LinkChunkMentions needs to
// know which one to MATCH against.
func resolveExistingLabel(ctx context.Context, graph *graphstore.Graph, id uuid.UUID) string {
	records, err := graph.RunRead(ctx, "MATCH (n {uuid: $uuid}) RETURN labels(n) AS labels", map[string]any{"uuid": id.String()})
	if err != nil || len(records) == 0 {
		return "Entity"
	}
	v, ok := records[0].Get("labels")
	if !ok {
		return "Entity"
	}
	labels, ok := v.([]any)
	if !ok {
		return "Entity"
	}
	for _, l := range labels {
		if s, ok := l.(string); ok && s == "Product" {
			return "Product"
		}
	}
	return "Entity"
}

func cloneMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
