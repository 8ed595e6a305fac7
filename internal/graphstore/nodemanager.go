package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// NodeManager implements spec.md §4.1's node and relationship operations.
// Each method is a direct Go port of the corresponding Cypher call site in
// node_manager.py, built on top of the Graph's driver session.
type NodeManager struct {
	g *Graph
}

// Nodes returns the NodeManager bound to this Graph.
func (g *Graph) Nodes() *NodeManager { return &NodeManager{g: g} }

// MergeSourceNode creates or updates a Source node by name, a port of
// node_manager.py's merge_source_node / MERGE_SOURCE_NODE.
func (n *NodeManager) MergeSourceNode(ctx context.Context, name, sourceType, contentHash, content string, metadata map[string]any) (uuid.UUID, error) {
	id := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name))
	now := time.Now().UTC()

	props := preprocessMetadataForNeo4j(metadata)
	props["uuid"] = id.String()
	props["name"] = name
	props["source_type"] = sourceType
	props["source_content_hash"] = contentHash
	props["updated_at"] = now.Format(time.RFC3339)
	if content != "" {
		props["content"] = content
	}

	const query = `
MERGE (s:Source {name: $name})
ON CREATE SET s.uuid = $uuid, s.created_at = $now
SET s += $props
RETURN s.uuid AS uuid`

	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"name": name, "uuid": id.String(), "now": now.Format(time.RFC3339), "props": props,
		})
		if err != nil {
			return nil, fmt.Errorf("merge source node: %w: %w", ErrPermanentStore, err)
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("merge source node: no row returned: %w", ErrPermanentStore)
		}
		return nil, res.Err()
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// AddChunkAndLinkToSource creates a Chunk node, links it BELONGS_TO_SOURCE
// to sourceUUID, and — if chunkNumber > 1 — links the previous chunk to it
// via NEXT_CHUNK. Per Open Question decision 3, this is done with a plain
// conditional and a second parameterized query inside the same
// transaction instead of relying on apoc.do.when.
func (n *NodeManager) AddChunkAndLinkToSource(ctx context.Context, sourceUUID uuid.UUID, content string, chunkNumber int) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC().Format(time.RFC3339)

	const createQuery = `
MATCH (s:Source {uuid: $sourceUUID})
CREATE (c:Chunk {uuid: $uuid, content: $content, chunk_number: $chunkNumber, created_at: $now, updated_at: $now})
CREATE (c)-[:BELONGS_TO_SOURCE]->(s)
RETURN c.uuid AS uuid`

	const linkPrevQuery = `
MATCH (prev:Chunk)-[:BELONGS_TO_SOURCE]->(s:Source {uuid: $sourceUUID})
WHERE prev.chunk_number = $prevNumber
MATCH (cur:Chunk {uuid: $curUUID})
MERGE (prev)-[:NEXT_CHUNK]->(cur)`

	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, createQuery, map[string]any{
			"sourceUUID": sourceUUID.String(), "uuid": id.String(), "content": content,
			"chunkNumber": chunkNumber, "now": now,
		})
		if err != nil {
			return nil, fmt.Errorf("create chunk: %w: %w", ErrPermanentStore, err)
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("create chunk: source %s not found: %w", sourceUUID, ErrPermanentStore)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		if chunkNumber > 1 {
			if _, err := tx.Run(ctx, linkPrevQuery, map[string]any{
				"sourceUUID": sourceUUID.String(), "prevNumber": chunkNumber - 1, "curUUID": id.String(),
			}); err != nil {
				return nil, fmt.Errorf("link previous chunk: %w: %w", ErrPermanentStore, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// SetChunkEmbedding writes a Chunk's content_embedding vector property.
func (n *NodeManager) SetChunkEmbedding(ctx context.Context, chunkUUID uuid.UUID, embedding []float32) error {
	return n.setVectorProperty(ctx, "Chunk", chunkUUID, "content_embedding", embedding)
}

// SetProductEmbeddings writes a Product's name_embedding/content_embedding.
func (n *NodeManager) SetProductEmbeddings(ctx context.Context, productUUID uuid.UUID, nameEmbedding, contentEmbedding []float32) error {
	if nameEmbedding != nil {
		if err := n.setVectorProperty(ctx, "Product", productUUID, "name_embedding", nameEmbedding); err != nil {
			return err
		}
	}
	if contentEmbedding != nil {
		return n.setVectorProperty(ctx, "Product", productUUID, "content_embedding", contentEmbedding)
	}
	return nil
}

// SetEntityEmbedding writes an Entity's name_embedding.
func (n *NodeManager) SetEntityEmbedding(ctx context.Context, entityUUID uuid.UUID, embedding []float32) error {
	return n.setVectorProperty(ctx, "Entity", entityUUID, "name_embedding", embedding)
}

// SetSourceContentEmbedding writes a Source's content_embedding, set once
// at ingestion time when the source supplies content, per spec.md §4.2
// step 1.
func (n *NodeManager) SetSourceContentEmbedding(ctx context.Context, sourceUUID uuid.UUID, embedding []float32) error {
	return n.setVectorProperty(ctx, "Source", sourceUUID, "content_embedding", embedding)
}

func (n *NodeManager) setVectorProperty(ctx context.Context, label string, id uuid.UUID, property string, embedding []float32) error {
	vec := make([]float64, len(embedding))
	for i, f := range embedding {
		vec[i] = float64(f)
	}
	query := fmt.Sprintf(`
MATCH (n:%s {uuid: $uuid})
CALL db.create.setNodeVectorProperty(n, $property, $vector)
RETURN n.uuid AS uuid`, label)

	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"uuid": id.String(), "property": property, "vector": vec})
		if err != nil {
			return nil, fmt.Errorf("set %s.%s: %w: %w", label, property, ErrEmbedding, err)
		}
		return nil, res.Err()
	})
	return err
}

// MergeEntityNode creates or updates an Entity, merging on
// (normalized_name, label) per spec.md §3's identity rule.
func (n *NodeManager) MergeEntityNode(ctx context.Context, name, label string) (uuid.UUID, bool, error) {
	normalized := normalizeEntityName(name)
	id := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(normalized+"_"+label))
	now := time.Now().UTC().Format(time.RFC3339)

	const query = `
MERGE (e:Entity {normalized_name: $normalized, label: $label})
ON CREATE SET e.uuid = $uuid, e.name = $name, e.created_at = $now, e.updated_at = $now
ON MATCH SET e.updated_at = $now
RETURN e.uuid AS uuid, e.created_at = $now AS wasCreated`

	var created bool
	var returnedID uuid.UUID
	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"normalized": normalized, "label": label, "uuid": id.String(), "name": name, "now": now,
		})
		if err != nil {
			return nil, fmt.Errorf("merge entity node: %w: %w", ErrPermanentStore, err)
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("merge entity node: no row returned: %w", ErrPermanentStore)
		}
		record := res.Record()
		rawID, _ := record.Get("uuid")
		returnedID, _ = uuid.Parse(fmt.Sprintf("%v", rawID))
		if wasCreated, ok := record.Get("wasCreated"); ok {
			created, _ = wasCreated.(bool)
		}
		return nil, res.Err()
	})
	if err != nil {
		return uuid.Nil, false, err
	}
	return returnedID, created, nil
}

// MergeProductNode creates a new Product node under a freshly generated
// uuid and returns that uuid. It never matches or updates an existing
// Product: each call adds another node.
func (n *NodeManager) MergeProductNode(ctx context.Context, name, content, sku, category string, price *float64, metadata map[string]any) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now().UTC().Format(time.RFC3339)

	props := preprocessMetadataForNeo4j(metadata)
	props["uuid"] = id.String()
	props["name"] = name
	props["content"] = content
	props["sku"] = sku
	props["category"] = category
	if price != nil {
		props["price"] = *price
	}
	props["created_at"] = now
	props["updated_at"] = now

	const query = `
CREATE (p:Product)
SET p += $props
RETURN p.uuid AS uuid`

	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"props": props})
		if err != nil {
			return nil, fmt.Errorf("merge product node: %w: %w", ErrPermanentStore, err)
		}
		return nil, res.Err()
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// LinkProductToSource links a Product to its originating Source via
// BELONGS_TO_SOURCE.
func (n *NodeManager) LinkProductToSource(ctx context.Context, productUUID, sourceUUID uuid.UUID) error {
	const query = `
MATCH (p:Product {uuid: $productUUID}), (s:Source {uuid: $sourceUUID})
MERGE (p)-[:BELONGS_TO_SOURCE]->(s)`
	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, map[string]any{"productUUID": productUUID.String(), "sourceUUID": sourceUUID.String()})
		if err != nil {
			return nil, fmt.Errorf("link product to source: %w: %w", ErrPermanentStore, err)
		}
		return nil, nil
	})
	return err
}

// LinkChunkMentions creates a MENTIONS relationship from a Chunk to an
// Entity or Product. Per Open Question decision 2, the relationship type
// is always MENTIONS — never the deprecated MENTIONS_ENTITY — regardless
// of the target's label.
func (n *NodeManager) LinkChunkMentions(ctx context.Context, chunkUUID, targetUUID uuid.UUID, targetLabel, factSentence string) error {
	if targetLabel != "Entity" && targetLabel != "Product" {
		return fmt.Errorf("mentions target must be Entity or Product, got %q: %w", targetLabel, ErrData)
	}
	id := uuid.New()
	query := fmt.Sprintf(`
MATCH (c:Chunk {uuid: $chunkUUID}), (t:%s {uuid: $targetUUID})
MERGE (c)-[m:MENTIONS]->(t)
ON CREATE SET m.uuid = $uuid
SET m.fact_sentence = $fact`, targetLabel)

	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, map[string]any{
			"chunkUUID": chunkUUID.String(), "targetUUID": targetUUID.String(), "fact": factSentence, "uuid": id.String(),
		})
		if err != nil {
			return nil, fmt.Errorf("link chunk mentions: %w: %w", ErrPermanentStore, err)
		}
		return nil, nil
	})
	return err
}

// SetMentionFactEmbedding writes the MENTIONS edge's fact_embedding, used
// for the fact-sentence similarity search spec.md §5 describes.
func (n *NodeManager) SetMentionFactEmbedding(ctx context.Context, chunkUUID, targetUUID uuid.UUID, embedding []float32) error {
	return n.setRelationshipVectorProperty(ctx, "MATCH (c:Chunk {uuid: $a})-[m:MENTIONS]->(t {uuid: $b})", chunkUUID, targetUUID, "fact_embedding", embedding)
}

// MergeRelationship creates a RELATES_TO edge between two resolved
// entities/products, carrying the extracted fact text, its originating
// chunk, and a fresh uuid. Re-extraction of the same (source, target,
// relation_label, fact_sentence) tuple updates last_seen_at instead of
// duplicating, per spec.md §3 invariant 6.
func (n *NodeManager) MergeRelationship(ctx context.Context, sourceUUID, targetUUID uuid.UUID, relationLabel, fact string, sourceChunkUUID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	const query = `
MATCH (a {uuid: $sourceUUID}), (b {uuid: $targetUUID})
WHERE (a:Entity OR a:Product) AND (b:Entity OR b:Product)
MERGE (a)-[r:RELATES_TO {relation_label: $relationLabel, fact_sentence: $fact}]->(b)
ON CREATE SET r.uuid = $uuid, r.source_chunk_uuid = $sourceChunkUUID, r.created_at = datetime()
ON MATCH SET r.last_seen_at = datetime()
RETURN r.uuid AS uuid`
	var resultUUID string
	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"sourceUUID": sourceUUID.String(), "targetUUID": targetUUID.String(),
			"relationLabel": relationLabel, "fact": fact, "uuid": id.String(),
			"sourceChunkUUID": sourceChunkUUID.String(),
		})
		if err != nil {
			return nil, fmt.Errorf("merge relationship: %w: %w", ErrPermanentStore, err)
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, fmt.Errorf("merge relationship: %w: %w", ErrPermanentStore, err)
		}
		v, _ := rec.Get("uuid")
		resultUUID, _ = v.(string)
		return nil, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	parsed, err := uuid.Parse(resultUUID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse relationship uuid: %w: %w", ErrPermanentStore, err)
	}
	return parsed, nil
}

// SetRelationshipFactEmbedding writes a RELATES_TO edge's fact_embedding.
func (n *NodeManager) SetRelationshipFactEmbedding(ctx context.Context, relationshipUUID uuid.UUID, embedding []float32) error {
	vec := make([]float64, len(embedding))
	for i, f := range embedding {
		vec[i] = float64(f)
	}
	const query = `
MATCH ()-[r:RELATES_TO {uuid: $uuid}]->()
CALL db.create.setRelationshipVectorProperty(r, "fact_embedding", $vector)
RETURN r.uuid AS uuid`
	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"uuid": relationshipUUID.String(), "vector": vec})
		if err != nil {
			return nil, fmt.Errorf("set relates_to.fact_embedding: %w: %w", ErrEmbedding, err)
		}
		return nil, res.Err()
	})
	return err
}

func (n *NodeManager) setRelationshipVectorProperty(ctx context.Context, matchClause string, a, b uuid.UUID, property string, embedding []float32) error {
	vec := make([]float64, len(embedding))
	for i, f := range embedding {
		vec[i] = float64(f)
	}
	query := fmt.Sprintf(`
%s
CALL db.create.setRelationshipVectorProperty(m, $property, $vector)
RETURN m.uuid AS uuid`, matchClause)
	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"a": a.String(), "b": b.String(), "property": property, "vector": vec})
		if err != nil {
			return nil, fmt.Errorf("set %s: %w: %w", property, ErrEmbedding, err)
		}
		return nil, res.Err()
	})
	return err
}

// PromotionCounts reports how many relationships PromoteEntityToProduct
// re-linked from the original Entity onto the new Product, the "Counts of
// re-linked edges are returned" half of spec.md §4.1's promoteEntityToProduct
// contract.
type PromotionCounts struct {
	IncomingRelsCopied int64
	OutgoingRelsCopied int64
}

// PromoteEntityToProduct atomically creates a new Product node (newProductUUID,
// independent of existingEntityUUID), copies every incoming and outgoing
// relationship from the Entity to the new Product preserving their
// properties, then detaches and deletes the original Entity — a direct port
// of node_manager.py::NodeManager.promote_entity_to_product and
// cypher_queries.PROMOTE_ENTITY_TO_PRODUCT, per spec.md §4.1.
func (n *NodeManager) PromoteEntityToProduct(ctx context.Context, existingEntityUUID, newProductUUID uuid.UUID, name, content, sku, category string, price *float64) (PromotionCounts, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	props := map[string]any{
		"uuid": newProductUUID.String(), "name": name, "content": content,
		"sku": sku, "category": category, "created_at": now, "updated_at": now,
	}
	if price != nil {
		props["price"] = *price
	}

	var counts PromotionCounts
	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (e:Entity {uuid: $entityUUID})
CREATE (p:Product)
SET p += $props
RETURN p.uuid AS uuid`, map[string]any{"entityUUID": existingEntityUUID.String(), "props": props})
		if err != nil {
			return nil, fmt.Errorf("create promoted product: %w: %w", ErrPermanentStore, err)
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("promote entity to product: entity %s not found: %w", existingEntityUUID, ErrPermanentStore)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}

		incomingMentions, err := runCounted(ctx, tx, `
MATCH (src)-[r:MENTIONS]->(:Entity {uuid: $entityUUID})
MATCH (p:Product {uuid: $productUUID})
CREATE (src)-[r2:MENTIONS]->(p)
SET r2 = properties(r)
RETURN count(r2) AS n`, map[string]any{"entityUUID": existingEntityUUID.String(), "productUUID": newProductUUID.String()})
		if err != nil {
			return nil, fmt.Errorf("copy incoming mentions: %w: %w", ErrPermanentStore, err)
		}

		incomingRelates, err := runCounted(ctx, tx, `
MATCH (src)-[r:RELATES_TO]->(:Entity {uuid: $entityUUID})
MATCH (p:Product {uuid: $productUUID})
CREATE (src)-[r2:RELATES_TO]->(p)
SET r2 = properties(r)
RETURN count(r2) AS n`, map[string]any{"entityUUID": existingEntityUUID.String(), "productUUID": newProductUUID.String()})
		if err != nil {
			return nil, fmt.Errorf("copy incoming relates_to: %w: %w", ErrPermanentStore, err)
		}
		counts.IncomingRelsCopied = incomingMentions + incomingRelates

		counts.OutgoingRelsCopied, err = runCounted(ctx, tx, `
MATCH (:Entity {uuid: $entityUUID})-[r:RELATES_TO]->(tgt)
MATCH (p:Product {uuid: $productUUID})
CREATE (p)-[r2:RELATES_TO]->(tgt)
SET r2 = properties(r)
RETURN count(r2) AS n`, map[string]any{"entityUUID": existingEntityUUID.String(), "productUUID": newProductUUID.String()})
		if err != nil {
			return nil, fmt.Errorf("copy outgoing relates_to: %w: %w", ErrPermanentStore, err)
		}

		if _, err := tx.Run(ctx, `
MATCH (e:Entity {uuid: $entityUUID})
DETACH DELETE e`, map[string]any{"entityUUID": existingEntityUUID.String()}); err != nil {
			return nil, fmt.Errorf("detach delete promoted entity: %w: %w", ErrPermanentStore, err)
		}
		return nil, nil
	})
	if err != nil {
		return PromotionCounts{}, err
	}
	return counts, nil
}

// DemoteProductToEntity is the inverse transition, used by the deletion
// cascade (§4.3) when a Product's only remaining source link is removed but
// it is still mentioned elsewhere and must survive as a bare Entity (label
// = Product.category, or "DemotedProduct" if it had none). It opens its own
// write transaction; demoteProductToEntityTx is the tx-scoped core the
// deletion cascade calls directly so the demotion stays inside its own
// single cascade transaction.
func (n *NodeManager) DemoteProductToEntity(ctx context.Context, productUUID uuid.UUID, label string) error {
	_, err := n.g.runWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, n.demoteProductToEntityTx(ctx, tx, productUUID, label)
	})
	return err
}

func (n *NodeManager) demoteProductToEntityTx(ctx context.Context, tx neo4j.ManagedTransaction, productUUID uuid.UUID, label string) error {
	res, err := tx.Run(ctx, "MATCH (p {uuid: $uuid}) RETURN p.name AS name", map[string]any{"uuid": productUUID.String()})
	if err != nil {
		return err
	}
	name := ""
	if res.Next(ctx) {
		if v, ok := res.Record().Get("name"); ok {
			name = fmt.Sprintf("%v", v)
		}
	}
	if err := res.Err(); err != nil {
		return err
	}

	const query = `
MATCH (p:Product {uuid: $uuid})
REMOVE p:Product
SET p:Entity
SET p.label = $label, p.normalized_name = $normalized, p.updated_at = $now
REMOVE p.content, p.content_embedding, p.price, p.sku, p.category`
	_, err = tx.Run(ctx, query, map[string]any{
		"uuid": productUUID.String(), "label": label, "normalized": normalizeEntityName(name), "now": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("demote product to entity: %w: %w", ErrPermanentStore, err)
	}
	return nil
}
