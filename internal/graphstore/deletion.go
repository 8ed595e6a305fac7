package graphstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DeletionCounts is the exact counter-key contract spec.md §4.3 requires
// from DeleteSource.
type DeletionCounts struct {
	Sources         int64 `json:"sources"`
	Chunks          int64 `json:"chunks"`
	Products        int64 `json:"products"`
	ProductsDemoted int64 `json:"products_demoted"`
	MentionsRels    int64 `json:"mentions_rels"`
	RelatesToRels   int64 `json:"relates_to_rels"`
	Entities        int64 `json:"entities"`
}

// DeleteSource removes a Source and everything that depends solely on it,
// in one explicit transaction, following spec.md §4.3's 8-step ordered
// cascade:
//  1. gather chunk/product uuids belonging to the source
//  2. gather one-hop potential orphans (entities/products mentioned only
//     by this source's chunks, or related only to those)
//  3. delete RELATES_TO edges extracted from this source's chunks (matched
//     on the edge's source_chunk_uuid)
//  4. delete MENTIONS edges that originate from this source's chunks
//  5. evaluate each potential-orphan Entity: delete if it now has zero
//     remaining MENTIONS/RELATES_TO edges
//  6. evaluate this source's own Products and each potential-orphan
//     Product not owned by another Source: demote to Entity if it still
//     has MENTIONS/RELATES_TO edges elsewhere, else delete
//  7. delete the source's Chunks
//  8. delete the Source node itself
//
// Every step runs inside one neo4j transaction; a failure at any point
// rolls back the entire cascade (both the driver's automatic rollback on
// error and an explicit rollback in the deferred cleanup, matching the
// defensive double-rollback in the original's except/finally blocks).
func (g *Graph) DeleteSource(ctx context.Context, sourceUUID uuid.UUID) (DeletionCounts, error) {
	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return DeletionCounts{}, fmt.Errorf("begin deletion transaction: %w: %w", ErrTransientStore, err)
	}

	counts, err := g.runDeletionCascade(ctx, tx, sourceUUID)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			g.log.Error("rollback failed after deletion cascade error", "error", rbErr)
		}
		return DeletionCounts{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			g.log.Error("rollback failed after commit error", "error", rbErr)
		}
		return DeletionCounts{}, fmt.Errorf("commit deletion transaction: %w: %w", ErrTransientStore, err)
	}
	return counts, nil
}

func (g *Graph) runDeletionCascade(ctx context.Context, tx neo4j.ExplicitTransaction, sourceUUID uuid.UUID) (DeletionCounts, error) {
	var counts DeletionCounts
	params := map[string]any{"sourceUUID": sourceUUID.String()}

	// Step 1: gather this source's chunk/product uuids.
	itemUUIDs, err := collectStrings(ctx, tx, `
MATCH (n)-[:BELONGS_TO_SOURCE]->(s:Source {uuid: $sourceUUID})
WHERE n:Chunk OR n:Product
RETURN n.uuid AS uuid`, params, "uuid")
	if err != nil {
		return counts, fmt.Errorf("gather source items: %w: %w", ErrPermanentStore, err)
	}

	// Step 2: gather one-hop potential orphans reachable from those items.
	orphanEntities, err := collectStrings(ctx, tx, `
MATCH (n)-[:MENTIONS|RELATES_TO]-(m:Entity)
WHERE n.uuid IN $itemUUIDs
RETURN DISTINCT m.uuid AS uuid`, map[string]any{"itemUUIDs": itemUUIDs}, "uuid")
	if err != nil {
		return counts, fmt.Errorf("gather orphan entities: %w: %w", ErrPermanentStore, err)
	}
	orphanProducts, err := collectStrings(ctx, tx, `
MATCH (n)-[:MENTIONS|RELATES_TO]-(m:Product)
WHERE n.uuid IN $itemUUIDs
RETURN DISTINCT m.uuid AS uuid`, map[string]any{"itemUUIDs": itemUUIDs}, "uuid")
	if err != nil {
		return counts, fmt.Errorf("gather orphan products: %w: %w", ErrPermanentStore, err)
	}

	// Step 3: delete RELATES_TO edges extracted from this source's chunks.
	n, err := runCounted(ctx, tx, `
MATCH ()-[r:RELATES_TO]->()
WHERE r.source_chunk_uuid IN $itemUUIDs
DELETE r
RETURN count(r) AS n`, map[string]any{"itemUUIDs": itemUUIDs})
	if err != nil {
		return counts, fmt.Errorf("delete relates_to: %w: %w", ErrPermanentStore, err)
	}
	counts.RelatesToRels = n

	// Step 4: delete MENTIONS edges originating from this source's chunks.
	n, err = runCounted(ctx, tx, `
MATCH (c:Chunk)-[m:MENTIONS]->()
WHERE c.uuid IN $itemUUIDs
DELETE m
RETURN count(m) AS n`, map[string]any{"itemUUIDs": itemUUIDs})
	if err != nil {
		return counts, fmt.Errorf("delete mentions: %w: %w", ErrPermanentStore, err)
	}
	counts.MentionsRels = n

	// Step 5: delete orphaned Entities (zero remaining edges).
	n, err = runCounted(ctx, tx, `
MATCH (e:Entity)
WHERE e.uuid IN $uuids AND NOT (e)-[:MENTIONS|RELATES_TO]-()
DETACH DELETE e
RETURN count(e) AS n`, map[string]any{"uuids": orphanEntities})
	if err != nil {
		return counts, fmt.Errorf("delete orphaned entities: %w: %w", ErrPermanentStore, err)
	}
	counts.Entities = n

	// Step 6: this source's own Products and the potential-orphan Products
	// are evaluated together; a Product that belongs to another Source is
	// left untouched. One that still has MENTIONS/RELATES_TO edges (from
	// other sources' chunks) is demoted to an Entity labelled with its
	// category; one with no edges left is deleted outright.
	productParams := map[string]any{
		"uuids":      append(append([]string{}, itemUUIDs...), orphanProducts...),
		"sourceUUID": sourceUUID.String(),
	}
	demotable, err := collectStrings(ctx, tx, `
MATCH (p:Product)
WHERE p.uuid IN $uuids
  AND (p)-[:MENTIONS|RELATES_TO]-()
  AND NOT EXISTS { MATCH (p)-[:BELONGS_TO_SOURCE]->(o:Source) WHERE o.uuid <> $sourceUUID }
RETURN p.uuid AS uuid`, productParams, "uuid")
	if err != nil {
		return counts, fmt.Errorf("gather demotable products: %w: %w", ErrPermanentStore, err)
	}
	for _, idStr := range demotable {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			continue
		}
		category, err := productCategory(ctx, tx, id)
		if err != nil {
			return counts, fmt.Errorf("read product category before demotion %s: %w: %w", id, ErrPermanentStore, err)
		}
		label := category
		if label == "" {
			label = "DemotedProduct"
		}
		if err := g.Nodes().demoteProductToEntityTx(ctx, tx, id, label); err != nil {
			return counts, fmt.Errorf("demote product %s: %w: %w", id, ErrPermanentStore, err)
		}
		counts.ProductsDemoted++
	}

	n, err = runCounted(ctx, tx, `
MATCH (p:Product)
WHERE p.uuid IN $uuids AND NOT (p)-[:MENTIONS|RELATES_TO]-()
  AND NOT EXISTS { MATCH (p)-[:BELONGS_TO_SOURCE]->(o:Source) WHERE o.uuid <> $sourceUUID }
DETACH DELETE p
RETURN count(p) AS n`, productParams)
	if err != nil {
		return counts, fmt.Errorf("delete orphaned products: %w: %w", ErrPermanentStore, err)
	}
	counts.Products = n

	// Step 7: delete this source's Chunks.
	n, err = runCounted(ctx, tx, `
MATCH (c:Chunk)-[:BELONGS_TO_SOURCE]->(s:Source {uuid: $sourceUUID})
DETACH DELETE c
RETURN count(c) AS n`, params)
	if err != nil {
		return counts, fmt.Errorf("delete chunks: %w: %w", ErrPermanentStore, err)
	}
	counts.Chunks = n

	// Step 8: delete the Source itself.
	n, err = runCounted(ctx, tx, `
MATCH (s:Source {uuid: $sourceUUID})
DETACH DELETE s
RETURN count(s) AS n`, params)
	if err != nil {
		return counts, fmt.Errorf("delete source: %w: %w", ErrPermanentStore, err)
	}
	counts.Sources = n

	return counts, nil
}

// productCategory reads a Product's category property, read before
// demotion overwrites it so the demoted node's label (spec.md §4.3 step 6:
// "a new Entity (label = Product.category or 'DemotedProduct')") can be set
// correctly.
func productCategory(ctx context.Context, tx neo4j.ManagedTransaction, productUUID uuid.UUID) (string, error) {
	res, err := tx.Run(ctx, "MATCH (p:Product {uuid: $uuid}) RETURN p.category AS category", map[string]any{"uuid": productUUID.String()})
	if err != nil {
		return "", err
	}
	if !res.Next(ctx) {
		return "", res.Err()
	}
	v, ok := res.Record().Get("category")
	if !ok || v == nil {
		return "", res.Err()
	}
	return fmt.Sprintf("%v", v), res.Err()
}

func collectStrings(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]any, field string) ([]string, error) {
	res, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	var out []string
	for res.Next(ctx) {
		if v, ok := res.Record().Get(field); ok {
			out = append(out, fmt.Sprintf("%v", v))
		}
	}
	return out, res.Err()
}

func runCounted(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]any) (int64, error) {
	res, err := tx.Run(ctx, query, params)
	if err != nil {
		return 0, err
	}
	if !res.Next(ctx) {
		return 0, res.Err()
	}
	v, ok := res.Record().Get("n")
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case int64:
		return n, res.Err()
	default:
		return 0, res.Err()
	}
}
