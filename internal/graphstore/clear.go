package graphstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ClearData deletes every node and relationship in the database, a Go port
// of graphforrag.py::clear_all_data. It leaves constraints and indexes in
// place; pair it with ClearSchema for a full reset.
func (g *Graph) ClearData(ctx context.Context) error {
	g.log.Warn("deleting all nodes and relationships from the database")

	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		return summary, nil
	})
	if err != nil {
		return fmt.Errorf("clear all data: %w: %w", ErrPermanentStore, err)
	}

	summary, ok := result.(neo4j.ResultSummary)
	if ok {
		counters := summary.Counters()
		g.log.Info("cleared all data",
			"nodes_deleted", counters.NodesDeleted(),
			"relationships_deleted", counters.RelationshipsDeleted())
	}
	return nil
}
