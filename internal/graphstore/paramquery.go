package graphstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// runWrite executes work inside a single managed write transaction
// (session.ExecuteWrite),
// matching the teacher's internal/serializer Cypher-generation approach of
// building exact statement text up front, but adding the parameterized
// execution layer the codegen-only teacher package never needed.
func (g *Graph) runWrite(ctx context.Context, work func(tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()
	return session.ExecuteWrite(ctx, work)
}

func (g *Graph) runRead(ctx context.Context, work func(tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()
	return session.ExecuteRead(ctx, work)
}

// RunRead executes a single auto-commit read query and eagerly collects
// every record before the session closes. It satisfies internal/resolver's
// GraphReader interface: vector-index candidate searches just need the
// full record set, not a live cursor tied to an open session.
func (g *Graph) RunRead(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()
	return neo4j.CollectWithContext(ctx, session.Run(ctx, cypher, params))
}

// dynamicPropsJSON serializes a flat, already-preprocessed dynamic
// property bag into a deterministic JSON string (keys sorted, reserved
// catalog properties skipped), using sjson to build the document
// incrementally. Nothing in this repository calls it.
func dynamicPropsJSON(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if reservedDynamicProperties[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := "{}"
	for _, k := range keys {
		var err error
		doc, err = sjson.Set(doc, k, props[k])
		if err != nil {
			continue
		}
	}
	return doc
}

// dynamicPropsFromJSON reads back individual dynamic properties from a
// document produced by dynamicPropsJSON, as a string. Nothing in this
// repository calls it.
func dynamicPropsFromJSON(doc, key string) (value string, ok bool) {
	res := gjson.Get(doc, key)
	if !res.Exists() {
		return "", false
	}
	return res.String(), true
}

func newUUIDParam(name string, uuid string) map[string]any {
	return map[string]any{name: uuid}
}

func requireParams(params map[string]any, keys ...string) error {
	for _, k := range keys {
		v, ok := params[k]
		if !ok || v == nil || v == "" {
			return fmt.Errorf("missing required parameter %q: %w", k, ErrData)
		}
	}
	return nil
}
