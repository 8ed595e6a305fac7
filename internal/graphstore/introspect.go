package graphstore

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// suitableBTreeTypes are the apoc.meta.schema() property types worth a
// dynamic B-tree index: scalar, filterable values. Lists and points are
// left alone.
var suitableBTreeTypes = map[string]bool{
	"STRING": true, "LONG": true, "DOUBLE": true, "BOOLEAN": true,
}

var labelNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// DynamicBTreeProperties discovers properties present on live nodes of the
// given label that aren't part of the fixed catalog (see
// reservedDynamicProperties in catalog.go). Grounded on schema_manager.py's
// _get_dynamic_properties_for_btree_indexing: it first tries
// apoc.meta.schema(), keeping only the types in suitableBTreeTypes, and
// falls back to a plain UNWIND keys(n) scan when APOC isn't installed; the
// fallback applies no type filter.
func (g *Graph) DynamicBTreeProperties(ctx context.Context, label string) ([]string, error) {
	if !labelNamePattern.MatchString(label) {
		return nil, fmt.Errorf("invalid label %q for dynamic property discovery: %w", label, ErrConfig)
	}

	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()

	props, err := dynamicPropertiesViaAPOC(ctx, session, label)
	if err == nil {
		return props, nil
	}
	if !isMissingAPOCError(err) {
		return nil, fmt.Errorf("discover dynamic properties for %s: %w: %w", label, ErrTransientStore, err)
	}
	g.log.Warn("apoc.meta.schema not available, falling back to key scan", "label", label)
	return dynamicPropertiesViaKeyScan(ctx, session, label)
}

func dynamicPropertiesViaAPOC(ctx context.Context, session neo4j.SessionWithContext, label string) ([]string, error) {
	const query = `
CALL apoc.meta.schema() YIELD value
UNWIND value AS node_meta
WITH node_meta WHERE node_meta.name = $label AND node_meta.type = 'node'
UNWIND keys(node_meta.properties) AS prop_name
WITH prop_name, node_meta.properties[prop_name].type AS prop_type
RETURN DISTINCT prop_name, prop_type`

	result, err := session.Run(ctx, query, map[string]any{"label": label})
	if err != nil {
		return nil, err
	}
	var props []string
	for result.Next(ctx) {
		rec := result.Record()
		name, _ := rec.Get("prop_name")
		propType, _ := rec.Get("prop_type")
		key := fmt.Sprintf("%v", name)
		if reservedDynamicProperties[key] {
			continue
		}
		if !suitableBTreeTypes[fmt.Sprintf("%v", propType)] {
			continue
		}
		props = append(props, key)
	}
	return props, result.Err()
}

func dynamicPropertiesViaKeyScan(ctx context.Context, session neo4j.SessionWithContext, label string) ([]string, error) {
	query := fmt.Sprintf(`
MATCH (n:%s)
UNWIND keys(n) AS key
RETURN DISTINCT key`, label)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("key-scan fallback for %s: %w: %w", label, ErrTransientStore, err)
	}
	var props []string
	for result.Next(ctx) {
		v, _ := result.Record().Get("key")
		key := fmt.Sprintf("%v", v)
		if reservedDynamicProperties[key] {
			continue
		}
		props = append(props, key)
	}
	return props, result.Err()
}

func isMissingAPOCError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Unknown function 'apoc.meta.schema'") ||
		strings.Contains(msg, "No function with name `apoc.meta.schema`") ||
		strings.Contains(msg, "apoc.meta.schema")
}

// dynamicIndexName derives the CREATE INDEX name schema_manager.py uses for
// a discovered property: dynamic_idx_<label>_<prop>, with anything outside
// [A-Za-z0-9_] in the property name folded to an underscore.
func dynamicIndexName(label, prop string) string {
	safe := regexp.MustCompile(`[^A-Za-z0-9_]`).ReplaceAllString(prop, "_")
	return strings.ToLower(fmt.Sprintf("dynamic_idx_%s_%s", label, safe))
}

// EnsureDynamicIndexes creates a B-tree index for every live, non-catalog
// property discovered on each catalog node label. EnsureSchema does not
// call it; it runs only when invoked directly.
func (g *Graph) EnsureDynamicIndexes(ctx context.Context) error {
	session := g.session(ctx)
	defer func() { _ = session.Close(ctx) }()

	for _, nt := range NodeTypes() {
		props, err := g.DynamicBTreeProperties(ctx, nt.Label)
		if err != nil {
			return err
		}
		for _, prop := range props {
			name := dynamicIndexName(nt.Label, prop)
			stmt := fmt.Sprintf("CREATE INDEX %s IF NOT EXISTS FOR (n:%s) ON (n.`%s`)",
				quoteIdentifier(name), nt.Label, strings.ReplaceAll(prop, "`", "``"))
			_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
				return tx.Run(ctx, stmt, nil)
			})
			if err != nil {
				g.log.Error("failed to create dynamic index", "label", nt.Label, "property", prop, "error", err)
			}
		}
	}
	return nil
}
