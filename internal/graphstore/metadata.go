package graphstore

import (
	"encoding/json"
	"strings"
	"time"
)

// preprocessMetadataForNeo4j flattens an arbitrary, dynamically-typed
// metadata map into a map of Neo4j-storable scalar/list values, a direct
// port of utils.py::preprocess_metadata_for_neo4j: nested maps become JSON
// strings, time.Time values become RFC3339 strings, list elements are
// normalized individually (map -> JSON, time -> RFC3339, scalar
// passthrough, anything else -> JSON string via json.Marshal), and any
// other top-level value not already a Neo4j-storable scalar is encoded the
// same way.
func preprocessMetadataForNeo4j(metadata map[string]any) map[string]any {
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		out[k] = normalizeMetadataValue(v)
	}
	return out
}

func normalizeMetadataValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int, int64, float64, float32:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return stringify(val)
		}
		return string(b)
	case []any:
		items := make([]any, len(val))
		for i, e := range val {
			items[i] = normalizeListElement(e)
		}
		return items
	default:
		return stringify(val)
	}
}

func normalizeListElement(v any) any {
	switch val := v.(type) {
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return stringify(val)
		}
		return string(b)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case string, bool, int, int64, float64, float32, nil:
		return val
	default:
		return stringify(val)
	}
}

func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// normalizeEntityName produces the identity key component used to merge
// Entity nodes: lowercase and trim whitespace, deliberately NOT stripping
// punctuation — a direct port of utils.py::normalize_entity_name. Entity
// identity is (normalizedName, label).
func normalizeEntityName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
