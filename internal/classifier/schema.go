package classifier

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled artifact schemas by kind.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var treeDef = map[string]any{
	"type":     "object",
	"required": []string{"children_left", "children_right", "feature", "threshold", "value"},
	"properties": map[string]any{
		"children_left":  map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		"children_right": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		"feature":        map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		"threshold":      map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
		"value": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number", "minimum": 0},
			},
		},
	},
}

var probRow = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
}

func manifestProps(kind string, extra map[string]any) map[string]any {
	props := map[string]any{
		"kind":           map[string]any{"const": kind},
		"format_version": map[string]any{"type": "string", "minLength": 1},
		"features":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"n_classes":      map[string]any{"type": "integer", "minimum": 1},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// schemas holds the JSON Schema of each JSON artifact kind.
var schemas = map[string]map[string]any{
	"lookup": {
		"type":     "object",
		"required": []string{"kind", "format_version", "features", "rows"},
		"properties": manifestProps("lookup", map[string]any{
			"rows":     map[string]any{"type": "object", "additionalProperties": probRow},
			"baseline": probRow,
		}),
	},
	"tree": {
		"type":       "object",
		"required":   []string{"kind", "format_version", "tree"},
		"properties": manifestProps("tree", map[string]any{"tree": treeDef}),
	},
	"forest": {
		"type":     "object",
		"required": []string{"kind", "format_version", "trees"},
		"properties": manifestProps("forest", map[string]any{
			"trees": map[string]any{"type": "array", "minItems": 1, "items": treeDef},
		}),
	},
}

// validateArtifact validates raw JSON against the schema of the given kind.
func validateArtifact(kind string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compiledSchema(kind)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", kind, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(kind string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}
	def, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedArtifact, kind)
	}

	// The compiler wants a decoded JSON value rather than Go maps with typed slices.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://nandadx/%s.json", kind)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	schemaCache.Store(kind, compiled)
	return compiled, nil
}
