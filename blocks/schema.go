package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// PayloadSchema documents the JSON shape accepted for a single block on the
// wire. It is deliberately permissive about unknown properties so hydrated
// fields (id, asset) and future additions pass through; the Type enum and
// field types are the hard contract.
var PayloadSchema = map[string]any{
	"type":     "object",
	"required": []string{"type"},
	"properties": map[string]any{
		"type": map[string]any{
			"enum": []any{"HEADING", "PARAGRAPH", "IMAGE", "BUTTON", "LIST", "DIVIDER"},
		},
		"level":  map[string]any{"enum": []any{"h1", "h2", "h3"}},
		"textPt": map[string]any{"type": "string"},
		"textEn": map[string]any{"type": "string"},
		"text":   map[string]any{"type": "string"},

		"htmlPt":   map[string]any{"type": "string"},
		"htmlEn":   map[string]any{"type": "string"},
		"html":     map[string]any{"type": "string"},
		"markdown": map[string]any{"type": "string"},

		"assetId": map[string]any{"type": "string"},
		"alt":     map[string]any{"type": "string"},
		"caption": map[string]any{"type": "string"},
		"size": map[string]any{
			"enum": []any{"small", "medium", "large", "full"},
		},
		"useCustomSize": map[string]any{"type": "boolean"},
		"customWidth":   map[string]any{"type": "integer", "minimum": 0},
		"customHeight":  map[string]any{"type": "integer", "minimum": 0},
		"objectFit": map[string]any{
			"enum": []any{"cover", "contain", "fill"},
		},
		"enableZoom": map[string]any{"type": "boolean"},
		"zoomLevel":  map[string]any{"type": "number", "minimum": 1},
		"lensSize":   map[string]any{"type": "integer", "minimum": 0},
		"lensBorder": map[string]any{"type": "integer", "minimum": 0},

		"href": map[string]any{"type": "string"},

		"itemsPt": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"itemsEn": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"items":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"additionalProperties": true,
}

var (
	compileOnce     sync.Once
	compiledPayload *jsonschema.Schema
	compileErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		encoded, err := json.Marshal(PayloadSchema)
		if err != nil {
			compileErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("block.json", bytes.NewReader(encoded)); err != nil {
			compileErr = err
			return
		}
		compiledPayload, compileErr = compiler.Compile("block.json")
	})
	return compiledPayload, compileErr
}

// ValidatePayload checks one decoded block object against PayloadSchema.
func ValidatePayload(payload any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("blocks: compile payload schema: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("blocks: payload schema: %w", err)
	}
	return nil
}
