package capabilities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/uyouii/percentile-chart/common"
)

const schemaURL = "https://github.com/uyouii/percentile-chart/capabilities.json"

func propertySchema(p Property) map[string]any {
	switch p.Type {
	case FillType:
		return map[string]any{"type": "string", "minLength": 1, "default": p.Default}
	case IntegerType:
		// negative values are allowed, they are clamped when resolved
		schema := map[string]any{"type": "integer", "default": p.Default}
		if p.Maximum > 0 {
			schema["maximum"] = p.Maximum
		}
		return schema
	}
	return map[string]any{}
}

// JSONSchema describes the user configuration accepted by the manifest.
func (m Manifest) JSONSchema() map[string]any {
	objects := map[string]any{}
	for _, o := range m.Objects {
		properties := map[string]any{}
		for _, p := range o.Properties {
			properties[p.Name] = propertySchema(p)
		}
		objects[o.Name] = map[string]any{
			"type":                 "object",
			"title":                o.DisplayName,
			"properties":           properties,
			"additionalProperties": false,
		}
	}
	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           objects,
		"additionalProperties": false,
	}
}

func (m Manifest) compile() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(m.JSONSchema())
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
}

var defaultSchema = sync.OnceValues(Default.compile)

// Validate checks a raw user configuration, as decoded from JSON, YAML or
// TOML, against the schema of m.
func (m Manifest) Validate(config map[string]any) error {
	schema, err := m.compile()
	if err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}
	return validate(schema, config)
}

// Validate checks config against the Default manifest.
func Validate(config map[string]any) error {
	schema, err := defaultSchema()
	if err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}
	return validate(schema, config)
}

func validate(schema *jsonschema.Schema, config map[string]any) error {
	if config == nil {
		config = map[string]any{}
	}
	// round trip through json so yaml and toml values get json types
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidConfig, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidConfig, err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidConfig, err)
	}
	return nil
}
