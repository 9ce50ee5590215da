package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/extract"
	"github.com/joseph-ayodele/os-report/internal/signature"
)

// Set bundles every tunable heuristic of a run.
type Set struct {
	Extraction extract.Rules    `json:"extraction"`
	Signature  signature.Config `json:"signature"`
}

// Default returns the built-in work-order template rules.
func Default() Set {
	return Set{
		Extraction: extract.DefaultRules(),
		Signature:  signature.DefaultConfig(),
	}
}

// Load reads a rules file (JSON, or YAML for .yaml/.yml) on top of the
// defaults. Keys missing from the file keep their default value. An empty path
// returns the defaults.
func Load(path string) (Set, error) {
	set := Default()
	if path == "" {
		return set, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return set, common.NewAppError(common.CodeRules, "read rules file", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if data, err = yamlToJSON(data); err != nil {
			return set, common.NewAppError(common.CodeRules, "decode rules file", err)
		}
	}
	return Parse(data)
}

// yamlToJSON re-encodes a YAML document so it goes through the same schema.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v == nil {
		v = map[string]any{}
	}
	return json.Marshal(v)
}

// Parse validates data against the rules schema and merges it over the defaults.
func Parse(data []byte) (Set, error) {
	set := Default()
	if err := ValidateJSONAgainstSchema(BuildJSONSchema(), data); err != nil {
		return set, common.NewAppError(common.CodeRules, "rules file", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	if err := json.Unmarshal(data, &set); err != nil {
		return set, common.NewAppError(common.CodeRules, "decode rules file", err)
	}
	if err := set.Extraction.Validate(); err != nil {
		return set, common.NewAppError(common.CodeRules, "extraction rules", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	return set, nil
}

// BuildJSONSchema returns the JSON-Schema of a rules file as a generic map.
func BuildJSONSchema() map[string]any {
	field := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"label":       nonEmptyString(),
			"terminators": stringArray(),
		},
	}
	extraction := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"section_heading":        map[string]any{"type": "string"},
			"identifier_digits":      map[string]any{"type": "integer", "minimum": 1, "maximum": 18},
			"identifier_min":         map[string]any{"type": "integer", "minimum": 0},
			"identifier_max":         map[string]any{"type": "integer", "minimum": 0},
			"name":                   field,
			"role":                   field,
			"organization_marker":    map[string]any{"type": "string"},
			"description_label":      nonEmptyString(),
			"description_terminator": nonEmptyString(),
			"description_min_length": map[string]any{"type": "integer", "minimum": 0},
		},
	}
	sig := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"keywords":         stringArray(),
			"annotation_types": stringArray(),
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"extraction": extraction,
			"signature":  sig,
		},
	}
}

func nonEmptyString() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": nonEmptyString()}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
