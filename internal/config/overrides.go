package config

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mockingbird/internal/ir"
)

// UndefinedTag marks a YAML override as absent:
//
//	user.nickname: !undefined
const UndefinedTag = "!undefined"

// UndefinedKey marks an override as absent in either format:
//
//	{"user.nickname": {"$undefined": true}}
const UndefinedKey = "$undefined"

// DecodeOverrides parses a flat pattern-to-value document. null is kept as
// a present null value.
func DecodeOverrides(data []byte, format Format) (ir.Overrides, error) {
	if format == FormatJSON {
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse overrides: %w", err)
		}
		out := make(ir.Overrides, len(raw))
		for k, v := range raw {
			out[k] = undefinedOr(v)
		}
		return out, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	if len(doc.Content) == 0 {
		return ir.Overrides{}, nil
	}
	return OverridesFromYAML(doc.Content[0])
}

// OverridesFromYAML converts a YAML mapping node, honoring UndefinedTag.
// A nil or empty node yields no overrides.
func OverridesFromYAML(node *yaml.Node) (ir.Overrides, error) {
	out := ir.Overrides{}
	if node == nil || node.Kind == 0 {
		return out, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("overrides: line %d: want a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Tag == UndefinedTag {
			out[key.Value] = ir.Undefined
			continue
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, fmt.Errorf("overrides: %s: %w", key.Value, err)
		}
		out[key.Value] = undefinedOr(v)
	}
	return out, nil
}

// LoadOverrides reads an overrides file, choosing the decoder by extension.
func LoadOverrides(path string) (ir.Overrides, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := DecodeOverrides(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

func undefinedOr(v any) any {
	if m, ok := v.(map[string]any); ok && len(m) == 1 {
		if b, ok := m[UndefinedKey].(bool); ok && b {
			return ir.Undefined
		}
	}
	return v
}
