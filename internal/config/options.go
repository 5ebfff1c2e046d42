package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mockingbird/internal/engine"
	"github.com/roach88/mockingbird/internal/ir"
)

// Options is the file form of engine.Options. Switches are pointers so an
// unset switch keeps the registry default.
type Options struct {
	Exclude             []string                `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Rules               []Rule                  `json:"rules,omitempty" yaml:"rules,omitempty"`
	RequiredOnly        *bool                   `json:"required_only,omitempty" yaml:"required_only,omitempty"`
	Accurate            *bool                   `json:"accurate,omitempty" yaml:"accurate,omitempty"`
	Relations           map[string][]string     `json:"relations,omitempty" yaml:"relations,omitempty"`
	IgnoreCustomScalars *bool                   `json:"ignore_custom_scalars,omitempty" yaml:"ignore_custom_scalars,omitempty"`
	AddTypeName         *bool                   `json:"add_type_name,omitempty" yaml:"add_type_name,omitempty"`
	Scalars             map[string]ScalarConfig `json:"scalars,omitempty" yaml:"scalars,omitempty"`
}

// Rule is the file form of ir.Rule. Pattern is a Go regular expression.
type Rule struct {
	Path     string   `json:"path" yaml:"path"`
	Required *bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Size     *int     `json:"size,omitempty" yaml:"size,omitempty"`
	Min      *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Enum     []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
	Pattern  string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// ScalarConfig is the file form of engine.ScalarDefinition.
type ScalarConfig struct {
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// IR converts the rule, compiling its pattern.
func (r Rule) IR() (ir.Rule, error) {
	out := ir.Rule{
		Path: r.Path,
		Constraints: ir.Constraints{
			Required: r.Required,
			Size:     r.Size,
			Min:      r.Min,
			Max:      r.Max,
			Enum:     r.Enum,
		},
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return ir.Rule{}, fmt.Errorf("rule %q: pattern: %w", r.Path, err)
		}
		out.Pattern = re
	}
	return out, nil
}

// EngineOptions converts the file into call options, in file order.
func (o *Options) EngineOptions() ([]engine.Option, error) {
	if o == nil {
		return nil, nil
	}
	var opts []engine.Option
	if len(o.Exclude) > 0 {
		opts = append(opts, engine.WithExclude(o.Exclude...))
	}
	if len(o.Rules) > 0 {
		rules := make([]ir.Rule, 0, len(o.Rules))
		for _, r := range o.Rules {
			rule, err := r.IR()
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		opts = append(opts, engine.WithRules(rules...))
	}
	if o.RequiredOnly != nil {
		opts = append(opts, engine.WithRequiredOnly(*o.RequiredOnly))
	}
	if o.Accurate != nil {
		opts = append(opts, engine.WithAccurate(*o.Accurate))
	}
	if len(o.Relations) > 0 {
		rel := make(ir.Relations, len(o.Relations))
		for src, targets := range o.Relations {
			rel[src] = targets
		}
		opts = append(opts, engine.WithRelations(rel))
	}
	if o.IgnoreCustomScalars != nil {
		opts = append(opts, engine.WithIgnoreCustomScalars(*o.IgnoreCustomScalars))
	}
	if o.AddTypeName != nil {
		opts = append(opts, engine.WithAddTypeName(*o.AddTypeName))
	}
	for _, name := range ir.SortedKeys(o.Scalars) {
		sc := o.Scalars[name]
		def := engine.ScalarDefinition{Default: sc.Default}
		if sc.Type != "" {
			t, err := ir.ParseFieldType(sc.Type)
			if err != nil {
				return nil, fmt.Errorf("scalar %q: %w", name, err)
			}
			def.Type = t
		}
		opts = append(opts, engine.WithScalarDefinition(name, def))
	}
	return opts, nil
}

// DecodeOptions parses an options document. Unknown keys are rejected.
func DecodeOptions(data []byte, format Format) (*Options, error) {
	var o Options
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&o); err != nil {
			return nil, fmt.Errorf("parse options: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse options: %w", err)
		}
	}
	return &o, nil
}

// LoadOptions reads an options file, choosing the decoder by extension.
func LoadOptions(path string) (*Options, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := DecodeOptions(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}
