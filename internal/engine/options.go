package engine

import (
	"maps"
	"slices"
	"sync"

	"github.com/roach88/mockingbird/internal/ir"
)

// ScalarDefinition maps a custom scalar type name to a generated type.
// Default is used when Type is empty or generation fails.
type ScalarDefinition struct {
	Type    ir.FieldType `json:"type" yaml:"type"`
	Default any          `json:"default,omitempty" yaml:"default,omitempty"`
}

// Options controls one generation call.
type Options struct {
	// Exclude lists patterns whose nodes are left out of the output.
	Exclude []ir.Pattern

	// Rules are caller constraints, merged with the schema's own.
	Rules []ir.Rule

	// RequiredOnly leaves out every optional node.
	RequiredOnly bool

	// Accurate enables name-based heuristic generation.
	Accurate bool

	// Relations copy already generated values to other paths.
	Relations ir.Relations

	// IgnoreCustomScalars leaves out custom scalar nodes.
	IgnoreCustomScalars bool

	// AddTypeName adds a "__typename" key to every composite with a type name.
	AddTypeName bool

	// ScalarDefinitions maps custom scalar type names to generated types.
	ScalarDefinitions map[string]ScalarDefinition
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	out := o
	out.Exclude = slices.Clone(o.Exclude)
	if o.Rules != nil {
		out.Rules = make([]ir.Rule, len(o.Rules))
		for i, r := range o.Rules {
			out.Rules[i] = ir.Rule{Path: r.Path, Constraints: r.Constraints.Clone()}
		}
	}
	if o.Relations != nil {
		out.Relations = make(ir.Relations, len(o.Relations))
		for k, v := range o.Relations {
			out.Relations[k] = slices.Clone(v)
		}
	}
	out.ScalarDefinitions = maps.Clone(o.ScalarDefinitions)
	return out
}

// Option configures a call (or the registry defaults).
type Option func(*Options)

// WithExclude replaces the exclude patterns.
func WithExclude(patterns ...ir.Pattern) Option {
	return func(o *Options) {
		o.Exclude = patterns
	}
}

// WithRules replaces the caller rules.
func WithRules(rules ...ir.Rule) Option {
	return func(o *Options) {
		o.Rules = rules
	}
}

// WithRequiredOnly sets whether optional nodes are left out.
func WithRequiredOnly(requiredOnly bool) Option {
	return func(o *Options) {
		o.RequiredOnly = requiredOnly
	}
}

// WithAccurate sets whether heuristic generation is used.
func WithAccurate(accurate bool) Option {
	return func(o *Options) {
		o.Accurate = accurate
	}
}

// WithRelations replaces the field relations.
func WithRelations(relations ir.Relations) Option {
	return func(o *Options) {
		o.Relations = relations
	}
}

// WithIgnoreCustomScalars sets whether custom scalar nodes are left out.
func WithIgnoreCustomScalars(ignore bool) Option {
	return func(o *Options) {
		o.IgnoreCustomScalars = ignore
	}
}

// WithAddTypeName sets whether composites carry a "__typename" key.
func WithAddTypeName(add bool) Option {
	return func(o *Options) {
		o.AddTypeName = add
	}
}

// WithScalarDefinition registers a definition for one custom scalar.
func WithScalarDefinition(typeName string, def ScalarDefinition) Option {
	return func(o *Options) {
		if o.ScalarDefinitions == nil {
			o.ScalarDefinitions = make(map[string]ScalarDefinition)
		}
		o.ScalarDefinitions[typeName] = def
	}
}

// WithOptions replaces every field with those of opts. It is meant for
// options decoded from a file.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts.Clone()
	}
}

// Registry holds the process-wide default options.
//
// Thread-safety model:
//   - SetDefaults, Reset: serialized writers
//   - Defaults, Snapshot: concurrent readers; each returns an independent copy
//
// A call snapshots the defaults once at entry, so changing them never affects
// a call already in flight.
type Registry struct {
	mu       sync.RWMutex
	defaults Options
}

// NewRegistry returns a registry holding the built-in defaults.
func NewRegistry() *Registry {
	return &Registry{defaults: builtinDefaults()}
}

// DefaultRegistry is the registry used by fixtures created without
// WithRegistry.
var DefaultRegistry = NewRegistry()

func builtinDefaults() Options {
	return Options{Accurate: true}
}

// SetDefaults applies opts to the current defaults.
func (r *Registry) SetDefaults(opts ...Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.defaults.Clone()
	for _, opt := range opts {
		opt(&next)
	}
	r.defaults = next
}

// Reset restores the built-in defaults.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults = builtinDefaults()
}

// Defaults returns a copy of the current defaults.
func (r *Registry) Defaults() Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults.Clone()
}

// Snapshot returns a copy of the defaults with opts applied on top. Call
// options win over defaults.
func (r *Registry) Snapshot(opts ...Option) Options {
	o := r.Defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
