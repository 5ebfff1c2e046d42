package engine

import (
	"fmt"
	"log/slog"

	"github.com/roach88/mockingbird/internal/generator"
	"github.com/roach88/mockingbird/internal/ir"
	"github.com/roach88/mockingbird/internal/pathmatch"
	"github.com/roach88/mockingbird/internal/validate"
)

// Schema is implemented by schema adapters. Root returns the root node; its
// children are the top-level fields of a fixture.
type Schema interface {
	Root() *ir.Node
}

// TypeNameKey is the key AddTypeName writes into composites.
const TypeNameKey = "__typename"

// Fixture generates fixtures for one schema.
//
// Thread-safety model:
//   - Generate, BulkGenerate: safe from any goroutine as long as the
//     ValueGenerator is (the default generator.Faker is)
//   - Every call owns its state; nothing is shared between calls except the
//     schema tree (read only) and the Registry snapshot
type Fixture struct {
	schema    Schema
	gen       generator.ValueGenerator
	validator *validate.Validator
	registry  *Registry
	logger    *slog.Logger
}

// FixtureOption configures a Fixture.
type FixtureOption func(*Fixture)

// WithGenerator sets the value generator.
//
// Default: generator.New(0), a randomly seeded Faker.
func WithGenerator(gen generator.ValueGenerator) FixtureOption {
	return func(f *Fixture) {
		f.gen = gen
	}
}

// WithRegistry sets the registry providing default options.
//
// Default: DefaultRegistry.
func WithRegistry(r *Registry) FixtureOption {
	return func(f *Fixture) {
		f.registry = r
	}
}

// WithLogger sets the logger for call tracing and relation warnings.
//
// Default: slog.Default().
func WithLogger(logger *slog.Logger) FixtureOption {
	return func(f *Fixture) {
		f.logger = logger
	}
}

// New creates a Fixture for schema.
func New(schema Schema, opts ...FixtureOption) *Fixture {
	f := &Fixture{
		schema:    schema,
		validator: validate.New(),
		registry:  DefaultRegistry,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.gen == nil {
		f.gen = generator.New(0)
	}
	return f
}

// Generate produces one fixture.
//
// Overrides map patterns to literal leaf values; ir.Undefined forces a leaf
// to be absent. Call options are applied on top of the registry defaults.
func (f *Fixture) Generate(overrides ir.Overrides, opts ...Option) (map[string]any, error) {
	o := f.registry.Snapshot(opts...)
	if err := checkInputs(overrides, o); err != nil {
		return nil, err
	}
	return f.run(overrides, o)
}

// BulkGenerate produces count independent fixtures. Inputs are checked once;
// the first failing generation aborts the whole batch.
func (f *Fixture) BulkGenerate(count int, overrides ir.Overrides, opts ...Option) ([]map[string]any, error) {
	if count < 0 {
		return nil, fmt.Errorf("bulk generate: negative count %d", count)
	}
	o := f.registry.Snapshot(opts...)
	if err := checkInputs(overrides, o); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, count)
	for i := range count {
		fixture, err := f.run(overrides, o)
		if err != nil {
			return nil, fmt.Errorf("fixture %d: %w", i, err)
		}
		out = append(out, fixture)
	}
	return out, nil
}

// checkInputs rejects malformed paths in every pattern-keyed input.
func checkInputs(overrides ir.Overrides, o Options) error {
	if err := pathmatch.ValidateAll("override", overrides.Keys()...); err != nil {
		return err
	}
	if err := pathmatch.ValidateAll("exclude", o.Exclude...); err != nil {
		return err
	}
	for _, r := range o.Rules {
		if err := pathmatch.ValidateAll("rule", r.Path); err != nil {
			return err
		}
	}
	for _, src := range o.Relations.Keys() {
		if err := pathmatch.ValidateAll("relation", src); err != nil {
			return err
		}
		if err := pathmatch.ValidateAll("relation", o.Relations[src]...); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixture) run(overrides ir.Overrides, o Options) (map[string]any, error) {
	root := f.schema.Root()
	if root == nil {
		return map[string]any{}, nil
	}

	w := &walker{
		f:         f,
		opts:      o,
		overrides: overrides,
		generated: make(map[ir.Path]any),
	}
	f.logger.Debug("generating fixture",
		"fields", len(root.Children),
		"overrides", len(overrides),
		"rules", len(o.Rules),
		"relations", len(o.Relations),
	)
	return w.object("", root.Children)
}
