package generator

import (
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/roach88/mockingbird/internal/ir"
)

// ValueGenerator produces leaf values for the engine.
//
// name is the field name (last path segment), used by heuristic strategies.
// accurate enables those strategies; type defaults are always available.
type ValueGenerator interface {
	GenerateOne(name string, t ir.FieldType, c ir.Constraints, accurate bool) (any, error)
	GenerateMany(name string, t ir.FieldType, count int, c ir.Constraints, accurate bool) ([]any, error)
}

// Option configures a Faker.
type Option func(*Faker)

// WithStrategy replaces the heuristic strategy. A nil strategy disables
// heuristic generation.
func WithStrategy(s Strategy) Option {
	return func(f *Faker) {
		f.strategy = s
	}
}

// WithClock sets the time source used as "now" for date values.
func WithClock(now func() time.Time) Option {
	return func(f *Faker) {
		f.now = now
	}
}

// Faker is the default ValueGenerator. It is safe for concurrent use.
type Faker struct {
	mu       sync.Mutex
	src      *rand.ChaCha8
	fake     *gofakeit.Faker
	strategy Strategy
	now      func() time.Time
	seed     uint64
}

// New creates a Faker seeded with seed. Seed 0 selects a random seed.
func New(seed uint64, opts ...Option) *Faker {
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)

	f := &Faker{
		src:      src,
		fake:     gofakeit.NewFaker(src, false),
		strategy: NewFuzzyStrategy(DefaultCatalog),
		now:      time.Now,
		seed:     seed,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Seed returns the seed in use, which is random when New was given 0.
func (f *Faker) Seed() uint64 {
	return f.seed
}

// GenerateOne produces a single value of type t satisfying c.
func (f *Faker) GenerateOne(name string, t ir.FieldType, c ir.Constraints, accurate bool) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generate(name, t, c, accurate)
}

// GenerateMany produces count values of type t, each satisfying c.
func (f *Faker) GenerateMany(name string, t ir.FieldType, count int, c ir.Constraints, accurate bool) ([]any, error) {
	if count < 0 {
		return nil, &GeneratorFailedError{Name: name, Type: t, Reason: "negative count"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]any, 0, count)
	for range count {
		v, err := f.generate(name, t, c, accurate)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *Faker) generate(name string, t ir.FieldType, c ir.Constraints, accurate bool) (any, error) {
	if !ir.ValidFieldTypes[t] {
		return nil, &GeneratorFailedError{Name: name, Type: t, Reason: "unsupported field type"}
	}
	if accurate && f.strategy != nil && !c.Shapes() {
		if cand, ok := f.strategy.Find(name, t); ok {
			return cand.Generate(f.fake, f.now()), nil
		}
	}
	return f.byType(name, t, c)
}
