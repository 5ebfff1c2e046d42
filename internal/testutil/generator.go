package testutil

import (
	"fmt"
	"sync"

	"github.com/roach88/mockingbird/internal/ir"
)

// GenerateCall records one request made to a StubGenerator.
type GenerateCall struct {
	Name        string
	Type        ir.FieldType
	Count       int // 0 for GenerateOne
	Constraints ir.Constraints
	Accurate    bool
}

// StubGenerator is a deterministic ValueGenerator for engine tests.
//
// Values are predictable from the call order: strings are "<name>-<n>",
// numbers are n, booleans alternate starting with true. An enum yields its
// first element; a numeric Min lifts the counter to at least Min.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StubGenerator struct {
	mu    sync.Mutex
	n     int
	calls []GenerateCall

	// Err, when set, is returned by every call.
	Err error
}

// NewStubGenerator creates a StubGenerator whose counter starts at 1.
func NewStubGenerator() *StubGenerator {
	return &StubGenerator{}
}

// GenerateOne implements generator.ValueGenerator.
func (g *StubGenerator) GenerateOne(name string, t ir.FieldType, c ir.Constraints, accurate bool) (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, GenerateCall{Name: name, Type: t, Constraints: c, Accurate: accurate})
	if g.Err != nil {
		return nil, g.Err
	}
	return g.next(name, t, c), nil
}

// GenerateMany implements generator.ValueGenerator.
func (g *StubGenerator) GenerateMany(name string, t ir.FieldType, count int, c ir.Constraints, accurate bool) ([]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, GenerateCall{Name: name, Type: t, Count: count, Constraints: c, Accurate: accurate})
	if g.Err != nil {
		return nil, g.Err
	}
	out := make([]any, count)
	for i := range out {
		out[i] = g.next(name, t, c)
	}
	return out, nil
}

// Calls returns the recorded requests in order.
func (g *StubGenerator) Calls() []GenerateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]GenerateCall(nil), g.calls...)
}

func (g *StubGenerator) next(name string, t ir.FieldType, c ir.Constraints) any {
	g.n++
	if len(c.Enum) > 0 {
		return c.Enum[0]
	}
	n := g.n
	if c.Min != nil && float64(n) < *c.Min {
		n = int(*c.Min)
	}
	switch t {
	case ir.TypeInt:
		return n
	case ir.TypeFloat:
		return float64(n)
	case ir.TypeBoolean:
		return g.n%2 == 1
	case ir.TypeObject:
		return map[string]any{"n": n}
	case ir.TypeBytes:
		return []byte(fmt.Sprintf("%s-%d", name, n))
	}
	return fmt.Sprintf("%s-%d", name, n)
}
