package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/mockingbird/internal/adapter/cueschema"
	"github.com/roach88/mockingbird/internal/config"
	"github.com/roach88/mockingbird/internal/engine"
	"github.com/roach88/mockingbird/internal/generator"
	"github.com/roach88/mockingbird/internal/ir"
	"github.com/roach88/mockingbird/internal/testutil"
)

// Harness executes scenarios with deterministic generators.
type Harness struct {
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// New creates a Harness. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{
		clock:  testutil.NewDeterministicClock(),
		logger: logger,
	}
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// The returned error reports problems with the scenario itself (a schema
// that does not compile, unparsable overrides). Generation failures are
// expectations: they fail the result unless Expect.Error names their code.
//
// Execution flow:
//  1. Compile the CUE schema
//  2. Build overrides and call options
//  3. Generate Count fixtures from a fresh seeded generator
//  4. Evaluate expectations against every fixture
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	schema, err := cueschema.Compile([]byte(scenario.Schema),
		cueschema.WithRoot(scenario.Root),
		cueschema.WithFilename(scenario.Name+".cue"),
	)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	overrides, err := config.OverridesFromYAML(&scenario.Overrides)
	if err != nil {
		return nil, err
	}
	opts, err := scenario.Options.EngineOptions()
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	seed := scenario.EffectiveSeed()
	count := scenario.Count
	if count == 0 {
		count = 1
	}

	h.clock.Reset()
	gen := generator.New(seed, generator.WithClock(h.clock.Now))
	fx := engine.New(schema,
		engine.WithGenerator(gen),
		engine.WithRegistry(engine.NewRegistry()),
		engine.WithLogger(h.logger),
	)

	h.logger.Debug("running scenario", "name", scenario.Name, "seed", seed, "count", count)

	result := NewResult()
	fixtures, genErr := fx.BulkGenerate(count, overrides, opts...)
	if genErr != nil {
		result.Code = engine.ErrorCode(genErr)
		checkError(result, scenario.Expect, genErr)
		return result, nil
	}
	result.Fixtures = fixtures

	if scenario.Expect.Error != "" {
		result.AddError(fmt.Sprintf("expected error %s, generation succeeded", scenario.Expect.Error))
		return result, nil
	}
	for i, f := range fixtures {
		for _, msg := range EvaluateExpect(ir.Flatten(f), scenario.Expect) {
			result.AddError(fmt.Sprintf("fixture %d: %s", i, msg))
		}
	}
	return result, nil
}

func checkError(result *Result, expect Expect, err error) {
	switch {
	case expect.Error == "":
		result.AddError(fmt.Sprintf("generation failed: %v", err))
	case result.Code != expect.Error:
		result.AddError(fmt.Sprintf("expected error %s, got %s: %v", expect.Error, codeOrNone(result.Code), err))
	}
}

func codeOrNone(c ir.ErrorCode) string {
	if c == "" {
		return "no code"
	}
	return string(c)
}
