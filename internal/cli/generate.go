package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mockingbird/internal/config"
	"github.com/roach88/mockingbird/internal/engine"
	"github.com/roach88/mockingbird/internal/generator"
	"github.com/roach88/mockingbird/internal/ir"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Count        int
	Seed         uint64
	Overrides    string // overrides file (.yaml, .yml or .json)
	Options      string // options file (.yaml, .yml or .json)
	Root         string // CUE root value
	Query        string // GraphQL operation file
	Operation    string // GraphQL operation name
	Output       string // write fixtures to this file instead of stdout
	Flat         bool   // flatten fixtures to dotted keys
	RequiredOnly bool
	Accurate     bool
	MaxDepth     int
}

// GenerateResult is the JSON payload of the generate command.
type GenerateResult struct {
	Seed     uint64   `json:"seed"`
	Count    int      `json:"count"`
	Output   string   `json:"output,omitempty"`
	Fixtures []any    `json:"fixtures,omitempty"`
	Digests  []string `json:"digests,omitempty"` // content digest per fixture, see ir.FixtureDigest
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <schema>",
		Short: "Generate fixtures from a schema",
		Long: `Generate fixtures from a CUE, JSON Schema or GraphQL schema.

The schema kind is chosen by extension: .cue, .json, .graphql or .gql.
GraphQL schemas need --query naming an operation file; the fixture then
holds "variables" and "data".

Exit codes:
  0 - Fixtures generated
  1 - Generation failed (constraint conflict, invalid override, ...)
  2 - Command error (unreadable schema, bad input file, etc.)

Examples:
  mockingbird generate user.cue --root '#User' --count 3
  mockingbird generate user.json --overrides overrides.yaml --seed 42
  mockingbird generate schema.graphql --query getUser.graphql --flat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 1, "number of fixtures")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "generator seed (0 picks a random seed)")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", "", "overrides file")
	cmd.Flags().StringVar(&opts.Options, "options", "", "options file (exclude, rules, relations, ...)")
	cmd.Flags().StringVar(&opts.Root, "root", "", "CUE value to generate from, e.g. '#User'")
	cmd.Flags().StringVar(&opts.Query, "query", "", "GraphQL operation file")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "GraphQL operation name")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write fixtures to a .json or .yaml file")
	cmd.Flags().BoolVar(&opts.Flat, "flat", false, "flatten fixtures to dotted keys")
	cmd.Flags().BoolVar(&opts.RequiredOnly, "required-only", false, "generate required fields only")
	cmd.Flags().BoolVar(&opts.Accurate, "accurate", true, "pick realistic values from field names")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "expansion depth for recursive types (0 uses the default)")

	return cmd
}

func runGenerate(opts *GenerateOptions, schemaPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	opts.applySettings(cmd)

	if opts.Count < 0 {
		return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("--count must be non-negative, got %d", opts.Count)})
	}

	schema, err := LoadSchema(SchemaInput{
		Path:      schemaPath,
		Root:      opts.Root,
		Query:     opts.Query,
		Operation: opts.Operation,
		MaxDepth:  opts.MaxDepth,
	})
	if err != nil {
		return commandError(formatter, err)
	}
	overrides, options, err := loadInputs(opts.Overrides, opts.Options)
	if err != nil {
		return commandError(formatter, err)
	}
	callOpts, err := callOptions(options, opts.Accurate, opts.RequiredOnly, cmd)
	if err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: err.Error()})
	}

	gen := generator.New(opts.Seed)
	formatter.VerboseLog("Generating %d fixture(s) from %s with seed %d", opts.Count, schemaPath, gen.Seed())

	fx := engine.New(schema,
		engine.WithGenerator(gen),
		engine.WithRegistry(engine.NewRegistry()),
		engine.WithLogger(opts.logger(cmd)),
	)
	fixtures, err := fx.BulkGenerate(opts.Count, overrides, callOpts...)
	if err != nil {
		return generationError(formatter, err)
	}

	payload := make([]any, len(fixtures))
	for i, f := range fixtures {
		if opts.Flat {
			payload[i] = ir.Flatten(f)
		} else {
			payload[i] = f
		}
	}

	result := GenerateResult{Seed: gen.Seed(), Count: len(payload)}
	if opts.Output != "" {
		if err := writeFixtures(opts.Output, payload); err != nil {
			return commandError(formatter, err)
		}
		result.Output = opts.Output
		if opts.Format == "json" {
			return formatter.Success(result)
		}
		formatter.Pass("wrote %d fixture(s) to %s (seed %d)", result.Count, opts.Output, result.Seed)
		return nil
	}

	if opts.Format == "json" {
		result.Fixtures = payload
		for _, f := range fixtures {
			d, err := ir.FixtureDigest(f)
			if err != nil {
				return generationError(formatter, err)
			}
			result.Digests = append(result.Digests, d)
		}
		return formatter.Success(result)
	}
	data, err := json.MarshalIndent(singleOrList(payload), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(formatter.Writer, string(data))
	return nil
}

// applySettings fills flags the user did not set from .mockingbird.yaml.
func (o *GenerateOptions) applySettings(cmd *cobra.Command) {
	s := o.Settings
	if s == nil {
		return
	}
	flags := cmd.Flags()
	if !flags.Changed("count") {
		o.Count = s.Count
	}
	if !flags.Changed("seed") {
		o.Seed = s.Seed
	}
	if !flags.Changed("options") && s.Options != "" {
		o.Options = s.Options
	}
	if !flags.Changed("root") && s.Root != "" {
		o.Root = s.Root
	}
	if !flags.Changed("accurate") {
		o.Accurate = s.Accurate
	}
}

// callOptions orders engine options so that explicit flags beat the options
// file, which beats settings.
func callOptions(file *config.Options, accurate, requiredOnly bool, cmd *cobra.Command) ([]engine.Option, error) {
	out := []engine.Option{engine.WithAccurate(accurate)}
	fromFile, err := file.EngineOptions()
	if err != nil {
		return nil, err
	}
	out = append(out, fromFile...)
	if cmd.Flags().Changed("accurate") {
		out = append(out, engine.WithAccurate(accurate))
	}
	if cmd.Flags().Changed("required-only") {
		out = append(out, engine.WithRequiredOnly(requiredOnly))
	}
	return out, nil
}

// writeFixtures encodes fixtures by the output extension.
func writeFixtures(path string, fixtures []any) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(singleOrList(fixtures))
	case ".json":
		data, err = json.MarshalIndent(singleOrList(fixtures), "", "  ")
		data = append(data, '\n')
	default:
		return &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("unsupported output file %s: want .json, .yaml or .yml", path)}
	}
	if err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Message: err.Error()}
	}
	if err := config.WriteFile(path, data); err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Message: err.Error()}
	}
	return nil
}

// singleOrList unwraps a single fixture so `generate` without --count
// prints an object.
func singleOrList(fixtures []any) any {
	if len(fixtures) == 1 {
		return fixtures[0]
	}
	return fixtures
}

// commandError reports err and returns an exit-2 error.
func commandError(formatter *OutputFormatter, err error) error {
	code := loadErrorCode(err)
	if outErr := formatter.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "command failed", err)
}

// generationError reports an engine error with its code and returns an
// exit-1 error.
func generationError(formatter *OutputFormatter, err error) error {
	code := string(engine.ErrorCode(err))
	if code == "" {
		code = ErrCodeGeneric
	}
	if outErr := formatter.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitFailure, code, err)
}
