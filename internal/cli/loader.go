package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/mockingbird/internal/adapter/cueschema"
	"github.com/roach88/mockingbird/internal/adapter/gqlschema"
	"github.com/roach88/mockingbird/internal/adapter/jsonschema"
	"github.com/roach88/mockingbird/internal/config"
	"github.com/roach88/mockingbird/internal/engine"
	"github.com/roach88/mockingbird/internal/ir"
)

// SchemaKind is the source format of a schema file.
type SchemaKind string

// Supported schema kinds.
const (
	KindCUE        SchemaKind = "cue"
	KindJSONSchema SchemaKind = "jsonschema"
	KindGraphQL    SchemaKind = "graphql"
)

// KindOf picks the schema kind from the file extension.
func KindOf(path string) (SchemaKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return KindCUE, nil
	case ".json":
		return KindJSONSchema, nil
	case ".graphql", ".gql", ".graphqls":
		return KindGraphQL, nil
	}
	return "", &LoadError{
		Code:    ErrCodeUnknownKind,
		Message: fmt.Sprintf("unsupported schema file %s: want .cue, .json, .graphql or .gql", path),
	}
}

// SchemaInput names a schema file and the adapter settings for it.
type SchemaInput struct {
	Path      string
	Root      string // CUE value to generate from, e.g. "#User"
	Query     string // GraphQL operation file, required for GraphQL schemas
	Operation string // GraphQL operation name when the query file has several
	MaxDepth  int    // 0 means the adapter default
}

// LoadError represents an error that occurred while loading a schema or
// an input file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSchema reads and adapts the schema named by in.
func LoadSchema(in SchemaInput) (engine.Schema, error) {
	kind, err := KindOf(in.Path)
	if err != nil {
		return nil, err
	}
	data, err := readInput(in.Path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindCUE:
		return loadCUE(in, data)
	case KindJSONSchema:
		return loadJSONSchema(in, data)
	default:
		return loadGraphQL(in, data)
	}
}

func loadCUE(in SchemaInput, data []byte) (engine.Schema, error) {
	opts := []cueschema.Option{
		cueschema.WithRoot(in.Root),
		cueschema.WithFilename(in.Path),
	}
	if in.MaxDepth > 0 {
		opts = append(opts, cueschema.WithMaxDepth(in.MaxDepth))
	}
	s, err := cueschema.Compile(data, opts...)
	if err != nil {
		var compileErr *cueschema.CompileError
		if errors.As(err, &compileErr) {
			return nil, &LoadError{Code: ErrCodeSchema, Message: compileErr.Message, Pos: compileErr.Pos}
		}
		return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error()}
	}
	return s, nil
}

func loadJSONSchema(in SchemaInput, data []byte) (engine.Schema, error) {
	var opts []jsonschema.Option
	if in.MaxDepth > 0 {
		opts = append(opts, jsonschema.WithMaxDepth(in.MaxDepth))
	}
	s, err := jsonschema.Parse(data, opts...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("%s: %v", in.Path, err)}
	}
	return s, nil
}

// loadGraphQL registers the SDL and parses the operation against it.
func loadGraphQL(in SchemaInput, sdl []byte) (engine.Schema, error) {
	if in.Query == "" {
		return nil, &LoadError{Code: ErrCodeQuery, Message: "GraphQL schemas need --query with an operation file"}
	}
	schema, err := gqlschema.LoadSchemaString(in.Path, string(sdl))
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error()}
	}
	gqlschema.Register(schema)

	query, err := readInput(in.Query)
	if err != nil {
		return nil, err
	}
	opts := []gqlschema.Option{gqlschema.WithOperation(in.Operation)}
	if in.MaxDepth > 0 {
		opts = append(opts, gqlschema.WithMaxDepth(in.MaxDepth))
	}
	op, err := gqlschema.Parse(nil, string(query), opts...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeQuery, Message: fmt.Sprintf("%s: %v", in.Query, err)}
	}
	return op, nil
}

// readInput reads a file through config.AppFs, mapping a missing file to
// ErrCodeNotFound.
func readInput(path string) ([]byte, error) {
	data, err := config.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	return data, nil
}

// loadInputs reads the overrides and options files; empty paths are
// skipped.
func loadInputs(overridesPath, optionsPath string) (ir.Overrides, *config.Options, error) {
	overrides := ir.Overrides{}
	if overridesPath != "" {
		data, format, err := readConfigInput(overridesPath)
		if err != nil {
			return nil, nil, err
		}
		if overrides, err = config.DecodeOverrides(data, format); err != nil {
			return nil, nil, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("%s: %v", overridesPath, err)}
		}
	}

	var options *config.Options
	if optionsPath != "" {
		data, format, err := readConfigInput(optionsPath)
		if err != nil {
			return nil, nil, err
		}
		if options, err = config.DecodeOptions(data, format); err != nil {
			return nil, nil, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("%s: %v", optionsPath, err)}
		}
	}
	return overrides, options, nil
}

func readConfigInput(path string) ([]byte, config.Format, error) {
	format, err := config.FormatOf(path)
	if err != nil {
		return nil, "", &LoadError{Code: ErrCodeBadInput, Message: err.Error()}
	}
	data, err := readInput(path)
	if err != nil {
		return nil, "", err
	}
	return data, format, nil
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeUnknownKind = "E002" // Unsupported schema extension
	ErrCodeSchema      = "E003" // Schema failed to load or compile
	ErrCodeQuery       = "E004" // GraphQL operation missing or invalid
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBadInput    = "E006" // Overrides or options file invalid
	ErrCodeWriteFailed = "E007" // File write error
)

// loadErrorCode returns the CLI code carried by err, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}
