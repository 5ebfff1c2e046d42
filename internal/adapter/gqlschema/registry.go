package gqlschema

import (
	"sync"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

var (
	registryMu sync.RWMutex
	registered *ast.Schema
)

// Register sets the schema used when Parse is called with a nil schema.
func Register(s *ast.Schema) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registered = s
}

// Registered returns the registered schema, or nil.
func Registered() *ast.Schema {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registered
}

// LoadSchema parses and validates SDL sources.
func LoadSchema(sources ...*ast.Source) (*ast.Schema, error) {
	s, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSchemaString parses a single SDL document.
func LoadSchemaString(name, sdl string) (*ast.Schema, error) {
	return LoadSchema(&ast.Source{Name: name, Input: sdl})
}
