package resolve

import (
	"github.com/roach88/mockingbird/internal/ir"
	"github.com/roach88/mockingbird/internal/pathmatch"
)

// FindRelation returns the source pattern of the relation that targets path.
// A relation targets path when any of its target patterns matches. More than
// one source targeting the same path yields an *AmbiguousRelationError.
func FindRelation(path ir.Path, relations ir.Relations) (source string, ok bool, err error) {
	var sources []string
	for _, src := range relations.Keys() {
		if pathmatch.Exists(path, relations[src]) {
			sources = append(sources, src)
		}
	}
	switch len(sources) {
	case 0:
		return "", false, nil
	case 1:
		return sources[0], true, nil
	default:
		return "", false, &AmbiguousRelationError{Path: path, Sources: sources}
	}
}
