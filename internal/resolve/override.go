package resolve

import (
	"github.com/roach88/mockingbird/internal/ir"
	"github.com/roach88/mockingbird/internal/pathmatch"
)

// Override looks up the override value for path.
//
// With no matching key it returns found=false. With exactly one it returns
// that key's value, which may be ir.Undefined. With more than one it returns
// an *AmbiguousOverrideError listing the matching keys in sorted order.
func Override(path ir.Path, overrides ir.Overrides) (value any, found bool, err error) {
	if len(overrides) == 0 {
		return nil, false, nil
	}
	matches := pathmatch.FindAll(path, overrides.Keys())
	switch len(matches) {
	case 0:
		return nil, false, nil
	case 1:
		return overrides[matches[0]], true, nil
	default:
		return nil, false, &AmbiguousOverrideError{Path: path, Keys: matches}
	}
}
