// Package ir provides the schema and constraint types shared by every
// mockingbird package.
//
// This package contains type definitions and pure value helpers only. All
// other internal packages import ir; ir imports nothing internal. This keeps
// IR the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Schema adapters produce *Node trees; the engine never sees a concrete
//     schema format
//   - Constraint fields are pointers so "unset" differs from the zero value
//   - Generated output is plain Go data (map[string]any, []any, scalars) so
//     callers can marshal it with any encoder
//   - Undefined is the only way to express "force absence" in overrides
package ir
