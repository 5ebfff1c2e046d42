// Package generator produces leaf values for the engine.
//
// The engine only depends on the ValueGenerator interface. Faker is the
// default implementation, backed by gofakeit and a seedable ChaCha8 source
// so that the same seed yields the same sequence of values.
//
// Generation has two paths:
//   - Type defaults honor the merged constraints: enum picks an element,
//     pattern generates a matching string, size fixes string length, and
//     min/max bound numbers (or string length).
//   - Heuristic generation, enabled by the accurate flag, asks a Strategy
//     for a candidate keyed on the field name ("email", "firstName") and
//     only applies when the constraints leave the value's shape open.
package generator
