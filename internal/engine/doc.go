// Package engine implements the mockingbird generation engine.
//
// The engine walks a schema tree supplied by an adapter and assembles one
// fixture per call. For every node it derives the node's path, then decides
// in order: excluded, copied from a related field, recursed into (composites
// and arrays of composites), or produced as a leaf (override or generated
// value). Every final leaf is validated against its merged constraints.
//
// ARCHITECTURE:
//
// Single Pass Walk:
// A call is one synchronous depth-first walk in declaration order.
// 1. Options are snapshotted from the Registry with call options applied
// 2. Override keys, excludes, rule paths and relations are checked once
// 3. Nodes are visited depth first; each visit computes the node's path
// 4. Leaves are overridden or generated, then validated
// 5. Each value is recorded in a call-scoped map for relation lookup
//
// Relations only see values generated earlier in the same call, so a source
// must precede its targets in declaration order.
//
// Any error aborts the call and nothing partial is returned. The only
// non-fatal condition is an unresolved relation, which is logged at Warn and
// otherwise ignored.
//
// INVARIANTS:
//   - At most one override, rule or relation may match a path
//   - Caller rules tighten schema constraints, never loosen them
//   - A required node is never excluded
//   - Call state never outlives the call; defaults change only through the
//     Registry and never affect a call already in flight
package engine
