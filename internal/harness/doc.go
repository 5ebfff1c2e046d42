// Package harness runs end-to-end fixture scenarios.
//
// A scenario pairs an inline CUE schema with generation inputs and the
// properties every generated fixture must have.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	schema: |
//	  #User: {
//	      name: string
//	      age:  int & >=18 & <=99
//	  }
//	root: "#User"
//	seed: 7
//	count: 2
//	overrides:
//	  name: Ada
//	  nickname: !undefined
//	options:
//	  exclude: [nickname]
//	  rules:
//	    - path: age
//	      min: 30
//	      max: 40
//	expect:
//	  values:
//	    name: Ada
//	  absent: [nickname]
//	  present: [age]
//	  ranges:
//	    age: {min: 30, max: 40}
//	  one_of:
//	    role: [admin, member]
//	  same:
//	    owner.id: ownerId
//
// A scenario that expects failure names the error code instead:
//
//	expect:
//	  error: CONSTRAINT_CONFLICT
//
// Every path under expect is a flattened path as
// produced by ir.Flatten, so array elements are addressed by index
// ("posts.0.title").
//
// # Deterministic Testing
//
// Every scenario runs with a seeded generator and a fixed clock
// (testutil.Epoch), so a scenario produces the same fixtures on every run.
// RunWithGolden snapshots them as canonical JSON under testdata/golden.
package harness
