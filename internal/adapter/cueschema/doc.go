// Package cueschema turns CUE definitions into mockingbird schema trees.
//
// Regular and required (!) fields become required nodes; optional (?) fields
// become optional nodes. Intrinsic constraints come from the CUE expression
// itself:
//
//	age:    int & >=18 & <=99          // min 18, max 99
//	status: "active" | "banned"        // enum
//	code:   =~"^[A-Z]{3}$"             // pattern
//	tags:   [...string]                // leaf array
//	items:  [...#Item]                 // array of composites
//	id:     string @mock(uuid)         // generated as a UUID
//	lines:  [...#Line] @mock(size=3)   // three elements
//
// The @mock attribute takes an optional field type as its first argument
// and an optional size.
package cueschema
