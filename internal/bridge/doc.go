// Package bridge is the narrow contract toward an opaque numeric engine.
//
// The engine only understands a flat mapping from variable name to float64.
// Engine creates instances; each Handle is one instance with scalar SetValue
// and GetValue plus the four pipeline steps of a run:
//
//	CommitInputs → ApplyConditionalDefaults → Compute → PublishOutputs
//
// Session owns exactly one Handle and is the only way the rest of the module
// drives it. Session.Run always executes the four steps in that order, so a
// run can never compute with category-dependent defaults left over from a
// previous run.
//
// State machine:
//
//	CREATED ──Set──▶ INPUTS_SET ──Run──▶ DEFAULTED ──▶ COMPUTED ──▶ PUBLISHED
//	                     ▲                                              │
//	                     └──────────────────Set─────────────────────────┘
//
// A Session is not safe for concurrent use. Callers that share one across
// goroutines must serialize whole runs, or use one Session per goroutine.
package bridge
