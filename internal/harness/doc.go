// Package harness runs YAML scenarios against the reference engine.
//
// A scenario is a list of steps executed on one session:
//
//	name: jacket_feeder
//	description: jacket substructures shipped by feeder barge
//	steps:
//	  - set:
//	      substructure: JACKET
//	      installStrategy: FEEDERBARGE
//	  - run: true
//	  - expect:
//	      nTurbPerTrip: 3
//	      hubD: { value: 3.25, tolerance: 1e-9 }
//
// A set or run step that fails must be followed by an expect_error step
// naming the error code. Every bridge call is recorded; the rendered call
// trace is what golden files compare.
package harness
