// Package config loads run cases.
//
// A case is a CUE file checked against the embedded #Case definition:
//
//	schema:   "farm.csv"
//	database: "runs.db"
//	inputs: {
//		nTurb:        60
//		turbR:        6.0
//		substructure: "JACKET"
//	}
//	outputs: ["hubD", "turbsPerTrip"]
//
// Relative schema and database paths resolve against the case file's
// directory. Input values stay untyped here; the accessor coerces them to
// the kind of each variable.
package config
