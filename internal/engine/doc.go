// Package engine is an in-memory reference implementation of bridge.Engine.
//
// It evaluates the public parts of the offshore balance-of-station model:
// turbine geometry, substructure and mooring masses, the deck area a
// turbine needs on a transport vessel and how many turbines fit per trip.
// Cost and schedule formulas are not implemented.
//
// The engine keeps two surfaces, exactly like an external numeric library
// would:
//
//   - the exchange map, a flat name → float64 table written by SetValue and
//     read by GetValue
//   - a structured state, filled from the exchange map by CommitInputs and
//     copied back by PublishOutputs
//
// GetValue returns NaN for names it has never seen. Categorical inputs are
// ordinals; the engine knows the ordinal order of each domain and rejects
// out-of-range ordinals from Compute with ErrInvalidState.
package engine
