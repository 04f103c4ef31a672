package bridge

// Handle is one live instance of a numeric engine.
//
// GetValue on a name the engine does not know returns an engine-defined
// sentinel rather than failing. Handles are owned by exactly one Session
// and must not be used after Destroy.
type Handle interface {
	SetValue(name string, v float64)
	GetValue(name string) float64

	// CommitInputs absorbs all set exchange values into internal state.
	CommitInputs()

	// ApplyConditionalDefaults re-derives defaults that depend on the
	// current categorical selection.
	ApplyConditionalDefaults()

	// Compute runs the calculation over the current internal state.
	Compute() error

	// PublishOutputs copies computed state back to the exchange surface.
	PublishOutputs()

	Destroy()
}

// Engine creates handles. Create never fails in normal operation; an
// implementation that cannot allocate an instance panics.
type Engine interface {
	Create() Handle

	// Version identifies the calculation for run records.
	Version() string
}
