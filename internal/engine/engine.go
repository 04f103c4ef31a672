package engine

import (
	"math"

	"github.com/roach88/wobos/internal/bridge"
)

// Version identifies the calculation in run records.
const Version = "wobos-reference/1"

// Engine creates reference handles.
type Engine struct{}

// New returns the reference engine.
func New() *Engine {
	return &Engine{}
}

// Create implements bridge.Engine.
func (*Engine) Create() bridge.Handle {
	h := &Handle{
		exchange: make(map[string]float64),
		state:    defaultState(),
	}
	h.state.fleet = fleetFor(Monopile)
	return h
}

// Version implements bridge.Engine.
func (*Engine) Version() string { return Version }

// Handle is one reference engine instance.
type Handle struct {
	exchange map[string]float64
	state    state
}

var _ bridge.Handle = (*Handle)(nil)

// SetValue writes one exchange value. Any name is accepted.
func (h *Handle) SetValue(name string, v float64) {
	h.exchange[name] = v
}

// GetValue reads one exchange value, NaN if the name was never written.
func (h *Handle) GetValue(name string) float64 {
	v, ok := h.exchange[name]
	if !ok {
		return math.NaN()
	}
	return v
}

// CommitInputs copies known input names from the exchange map into state.
// Names the model does not use stay in the exchange map only.
func (h *Handle) CommitInputs() {
	for _, f := range h.state.inputs() {
		if v, ok := h.exchange[f.name]; ok {
			*f.ptr = v
		}
	}
}

// ApplyConditionalDefaults re-derives the vessel fleet from the committed
// substructure.
func (h *Handle) ApplyConditionalDefaults() {
	h.state.fleet = fleetFor(int(h.state.substructure))
}

// Compute evaluates the model. On error the previous results are kept.
func (h *Handle) Compute() error {
	next, err := h.state.compute()
	if err != nil {
		return err
	}
	h.state = next
	return nil
}

// PublishOutputs copies computed results into the exchange map.
func (h *Handle) PublishOutputs() {
	for _, f := range h.state.outputs() {
		h.exchange[f.name] = *f.ptr
	}
}

// Destroy releases the handle's state.
func (h *Handle) Destroy() {
	h.exchange = nil
}
