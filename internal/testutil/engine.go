package testutil

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/roach88/wobos/internal/bridge"
)

// Bridge operation names recorded by RecordingEngine.
const (
	OpCreate        = "create"
	OpSetValue      = "setValue"
	OpGetValue      = "getValue"
	OpCommitInputs  = "commitInputs"
	OpApplyDefaults = "applyConditionalDefaults"
	OpCompute       = "compute"
	OpPublish       = "publishOutputs"
	OpDestroy       = "destroy"
)

// Call is one recorded bridge operation.
type Call struct {
	Op    string  `json:"op"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

func (c Call) String() string {
	switch c.Op {
	case OpSetValue:
		return fmt.Sprintf("%s %s=%s", c.Op, c.Name, formatFloat(c.Value))
	case OpGetValue:
		return fmt.Sprintf("%s %s -> %s", c.Op, c.Name, formatFloat(c.Value))
	default:
		return c.Op
	}
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%g", v)
}

// RecordingEngine records every bridge call in order.
//
// With a nil Inner it behaves as a plain exchange map: values set are read
// back unchanged, unknown names read as NaN and the pipeline steps do
// nothing. Preset seeds values into every handle it creates, which stands
// in for results the engine reports on its own.
//
// Thread-safety: safe for concurrent use via internal mutex.
type RecordingEngine struct {
	Inner bridge.Engine

	// ComputeErr, when set, is returned by every Compute call.
	ComputeErr error

	mu     sync.Mutex
	calls  []Call
	preset map[string]float64
}

// NewRecordingEngine wraps inner, which may be nil.
func NewRecordingEngine(inner bridge.Engine) *RecordingEngine {
	return &RecordingEngine{Inner: inner, preset: make(map[string]float64)}
}

// Preset sets a value every new handle starts with.
func (e *RecordingEngine) Preset(name string, v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.preset == nil {
		e.preset = make(map[string]float64)
	}
	e.preset[name] = v
}

// Create implements bridge.Engine.
func (e *RecordingEngine) Create() bridge.Handle {
	e.record(Call{Op: OpCreate})

	e.mu.Lock()
	preset := make(map[string]float64, len(e.preset))
	for k, v := range e.preset {
		preset[k] = v
	}
	e.mu.Unlock()

	h := &recordingHandle{engine: e}
	if e.Inner != nil {
		h.inner = e.Inner.Create()
		for k, v := range preset {
			h.inner.SetValue(k, v)
		}
	} else {
		h.values = preset
	}
	return h
}

// Version implements bridge.Engine.
func (e *RecordingEngine) Version() string {
	if e.Inner != nil {
		return e.Inner.Version()
	}
	return "recording"
}

func (e *RecordingEngine) record(c Call) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, c)
}

// Calls returns a copy of every recorded call.
func (e *RecordingEngine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Call, len(e.calls))
	copy(out, e.calls)
	return out
}

// Ops returns the recorded operation names, optionally restricted to ops.
func (e *RecordingEngine) Ops(only ...string) []string {
	var out []string
	for _, c := range e.Calls() {
		if len(only) > 0 && !contains(only, c.Op) {
			continue
		}
		out = append(out, c.Op)
	}
	return out
}

// PipelineOps returns only the four pipeline steps in call order.
func (e *RecordingEngine) PipelineOps() []string {
	return e.Ops(OpCommitInputs, OpApplyDefaults, OpCompute, OpPublish)
}

// Trace renders the calls one per line for golden comparison.
func (e *RecordingEngine) Trace() string {
	var b strings.Builder
	for _, c := range e.Calls() {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Reset forgets recorded calls. Presets are kept.
func (e *RecordingEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type recordingHandle struct {
	engine *RecordingEngine
	inner  bridge.Handle
	values map[string]float64
}

func (h *recordingHandle) SetValue(name string, v float64) {
	h.engine.record(Call{Op: OpSetValue, Name: name, Value: v})
	if h.inner != nil {
		h.inner.SetValue(name, v)
		return
	}
	h.values[name] = v
}

func (h *recordingHandle) GetValue(name string) float64 {
	var v float64
	if h.inner != nil {
		v = h.inner.GetValue(name)
	} else if got, ok := h.values[name]; ok {
		v = got
	} else {
		v = math.NaN()
	}
	h.engine.record(Call{Op: OpGetValue, Name: name, Value: v})
	return v
}

func (h *recordingHandle) CommitInputs() {
	h.engine.record(Call{Op: OpCommitInputs})
	if h.inner != nil {
		h.inner.CommitInputs()
	}
}

func (h *recordingHandle) ApplyConditionalDefaults() {
	h.engine.record(Call{Op: OpApplyDefaults})
	if h.inner != nil {
		h.inner.ApplyConditionalDefaults()
	}
}

func (h *recordingHandle) Compute() error {
	h.engine.record(Call{Op: OpCompute})
	h.engine.mu.Lock()
	err := h.engine.ComputeErr
	h.engine.mu.Unlock()
	if err != nil {
		return err
	}
	if h.inner != nil {
		return h.inner.Compute()
	}
	return nil
}

func (h *recordingHandle) PublishOutputs() {
	h.engine.record(Call{Op: OpPublish})
	if h.inner != nil {
		h.inner.PublishOutputs()
	}
}

func (h *recordingHandle) Destroy() {
	h.engine.record(Call{Op: OpDestroy})
	if h.inner != nil {
		h.inner.Destroy()
	}
}
