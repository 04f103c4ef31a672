package store

// Run statuses. They match the session's observer statuses.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Run is one recorded solve.
type Run struct {
	ID            string             `json:"id"`
	Seq           int64              `json:"seq"`
	SchemaHash    string             `json:"schema_hash"`
	EngineVersion string             `json:"engine_version"`
	InputsHash    string             `json:"inputs_hash"`
	Inputs        map[string]float64 `json:"inputs"`
	Outputs       map[string]float64 `json:"outputs"`
	Status        string             `json:"status"`
	Error         string             `json:"error,omitempty"`
}
