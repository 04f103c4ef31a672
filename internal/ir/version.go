package ir

// Version constants for the schema format and the bridge.
const (
	// SchemaVersion is the version of the tabular schema layout.
	SchemaVersion = "1"

	// BridgeVersion is the wobos bridge version recorded with each run.
	BridgeVersion = "0.1.0"
)
