// Package runner solves one case end to end.
//
// A solve opens a fresh session, writes every INPUT default, overlays the
// case inputs, runs the pipeline once and reads back the outputs. Each solve
// gets a UUIDv7 run id and a logical seq number and is handed to an optional
// Recorder, normally the SQLite run history.
//
// Execute re-runs a raw input exchange without defaults or coercion; it is
// the store.Executor used to replay recorded runs.
package runner
