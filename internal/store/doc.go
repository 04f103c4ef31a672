// Package store provides SQLite-backed run history.
//
// Each solve is one row in the runs table, keyed by a UUIDv7 run id and
// ordered by a logical seq counter, never by wall time. Inputs and outputs
// are stored as raw exchange values so a run can be re-executed against a
// fresh engine and compared bit for bit (see Replay).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single connection: SQLite allows one writer
//
// Exchange maps are serialized with ir.MarshalCanonical, and inputs_hash is
// ir.InputsHash over the same map.
package store
