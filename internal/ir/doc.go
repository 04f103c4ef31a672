// Package ir provides the shared types of the wobos parameter bridge.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the vocabulary of the
// bridge (records, kinds, values) the foundational layer with no cycles.
//
// Key design constraints:
//   - Kind and Value are closed variants; only this package implements them
//   - Every number crossing the engine boundary is a float64
//   - Records are immutable after load and keep their load order
//   - Content hashes use RFC 8785 canonical JSON over the raw schema cells
package ir
