// Package enum holds the finite categorical domains known to the engine.
//
// A Domain is an ordered, dense set of labels; the label at position i has
// ordinal i. Domains are defined once at startup and never changed, so an
// ordinal stored anywhere (including results already computed) keeps a fixed
// meaning for the life of the process. A Registry is read-only after
// definition and may be shared across goroutines without locking.
package enum
