// Package registry holds the authoritative table of variable records.
//
// A Registry is populated once from the schema loader and is read-only
// afterward. It may be shared across goroutines once Build returns; no
// concurrent mutation is supported.
//
//	records, _ := schema.Default()
//	reg, err := registry.Build(records)
//	rec, err := reg.Get("substructure")
//
// All yields records in load order, which analysis frameworks rely on when
// they build parameter lists positionally.
package registry
