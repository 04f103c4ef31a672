package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows a future algorithm migration.
const (
	DomainSchema = "wobos/schema/v1"
	DomainInputs = "wobos/inputs/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SchemaHash computes the content hash of a loaded schema.
// Records are hashed in load order from their raw cells, so two processes
// loading the same source agree on the hash regardless of float formatting.
func SchemaHash(records []VariableRecord) (string, error) {
	rows := make([]any, len(records))
	for i, r := range records {
		kind := ""
		if r.Kind != nil {
			kind = r.Kind.String()
		}
		rows[i] = map[string]any{
			"direction":   string(r.Direction),
			"name":        r.Name,
			"description": r.Description,
			"unit":        r.Unit,
			"kind":        kind,
			"default":     r.RawDefault,
		}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"version": SchemaVersion,
		"records": rows,
	})
	if err != nil {
		return "", fmt.Errorf("SchemaHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSchema, canonical), nil
}

// InputsHash computes the content hash of a set of wire inputs.
// Numbers are hashed through FormatWire, which round-trips exactly.
func InputsHash(inputs map[string]float64) (string, error) {
	obj := make(map[string]any, len(inputs))
	for k, v := range inputs {
		obj[k] = FormatWire(v)
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("InputsHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainInputs, canonical), nil
}

// FormatWire renders a wire number with the shortest exact representation.
func FormatWire(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
