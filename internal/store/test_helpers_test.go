package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(id string, seq int64) Run {
	return Run{
		ID:            id,
		Seq:           seq,
		SchemaHash:    "test-hash",
		EngineVersion: "test-engine",
		Inputs:        map[string]float64{"turbR": 5, "substructure": 3},
		Outputs:       map[string]float64{"hubD": 3.25},
		Status:        StatusOK,
	}
}
