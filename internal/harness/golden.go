package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir holds golden traces, relative to the test's package directory.
const GoldenDir = "testdata/scenarios/golden"

// RunWithGolden runs s and compares its call trace with
// testdata/scenarios/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) *Result {
	t.Helper()
	result, err := Run(context.Background(), s)
	if err != nil {
		t.Fatalf("scenario %s: %v", s.Name, err)
	}
	AssertGolden(t, s.Name, result)
	return result
}

// AssertGolden compares result's trace with the golden file for name.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(result.Trace()))
}

// Errors returned by CheckGolden.
var (
	ErrGoldenMismatch = errors.New("golden trace mismatch")
	ErrNoGolden       = errors.New("no golden trace")
)

// CheckGolden compares result's trace with <dir>/<name>.golden outside of
// tests. With update set the file is (re)written instead.
func CheckGolden(dir string, result *Result, update bool) error {
	path := filepath.Join(dir, result.Name+".golden")
	actual := []byte(result.Trace())
	if update {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return os.WriteFile(path, actual, 0o644)
	}
	expected, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoGolden, path)
	}
	if err != nil {
		return fmt.Errorf("read golden %s: %w", path, err)
	}
	if !bytes.Equal(expected, actual) {
		return fmt.Errorf("%w: %s", ErrGoldenMismatch, path)
	}
	return nil
}
