package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Schema is an optional tabular schema path, relative to the scenario
	// file. The embedded default schema is used when empty.
	Schema string `yaml:"schema,omitempty"`

	// Defaults writes every schema input default before the first step.
	Defaults bool `yaml:"defaults,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step is exactly one of set, run, expect or expect_error.
type Step struct {
	Set         map[string]any         `yaml:"set,omitempty"`
	Run         bool                   `yaml:"run,omitempty"`
	Expect      map[string]Expectation `yaml:"expect,omitempty"`
	ExpectError string                 `yaml:"expect_error,omitempty"`
}

// Kind names the step for messages.
func (s Step) Kind() string {
	switch {
	case s.Set != nil:
		return "set"
	case s.Run:
		return "run"
	case s.Expect != nil:
		return "expect"
	case s.ExpectError != "":
		return "expect_error"
	default:
		return "empty"
	}
}

func (s Step) count() int {
	n := 0
	if s.Set != nil {
		n++
	}
	if s.Run {
		n++
	}
	if s.Expect != nil {
		n++
	}
	if s.ExpectError != "" {
		n++
	}
	return n
}

// Expectation is an expected value, optionally with an absolute tolerance
// for numeric variables. It decodes from a bare scalar or from
// {value, tolerance}.
type Expectation struct {
	Value     any
	Tolerance float64
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Expectation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&e.Value)
	case yaml.MappingNode:
		var raw struct {
			Value     any     `yaml:"value"`
			Tolerance float64 `yaml:"tolerance"`
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch key := node.Content[i].Value; key {
			case "value", "tolerance":
			default:
				return fmt.Errorf("line %d: field %s not found in expectation", node.Content[i].Line, key)
			}
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		if raw.Value == nil {
			return fmt.Errorf("line %d: expectation needs a value", node.Line)
		}
		if raw.Tolerance < 0 {
			return fmt.Errorf("line %d: tolerance must be non-negative", node.Line)
		}
		e.Value, e.Tolerance = raw.Value, raw.Tolerance
		return nil
	default:
		return fmt.Errorf("line %d: expectation must be a scalar or a mapping", node.Line)
	}
}

// LoadScenario reads a scenario file. Unknown fields are rejected and a
// relative schema path is resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Schema != "" && !filepath.IsAbs(s.Schema) {
		s.Schema = filepath.Join(filepath.Dir(path), s.Schema)
	}
	return s, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// LoadDir loads every .yaml and .yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string)
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", p, s.Name, prev)
		}
		seen[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(s.Name, `/\ `) {
		return fmt.Errorf("name %q must not contain path separators or spaces", s.Name)
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		switch step.count() {
		case 0:
			return fmt.Errorf("steps[%d]: one of set, run, expect or expect_error is required", i)
		case 1:
		default:
			return fmt.Errorf("steps[%d]: exactly one of set, run, expect or expect_error is allowed", i)
		}
		if step.Expect != nil && len(step.Expect) == 0 {
			return fmt.Errorf("steps[%d]: expect must name at least one variable", i)
		}
		if step.ExpectError != "" && i == 0 {
			return fmt.Errorf("steps[%d]: expect_error must follow a set or run step", i)
		}
	}
	return nil
}
