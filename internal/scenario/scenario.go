// Package scenario loads and executes scripted harness flows: ordered
// sequences of command calls and probes with expected outcomes, reduced to
// a single aggregate verdict.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied to call steps when the document omits them.
const (
	DefaultExpectStatus = "pass"
	DefaultTimeoutMS    = 30_000
)

// StepKind discriminates the two step variants.
type StepKind int

const (
	StepCall StepKind = iota
	StepProbe
)

// Step is a tagged variant: exactly one of Call or Probe is set, matching
// Kind. The loader rejects documents where the discriminating fields are
// ambiguous.
type Step struct {
	Kind  StepKind
	Call  *CallStep
	Probe *ProbeStep
}

// CallStep invokes a registered command and checks its status.
type CallStep struct {
	Call string
	Args map[string]any
	// ExpectStatus is the lowercase status name the step's result is
	// compared against. Defaults to "pass".
	ExpectStatus string
	// TimeoutMS is parsed and carried but not enforced against wall-clock
	// duration.
	TimeoutMS int64
}

// ProbeStep runs a named capability probe.
type ProbeStep struct {
	Probe string
}

// Scenario is an ordered list of steps executed as a unit.
type Scenario struct {
	Name  string
	Steps []Step
}

// rawStep mirrors the document shape before the tagged union is built.
type rawStep struct {
	Call         *string        `yaml:"call"`
	Args         map[string]any `yaml:"args"`
	ExpectStatus *string        `yaml:"expect_status"`
	TimeoutMS    *int64         `yaml:"timeout_ms"`
	Probe        *string        `yaml:"probe"`
}

type rawScenario struct {
	Name  string    `yaml:"name"`
	Steps []rawStep `yaml:"steps"`
}

// Load parses a scenario from YAML. The document is validated against the
// embedded schema, decoded with strict field checking, and each step is
// resolved to its tagged variant. A step with neither or both of call/probe
// is a load-time error.
func Load(data []byte) (*Scenario, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var raw rawScenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if raw.Steps == nil {
		return nil, fmt.Errorf("invalid scenario: steps is required")
	}

	steps := make([]Step, 0, len(raw.Steps))
	for i, rs := range raw.Steps {
		step, err := resolveStep(i, rs)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return &Scenario{Name: raw.Name, Steps: steps}, nil
}

// LoadFile reads and parses a scenario YAML file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Load(data)
}

func resolveStep(index int, rs rawStep) (Step, error) {
	switch {
	case rs.Call != nil && rs.Probe != nil:
		return Step{}, fmt.Errorf("steps[%d]: step must have exactly one of 'call' or 'probe' (both present)", index)
	case rs.Call == nil && rs.Probe == nil:
		return Step{}, fmt.Errorf("steps[%d]: step must have exactly one of 'call' or 'probe' (neither present)", index)
	case rs.Probe != nil:
		if rs.Args != nil || rs.ExpectStatus != nil || rs.TimeoutMS != nil {
			return Step{}, fmt.Errorf("steps[%d]: probe step accepts no fields besides 'probe'", index)
		}
		return Step{Kind: StepProbe, Probe: &ProbeStep{Probe: *rs.Probe}}, nil
	default:
		call := CallStep{
			Call:         *rs.Call,
			Args:         rs.Args,
			ExpectStatus: DefaultExpectStatus,
			TimeoutMS:    DefaultTimeoutMS,
		}
		if call.Args == nil {
			call.Args = map[string]any{}
		}
		if rs.ExpectStatus != nil {
			call.ExpectStatus = *rs.ExpectStatus
		}
		if rs.TimeoutMS != nil {
			call.TimeoutMS = *rs.TimeoutMS
		}
		return Step{Kind: StepCall, Call: &call}, nil
	}
}
