package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gupt/internal/pasta"
)

// Operation constants for flow steps.
const (
	OpRegister = "register"
	OpEntangle = "entangle"
	OpMeasure  = "measure"
	OpTick     = "tick"
)

// Outcome constants for completions and expect clauses.
// A measure step's outcome is the collapsed noodle state instead.
const (
	OutcomeAccepted       = "accepted"
	OutcomeRejected       = "rejected"
	OutcomeVortex         = "vortex"
	OutcomeCrisisOverload = "crisis_overload"
	OutcomeOK             = "ok"
)

// Sauce kind constants for noodle specs.
const (
	SauceMarinara = "marinara"
	SauceAlfredo  = "alfredo"
	SaucePesto    = "pesto"
	SauceVoid     = "void"
)

// Assertion type constants.
const (
	AssertEventContains = "event_contains"
	AssertEventCount    = "event_count"
	AssertEventOrder    = "event_order"
	AssertFinalState    = "final_state"
	AssertNoodleState   = "noodle_state"
)

// Scenario defines a pasta simulation test scenario.
// Scenarios validate engine behavior by executing a flow of operations
// and asserting on the resulting trace and final state.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunToken is an optional fixed run token for deterministic tests.
	// If empty, the harness generates a random one; scenarios meant for
	// golden file comparison should specify an explicit token.
	RunToken string `yaml:"run_token,omitempty"`

	// Setup lists noodles to register before the main flow.
	// Setup registrations must be accepted; a rejected setup noodle is
	// a scenario authoring error.
	Setup []NoodleSpec `yaml:"setup,omitempty"`

	// Flow contains the main test flow - operations with expected
	// outcomes.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final trace and state.
	Assertions []Assertion `yaml:"assertions"`
}

// NoodleSpec describes a noodle to construct and register.
type NoodleSpec struct {
	// Name is the registry identifier.
	Name string `yaml:"name"`

	// Wobble is the wobble factor. YAML .nan is accepted, to exercise
	// the rejection path.
	Wobble float64 `yaml:"wobble"`

	// Coefficient is the al dente coefficient.
	Coefficient uint64 `yaml:"coefficient"`

	// Crisis sets the existential crisis flag.
	Crisis bool `yaml:"crisis,omitempty"`

	// Sauces is the ordered sauce entanglement.
	Sauces []SauceSpec `yaml:"sauces,omitempty"`
}

// SauceSpec describes one sauce particle. Exactly the payload field
// matching Kind is meaningful; the others are ignored.
type SauceSpec struct {
	Kind          string  `yaml:"kind"`
	Spiciness     float64 `yaml:"spiciness,omitempty"`
	Creaminess    uint32  `yaml:"creaminess,omitempty"`
	BasilQuotient int64   `yaml:"basil_quotient,omitempty"`
}

// Step represents a step in the main test flow.
// Each step invokes an engine operation and optionally validates the
// actual outcome against an expect clause.
type Step struct {
	// Op is the operation: register, entangle, measure or tick.
	Op string `yaml:"op"`

	// Noodle is the registration payload (register only).
	Noodle *NoodleSpec `yaml:"noodle,omitempty"`

	// Name is the noodle to measure (measure only).
	Name string `yaml:"name,omitempty"`

	// Source and Target name the entanglement operands (entangle only).
	// Target is the operand whose coefficient is overwritten.
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, the outcome is recorded in the trace but not validated.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected completion of a step.
type ExpectClause struct {
	// Outcome is the expected outcome string. For measure steps it is
	// the expected noodle state.
	Outcome string `yaml:"outcome"`

	// Momentum is the expected angular meatball momentum of a vortex
	// (entangle only).
	Momentum *float64 `yaml:"momentum,omitempty"`

	// Events is the expected number of emitted events (tick only).
	Events *int `yaml:"events,omitempty"`
}

// Assertion validates the trace or the engine's final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Event is the event kind (event_contains, event_count).
	Event string `yaml:"event,omitempty"`

	// Noodle optionally narrows event assertions to one identifier.
	Noodle string `yaml:"noodle,omitempty"`

	// Count is the expected number of occurrences (event_count).
	Count int `yaml:"count,omitempty"`

	// Events is the expected kind order (event_order). Matched as a
	// subsequence of the emissions.
	Events []string `yaml:"events,omitempty"`

	// Field names the engine scalar to check (final_state):
	// meatball_count, noodle_count or sauce_field_strength.
	Field string `yaml:"field,omitempty"`

	// Equals is the expected value (final_state).
	Equals interface{} `yaml:"equals,omitempty"`

	// Name identifies the noodle to check (noodle_state).
	Name string `yaml:"name,omitempty"`

	// State is the expected measured state (noodle_state, optional).
	State string `yaml:"state,omitempty"`

	// Coefficient is the expected coefficient (noodle_state, optional).
	Coefficient *uint64 `yaml:"coefficient,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "assertion:" vs "assertions:").
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, spec := range s.Setup {
		if err := validateNoodleSpec(&spec); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateNoodleSpec checks a registration payload.
func validateNoodleSpec(spec *NoodleSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("name is required")
	}
	for i, sauce := range spec.Sauces {
		switch sauce.Kind {
		case SauceMarinara, SauceAlfredo, SaucePesto, SauceVoid:
		case "":
			return fmt.Errorf("sauces[%d]: kind is required", i)
		default:
			return fmt.Errorf("sauces[%d]: unknown sauce kind %q", i, sauce.Kind)
		}
	}
	return nil
}

// validateStep validates a single flow step based on its operation.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpRegister:
		if step.Noodle == nil {
			return fmt.Errorf("flow[%d]: noodle is required for register", index)
		}
		if err := validateNoodleSpec(step.Noodle); err != nil {
			return fmt.Errorf("flow[%d].noodle: %w", index, err)
		}
		if step.Expect != nil {
			if err := validateOutcome(step.Expect.Outcome, OutcomeAccepted, OutcomeRejected); err != nil {
				return fmt.Errorf("flow[%d].expect: %w", index, err)
			}
		}
	case OpEntangle:
		if step.Source == "" || step.Target == "" {
			return fmt.Errorf("flow[%d]: source and target are required for entangle", index)
		}
		if step.Expect != nil {
			if err := validateOutcome(step.Expect.Outcome, OutcomeVortex, OutcomeCrisisOverload); err != nil {
				return fmt.Errorf("flow[%d].expect: %w", index, err)
			}
		}
	case OpMeasure:
		if step.Name == "" {
			return fmt.Errorf("flow[%d]: name is required for measure", index)
		}
		if step.Expect != nil {
			states := []string{
				string(pasta.StatePerfectlyAlDente),
				string(pasta.StateOvercooked),
				string(pasta.StateFrozenBurning),
			}
			if err := validateOutcome(step.Expect.Outcome, states...); err != nil {
				return fmt.Errorf("flow[%d].expect: %w", index, err)
			}
		}
	case OpTick:
		if step.Expect != nil {
			if err := validateOutcome(step.Expect.Outcome, OutcomeOK); err != nil {
				return fmt.Errorf("flow[%d].expect: %w", index, err)
			}
		}
	case "":
		return fmt.Errorf("flow[%d]: op is required", index)
	default:
		return fmt.Errorf("flow[%d]: unknown op %q", index, step.Op)
	}
	return nil
}

// validateOutcome checks an expect outcome against the allowed set.
func validateOutcome(outcome string, allowed ...string) error {
	if outcome == "" {
		return fmt.Errorf("outcome is required")
	}
	for _, a := range allowed {
		if outcome == a {
			return nil
		}
	}
	return fmt.Errorf("outcome %q is not valid here (allowed: %v)", outcome, allowed)
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertEventContains:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for event_contains", index)
		}
	case AssertEventCount:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for event_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", index)
		}
	case AssertEventOrder:
		if len(a.Events) == 0 {
			return fmt.Errorf("assertions[%d]: events list is required for event_order", index)
		}
	case AssertFinalState:
		switch a.Field {
		case "meatball_count", "noodle_count", "sauce_field_strength":
		case "":
			return fmt.Errorf("assertions[%d]: field is required for final_state", index)
		default:
			return fmt.Errorf("assertions[%d]: unknown final_state field %q", index, a.Field)
		}
		if a.Equals == nil {
			return fmt.Errorf("assertions[%d]: equals is required for final_state", index)
		}
	case AssertNoodleState:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for noodle_state", index)
		}
		if a.State == "" && a.Coefficient == nil {
			return fmt.Errorf("assertions[%d]: state or coefficient is required for noodle_state", index)
		}
		if a.State != "" {
			switch pasta.NoodleState(a.State) {
			case pasta.StatePerfectlyAlDente, pasta.StateOvercooked, pasta.StateFrozenBurning:
			default:
				return fmt.Errorf("assertions[%d]: unknown noodle state %q", index, a.State)
			}
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
