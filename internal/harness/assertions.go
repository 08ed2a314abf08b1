package harness

import (
	"fmt"
	"math"
	"strings"
)

// equalsEpsilon bounds float drift in final_state comparisons, where
// expected values come from decimal YAML literals.
const equalsEpsilon = 1e-9

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Emissions are labeled by trace seq so they line up with the
	// snapshot, not by their position in the trace.
	fmt.Fprintf(&buf, "\nEmissions:\n")
	for _, event := range e.Trace {
		if event.Type == TraceEmission {
			fmt.Fprintf(&buf, "  [seq %d] %s %s\n", event.Seq, event.Event, event.Noodle)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the result and
// returns the failure messages. An empty slice means all passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, assertion := range assertions {
		if err := evaluateAssertion(result, assertion); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

// evaluateAssertion dispatches on the assertion type.
func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertEventContains:
		return assertEventContains(result.Trace, a)
	case AssertEventCount:
		return assertEventCount(result.Trace, a)
	case AssertEventOrder:
		return assertEventOrder(result.Trace, a)
	case AssertFinalState:
		return assertFinalState(result.State, result.Trace, a)
	case AssertNoodleState:
		return assertNoodleState(result.State, result.Trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertEventContains checks that some emission matches the event kind
// (and, if given, the noodle identifier).
func assertEventContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if event.Type != TraceEmission || event.Event != a.Event {
			continue
		}
		if a.Noodle == "" || event.Noodle == a.Noodle {
			return nil
		}
	}

	expected := fmt.Sprintf("emission of %q", a.Event)
	if a.Noodle != "" {
		expected += fmt.Sprintf(" for noodle %q", a.Noodle)
	}
	return &AssertionError{
		Type:     AssertEventContains,
		Expected: expected,
		Actual:   "no matching emission in trace",
		Trace:    trace,
	}
}

// assertEventCount checks that the event kind appears exactly Count
// times among emissions (narrowed to one noodle if given).
func assertEventCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type != TraceEmission || event.Event != a.Event {
			continue
		}
		if a.Noodle == "" || event.Noodle == a.Noodle {
			count++
		}
	}

	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertEventCount,
		Expected: fmt.Sprintf("%d emissions of %q", a.Count, a.Event),
		Actual:   fmt.Sprintf("%d emissions", count),
		Trace:    trace,
	}
}

// assertEventOrder checks that the given event kinds appear as a
// subsequence of the emissions.
func assertEventOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, event := range trace {
		if next >= len(a.Events) {
			break
		}
		if event.Type == TraceEmission && event.Event == a.Events[next] {
			next++
		}
	}

	if next == len(a.Events) {
		return nil
	}
	return &AssertionError{
		Type:     AssertEventOrder,
		Expected: fmt.Sprintf("emissions in order %v", a.Events),
		Actual:   fmt.Sprintf("order broke at position %d (%q not found after predecessors)", next, a.Events[next]),
		Trace:    trace,
	}
}

// assertFinalState checks one engine scalar against the expected value.
func assertFinalState(state map[string]interface{}, trace []TraceEvent, a Assertion) error {
	got, ok := state[a.Field]
	if !ok {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("state field %q", a.Field),
			Actual:   "field not captured",
			Trace:    trace,
		}
	}

	if valuesEqual(a.Equals, got) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalState,
		Expected: fmt.Sprintf("%s == %v", a.Field, a.Equals),
		Actual:   fmt.Sprintf("%v", got),
		Trace:    trace,
	}
}

// assertNoodleState checks a registered noodle's coefficient and
// measured state in the final snapshot.
func assertNoodleState(state map[string]interface{}, trace []TraceEvent, a Assertion) error {
	noodles, _ := state["noodles"].(map[string]interface{})
	entry, ok := noodles[a.Name].(map[string]interface{})
	if !ok {
		return &AssertionError{
			Type:     AssertNoodleState,
			Expected: fmt.Sprintf("noodle %q in final state", a.Name),
			Actual:   "not registered",
			Trace:    trace,
		}
	}

	if a.State != "" && entry["state"] != a.State {
		return &AssertionError{
			Type:     AssertNoodleState,
			Expected: fmt.Sprintf("noodle %q in state %q", a.Name, a.State),
			Actual:   fmt.Sprintf("%v", entry["state"]),
			Trace:    trace,
		}
	}

	if a.Coefficient != nil {
		got, _ := entry["coefficient"].(uint64)
		if got != *a.Coefficient {
			return &AssertionError{
				Type:     AssertNoodleState,
				Expected: fmt.Sprintf("noodle %q with coefficient %d", a.Name, *a.Coefficient),
				Actual:   fmt.Sprintf("coefficient %d", got),
				Trace:    trace,
			}
		}
	}

	return nil
}

// valuesEqual compares an expected YAML value against a captured state
// value. Numeric values compare within equalsEpsilon regardless of
// concrete type; everything else compares directly.
func valuesEqual(expected, got interface{}) bool {
	ef, eok := toFloat(expected)
	gf, gok := toFloat(got)
	if eok && gok {
		return math.Abs(ef-gf) <= equalsEpsilon
	}
	return expected == got
}

// toFloat widens any numeric type YAML or the engine produces.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
