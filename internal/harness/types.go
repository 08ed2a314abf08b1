package harness

import (
	"github.com/roach88/gupt/internal/pasta"
)

// Trace event type constants.
const (
	TraceInvocation = "invocation"
	TraceEmission   = "emission"
	TraceCompletion = "completion"
)

// TraceEvent is one entry in a scenario's execution trace.
//
// Invocations record the operation and its arguments. Emissions record
// simulation events produced by a tick. Completions record the actual
// outcome the engine produced for the preceding invocation.
type TraceEvent struct {
	Type string `json:"type"` // "invocation", "emission" or "completion"

	// Invocation fields.
	Op   string                 `json:"op,omitempty"`
	Args map[string]interface{} `json:"args,omitempty"`

	// Emission fields.
	Event     string   `json:"event,omitempty"`
	Noodle    string   `json:"noodle,omitempty"`
	Confusion *float64 `json:"confusion,omitempty"`

	// Completion fields.
	Outcome string                 `json:"outcome,omitempty"`
	Result  map[string]interface{} `json:"result,omitempty"`

	Seq int64 `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// RunToken identifies this run in traces and snapshots.
	RunToken string `json:"run_token,omitempty"`

	// Trace contains all invocations, emissions and completions in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expect/assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State contains the engine's final state: meatball_count,
	// noodle_count, sauce_field_strength, and a per-noodle map.
	State map[string]interface{} `json:"state,omitempty"`
}

// NewResult creates a new passing result for the given run token.
func NewResult(token string) *Result {
	return &Result{
		Pass:     true,
		RunToken: token,
		Trace:    []TraceEvent{},
		Errors:   []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addInvocation appends an invocation to the trace.
func (r *Result) addInvocation(op string, args map[string]interface{}, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type: TraceInvocation,
		Op:   op,
		Args: args,
		Seq:  seq,
	})
}

// addEmission appends a simulation event to the trace.
func (r *Result) addEmission(ev pasta.Event, seq int64) {
	entry := TraceEvent{
		Type:   TraceEmission,
		Event:  string(ev.Kind()),
		Noodle: eventNoodle(ev),
		Seq:    seq,
	}
	if paradox, ok := ev.(pasta.ParadoxDetected); ok {
		confusion := paradox.ConfusionLevel
		entry.Confusion = &confusion
	}
	r.Trace = append(r.Trace, entry)
}

// addCompletion appends a completion to the trace.
func (r *Result) addCompletion(outcome string, result map[string]interface{}, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    TraceCompletion,
		Outcome: outcome,
		Result:  result,
		Seq:     seq,
	})
}

// eventNoodle extracts the identifier an event carries.
// The reserved kinds carry none and return "".
func eventNoodle(ev pasta.Event) string {
	switch e := ev.(type) {
	case pasta.ChefKiss:
		return e.Noodle
	case pasta.Tragedy:
		return e.Noodle
	case pasta.ParadoxDetected:
		return e.Noodle
	default:
		return ""
	}
}
