package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace and final state for a
// scenario execution. All fields use canonical JSON serialization for
// deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string                 `json:"scenario_name"`
	RunToken     string                 `json:"run_token,omitempty"`
	Trace        []TraceEvent           `json:"trace"`
	State        map[string]interface{} `json:"state,omitempty"`
}

// toCanonicalMap converts a TraceSnapshot to a map for canonical JSON
// serialization. Built by hand so that omitted fields stay omitted and
// every value is a type MarshalCanonical understands.
func (s *TraceSnapshot) toCanonicalMap() map[string]interface{} {
	traceList := make([]interface{}, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]interface{}{
			"type": event.Type,
			"seq":  event.Seq,
		}
		if event.Op != "" {
			eventMap["op"] = event.Op
		}
		if event.Args != nil {
			eventMap["args"] = event.Args
		}
		if event.Event != "" {
			eventMap["event"] = event.Event
		}
		if event.Noodle != "" {
			eventMap["noodle"] = event.Noodle
		}
		if event.Confusion != nil {
			eventMap["confusion"] = *event.Confusion
		}
		if event.Outcome != "" {
			eventMap["outcome"] = event.Outcome
		}
		if event.Result != nil {
			eventMap["result"] = event.Result
		}
		traceList[i] = eventMap
	}

	result := map[string]interface{}{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
	}
	if s.RunToken != "" {
		result["run_token"] = s.RunToken
	}
	if s.State != nil {
		result["state"] = s.State
	}
	return result
}

// RunWithGolden executes a scenario and compares the trace against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Scenarios used with golden comparison should pin run_token; a random
// token would change the snapshot every run.
//
// Returns error if scenario execution or serialization fails. Trace
// mismatch is reported as a test failure via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result against a golden file.
// Useful when a scenario has already been run (for example to inspect
// Result.Errors first) and only the snapshot comparison remains.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		RunToken:     result.RunToken,
		Trace:        result.Trace,
		State:        result.State,
	}

	traceJSON, err := MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
