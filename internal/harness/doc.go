// Package harness provides scenario testing for the GUPT pasta engine.
//
// The harness loads scenario definitions, executes registry operations
// against a fresh engine, records an ordered trace of invocations,
// emissions, and completions, and validates assertions against the
// trace and the engine's final state.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	run_token: fixed-token-for-golden-comparison
//	setup:
//	  - name: fusilli
//	    wobble: 2.5
//	    coefficient: 7
//	    crisis: false
//	flow:
//	  - op: tick
//	  - op: entangle
//	    source: fusilli
//	    target: orzo
//	    expect:
//	      outcome: vortex
//	      momentum: 6.0
//	assertions:
//	  - type: event_contains
//	    event: tragedy
//	    noodle: fusilli
//	  - type: final_state
//	    field: meatball_count
//	    equals: 41
//
// # Operations
//
// Flow steps support four operations:
//
//   - register: Registers the given noodle (outcome accepted/rejected)
//   - entangle: Entangles source into target (outcome vortex/crisis_overload)
//   - measure: Measures a noodle (outcome is the collapsed state)
//   - tick: Advances the simulation one step, emitting events
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - event_contains: Verifies an event kind appears among emissions
//   - event_count: Verifies an event kind appears exactly N times
//   - event_order: Verifies event kinds appear in the given order
//   - final_state: Verifies an engine scalar (meatball_count,
//     noodle_count, sauce_field_strength)
//   - noodle_state: Verifies a noodle's coefficient and measured state
//
// # Deterministic Testing
//
// The engine's tick iterates its registry in unspecified order, so the
// harness sorts each tick's emissions by noodle name before stamping
// them with sequence numbers. Together with a fixed run_token this
// makes traces identical across runs, enabling golden file comparison:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/tragedy_tick.yaml")
//	if err != nil {
//	    t.Fatal(err)
//	}
//	if err := harness.RunWithGolden(t, scenario); err != nil {
//	    t.Fatal(err)
//	}
//
// Golden snapshots use canonical JSON (sorted keys, NFC-normalized
// strings, fixed-precision floats, NaN rendered as the string "NaN").
package harness
