package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes YAML content to a temp file and returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_AllTestdataScenariosAreValid(t *testing.T) {
	entries, err := os.ReadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata/scenarios", entry.Name()))
			require.NoError(t, err)
			assert.NotEmpty(t, scenario.Name)
			assert.NotEmpty(t, scenario.Flow)
			assert.NotEmpty(t, scenario.Assertions)
		})
	}
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo_scenario
description: catches the classic assertion/assertions typo
flow:
  - op: tick
assertion:
  - type: event_count
    event: tragedy
    count: 0
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing name",
			yaml: `
description: a scenario with no name
flow:
  - op: tick
assertions:
  - type: event_count
    event: tragedy
    count: 0
`,
			wantErr: "name is required",
		},
		{
			name: "empty flow",
			yaml: `
name: no_flow
description: a scenario that does nothing
assertions:
  - type: event_count
    event: tragedy
    count: 0
`,
			wantErr: "flow list is required",
		},
		{
			name: "unknown op",
			yaml: `
name: bad_op
description: flambe is not an engine operation
flow:
  - op: flambe
assertions:
  - type: event_count
    event: tragedy
    count: 0
`,
			wantErr: `unknown op "flambe"`,
		},
		{
			name: "register without noodle",
			yaml: `
name: bad_register
description: register needs a payload
flow:
  - op: register
assertions:
  - type: event_count
    event: tragedy
    count: 0
`,
			wantErr: "noodle is required",
		},
		{
			name: "entangle without operands",
			yaml: `
name: bad_entangle
description: entangle needs both operands
flow:
  - op: entangle
    source: spaghetti
assertions:
  - type: event_count
    event: tragedy
    count: 0
`,
			wantErr: "source and target are required",
		},
		{
			name: "vortex outcome on register",
			yaml: `
name: bad_outcome
description: register cannot produce a vortex
flow:
  - op: register
    noodle:
      name: fusilli
      wobble: 1.0
      coefficient: 3
    expect:
      outcome: vortex
assertions:
  - type: event_count
    event: tragedy
    count: 0
`,
			wantErr: `outcome "vortex" is not valid here`,
		},
		{
			name: "unknown sauce kind",
			yaml: `
name: bad_sauce
description: ketchup is not a sauce
setup:
  - name: fusilli
    wobble: 1.0
    coefficient: 3
    sauces:
      - kind: ketchup
flow:
  - op: tick
assertions:
  - type: event_count
    event: tragedy
    count: 0
`,
			wantErr: `unknown sauce kind "ketchup"`,
		},
		{
			name: "unknown assertion type",
			yaml: `
name: bad_assertion
description: vibes are not an assertion type
flow:
  - op: tick
assertions:
  - type: vibes
`,
			wantErr: `unknown assertion type "vibes"`,
		},
		{
			name: "noodle_state without state or coefficient",
			yaml: `
name: empty_noodle_state
description: noodle_state must check something
flow:
  - op: tick
assertions:
  - type: noodle_state
    name: fusilli
`,
			wantErr: "state or coefficient is required",
		},
		{
			name: "unknown final_state field",
			yaml: `
name: bad_field
description: the engine has no fork_count
flow:
  - op: tick
assertions:
  - type: final_state
    field: fork_count
    equals: 0
`,
			wantErr: `unknown final_state field "fork_count"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_NaNWobbleParses(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t, `
name: nan_wobble
description: the YAML .nan literal parses to a real NaN wobble
flow:
  - op: register
    noodle:
      name: ghost
      wobble: .nan
      coefficient: 1
    expect:
      outcome: rejected
assertions:
  - type: final_state
    field: noodle_count
    equals: 0
`))
	require.NoError(t, err)
	require.Len(t, scenario.Flow, 1)
	assert.True(t, scenario.Flow[0].Noodle.Wobble != scenario.Flow[0].Noodle.Wobble, "wobble should be NaN")
}
