package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Property pairs a human-readable testable property with the scenario
// file that validates it.
type Property struct {
	// Description states the property in plain language.
	Description string `yaml:"description"`

	// Scenario is the scenario file path, resolved relative to the
	// directory passed to ValidateProperties.
	Scenario string `yaml:"scenario"`
}

// ScenarioNotFoundError is returned when a property references a
// scenario file that doesn't exist.
type ScenarioNotFoundError struct {
	Property     string
	ScenarioPath string
	ResolvedPath string
}

// Error implements the error interface.
func (e *ScenarioNotFoundError) Error() string {
	return fmt.Sprintf(
		"property %q references scenario file %q which does not exist (resolved to: %s)",
		e.Property,
		e.ScenarioPath,
		e.ResolvedPath,
	)
}

// PropertyFailure represents a failed property validation.
type PropertyFailure struct {
	Property     string `json:"property"`
	ScenarioPath string `json:"scenario_path"`
	Error        string `json:"error"`
}

// ValidationResult summarizes a batch property validation.
type ValidationResult struct {
	TotalProperties int               `json:"total_properties"`
	Passed          int               `json:"passed"`
	Failed          int               `json:"failed"`
	Failures        []PropertyFailure `json:"failures,omitempty"`
}

// LoadProperties reads a YAML file containing a list of properties.
func LoadProperties(path string) ([]Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file: %w", err)
	}

	var properties []Property
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&properties); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, p := range properties {
		if p.Description == "" {
			return nil, fmt.Errorf("properties[%d]: description is required", i)
		}
		if p.Scenario == "" {
			return nil, fmt.Errorf("properties[%d]: scenario is required", i)
		}
	}

	return properties, nil
}

// ValidateProperties runs every property's scenario and summarizes the
// results. Scenario paths resolve relative to baseDir.
//
// A property fails when its scenario fails to load, fails to execute,
// or executes with a non-passing result; individual failures don't
// abort the batch.
func ValidateProperties(baseDir string, properties []Property) (*ValidationResult, error) {
	result := &ValidationResult{}

	for _, property := range properties {
		result.TotalProperties++

		scenarioPath := property.Scenario
		if !filepath.IsAbs(scenarioPath) {
			scenarioPath = filepath.Join(baseDir, scenarioPath)
		}

		if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
			result.Failed++
			result.Failures = append(result.Failures, PropertyFailure{
				Property:     property.Description,
				ScenarioPath: property.Scenario,
				Error: (&ScenarioNotFoundError{
					Property:     property.Description,
					ScenarioPath: property.Scenario,
					ResolvedPath: scenarioPath,
				}).Error(),
			})
			continue
		}

		scenario, err := LoadScenario(scenarioPath)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, PropertyFailure{
				Property:     property.Description,
				ScenarioPath: property.Scenario,
				Error:        err.Error(),
			})
			continue
		}

		run, err := Run(scenario)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, PropertyFailure{
				Property:     property.Description,
				ScenarioPath: property.Scenario,
				Error:        err.Error(),
			})
			continue
		}

		if !run.Pass {
			result.Failed++
			result.Failures = append(result.Failures, PropertyFailure{
				Property:     property.Description,
				ScenarioPath: property.Scenario,
				Error:        strings.Join(run.Errors, "; "),
			})
			continue
		}

		result.Passed++
	}

	return result, nil
}
