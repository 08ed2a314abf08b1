package harness

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"github.com/lmittmann/tint"

	"github.com/roach88/gupt/internal/pasta"
)

// momentumEpsilon bounds float drift when comparing expected vortex
// momentum against the engine's product of wobbles.
const momentumEpsilon = 1e-9

// Options configures a harness run.
// The zero value selects a fresh clock, random run tokens, and the
// default tint logger.
type Options struct {
	// Logger receives step-level debug logs and expect/assertion
	// failures at warn level.
	Logger *slog.Logger

	// Clock stamps trace events. Defaults to a fresh Clock per run.
	Clock Sequencer

	// Tokens generates a run token when the scenario doesn't pin one.
	Tokens TokenGenerator
}

// Harness executes one scenario against one engine.
type Harness struct {
	engine *pasta.Engine
	clock  Sequencer
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh engine for isolation. Completions
// record the outcomes the engine actually produced; expect clauses are
// compared against them, and mismatches fail the result rather than
// aborting the run.
//
// The returned error covers execution problems only (a setup noodle
// refusing registration, an entangle operand that was never
// registered); expect and assertion failures land in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(scenario, Options{})
}

// RunWithOptions executes a scenario with explicit helpers.
func RunWithOptions(scenario *Scenario, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}
	if opts.Clock == nil {
		opts.Clock = NewClock()
	}
	if opts.Tokens == nil {
		opts.Tokens = RandomTokens{}
	}

	token := scenario.RunToken
	if token == "" {
		token = opts.Tokens.Generate()
	}

	h := &Harness{
		engine: pasta.NewEngine(),
		clock:  opts.Clock,
		logger: opts.Logger,
	}

	result := NewResult(token)

	if err := h.executeSetup(scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	if err := h.executeFlow(scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	result.State = h.captureState()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		h.logger.Warn("assertion failed", "scenario", scenario.Name, "error", errMsg)
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSetup registers all setup noodles.
//
// Setup registrations must be accepted; a rejected noodle here is a
// scenario authoring error, not a test outcome.
func (h *Harness) executeSetup(setup []NoodleSpec, result *Result) error {
	for i, spec := range setup {
		outcome, _ := h.register(&spec, result)
		if outcome != OutcomeAccepted {
			return fmt.Errorf("setup step %d: noodle %q refused registration", i, spec.Name)
		}
		h.logger.Debug("setup noodle registered", "step", i, "noodle", spec.Name)
	}
	return nil
}

// executeFlow runs all flow steps and validates expect clauses against
// the outcomes the engine actually produced.
func (h *Harness) executeFlow(flow []Step, result *Result) error {
	for i, step := range flow {
		var (
			outcome    string
			completion map[string]interface{}
			err        error
		)

		switch step.Op {
		case OpRegister:
			outcome, completion = h.register(step.Noodle, result)
		case OpEntangle:
			outcome, completion, err = h.entangle(&step, result)
		case OpMeasure:
			outcome, completion, err = h.measure(&step, result)
		case OpTick:
			outcome, completion = h.tick(result)
		default:
			// Unknown ops are rejected at load time; reaching this
			// means the scenario bypassed LoadScenario validation.
			err = fmt.Errorf("unknown op %q", step.Op)
		}
		if err != nil {
			return fmt.Errorf("flow step %d: %w", i, err)
		}

		h.checkExpect(i, &step, outcome, completion, result)

		h.logger.Debug("flow step completed",
			"step", i,
			"op", step.Op,
			"outcome", outcome,
		)
	}

	return nil
}

// register builds a noodle from its spec and registers it, tracing the
// invocation and actual outcome.
func (h *Harness) register(spec *NoodleSpec, result *Result) (string, map[string]interface{}) {
	result.addInvocation(OpRegister, specArgs(spec), h.clock.Next())

	outcome := OutcomeRejected
	if h.engine.Register(spec.Name, buildNoodle(spec)) {
		outcome = OutcomeAccepted
	}
	result.addCompletion(outcome, nil, h.clock.Next())
	return outcome, nil
}

// entangle looks up both operands and entangles source into target.
func (h *Harness) entangle(step *Step, result *Result) (string, map[string]interface{}, error) {
	source, ok := h.engine.Lookup(step.Source)
	if !ok {
		return "", nil, fmt.Errorf("entangle source %q is not registered", step.Source)
	}
	target, ok := h.engine.Lookup(step.Target)
	if !ok {
		return "", nil, fmt.Errorf("entangle target %q is not registered", step.Target)
	}

	result.addInvocation(OpEntangle, map[string]interface{}{
		"source": step.Source,
		"target": step.Target,
	}, h.clock.Next())

	vortex, err := source.Entangle(target)
	if err != nil {
		if !pasta.IsCrisisError(err) {
			// Entangle has exactly one failure path.
			return "", nil, fmt.Errorf("unexpected entangle failure: %w", err)
		}
		result.addCompletion(OutcomeCrisisOverload, nil, h.clock.Next())
		return OutcomeCrisisOverload, nil, nil
	}

	completion := map[string]interface{}{
		"angular_meatball_momentum": vortex.AngularMeatballMomentum,
	}
	result.addCompletion(OutcomeVortex, completion, h.clock.Next())
	return OutcomeVortex, completion, nil
}

// measure collapses one noodle's wavefunction; the outcome is the state.
func (h *Harness) measure(step *Step, result *Result) (string, map[string]interface{}, error) {
	noodle, ok := h.engine.Lookup(step.Name)
	if !ok {
		return "", nil, fmt.Errorf("measure target %q is not registered", step.Name)
	}

	result.addInvocation(OpMeasure, map[string]interface{}{
		"name": step.Name,
	}, h.clock.Next())

	outcome := string(noodle.Measure())
	result.addCompletion(outcome, nil, h.clock.Next())
	return outcome, nil, nil
}

// tick advances the simulation one step and traces every emission.
//
// The engine returns events in unspecified registry order; the harness
// commits to name order so traces are reproducible.
func (h *Harness) tick(result *Result) (string, map[string]interface{}) {
	result.addInvocation(OpTick, nil, h.clock.Next())

	events := h.engine.Tick()
	sort.Slice(events, func(i, j int) bool {
		return eventNoodle(events[i]) < eventNoodle(events[j])
	})
	for _, ev := range events {
		result.addEmission(ev, h.clock.Next())
	}

	completion := map[string]interface{}{"events": len(events)}
	result.addCompletion(OutcomeOK, completion, h.clock.Next())
	return OutcomeOK, completion
}

// checkExpect compares a step's expect clause against the actual
// outcome and completion. Mismatches fail the result.
func (h *Harness) checkExpect(index int, step *Step, outcome string, completion map[string]interface{}, result *Result) {
	if step.Expect == nil {
		return
	}

	if step.Expect.Outcome != outcome {
		result.AddError(fmt.Sprintf(
			"flow[%d] (%s): expected outcome %q, got %q",
			index, step.Op, step.Expect.Outcome, outcome,
		))
		return
	}

	if step.Expect.Momentum != nil {
		got, ok := completion["angular_meatball_momentum"].(float64)
		if !ok || math.Abs(got-*step.Expect.Momentum) > momentumEpsilon {
			result.AddError(fmt.Sprintf(
				"flow[%d] (%s): expected momentum %v, got %v",
				index, step.Op, *step.Expect.Momentum, completion["angular_meatball_momentum"],
			))
		}
	}

	if step.Expect.Events != nil {
		got, ok := completion["events"].(int)
		if !ok || got != *step.Expect.Events {
			result.AddError(fmt.Sprintf(
				"flow[%d] (%s): expected %d events, got %v",
				index, step.Op, *step.Expect.Events, completion["events"],
			))
		}
	}
}

// captureState snapshots the engine after the flow for final-state
// assertions and golden comparison.
func (h *Harness) captureState() map[string]interface{} {
	noodles := make(map[string]interface{})
	for _, name := range h.engine.Names() {
		noodle, _ := h.engine.Lookup(name)
		noodles[name] = map[string]interface{}{
			"coefficient": noodle.AlDenteCoefficient,
			"crisis":      noodle.ExistentialCrisis,
			"state":       string(noodle.Measure()),
		}
	}
	return map[string]interface{}{
		"meatball_count":       h.engine.MeatballCount(),
		"noodle_count":         h.engine.NoodleCount(),
		"noodles":              noodles,
		"sauce_field_strength": h.engine.SauceFieldStrength(),
	}
}

// buildNoodle converts a spec into an engine noodle.
func buildNoodle(spec *NoodleSpec) *pasta.Noodle {
	sauces := make([]pasta.Sauce, 0, len(spec.Sauces))
	for _, s := range spec.Sauces {
		switch s.Kind {
		case SauceMarinara:
			sauces = append(sauces, pasta.Marinara{Spiciness: s.Spiciness})
		case SauceAlfredo:
			sauces = append(sauces, pasta.Alfredo{Creaminess: s.Creaminess})
		case SaucePesto:
			sauces = append(sauces, pasta.Pesto{BasilQuotient: s.BasilQuotient})
		case SauceVoid:
			sauces = append(sauces, pasta.VoidSauce{})
		}
	}
	if len(sauces) == 0 {
		sauces = nil
	}
	return &pasta.Noodle{
		WobbleFactor:       spec.Wobble,
		SauceEntanglement:  sauces,
		AlDenteCoefficient: spec.Coefficient,
		ExistentialCrisis:  spec.Crisis,
	}
}

// specArgs renders a noodle spec as invocation args for the trace.
func specArgs(spec *NoodleSpec) map[string]interface{} {
	args := map[string]interface{}{
		"name":        spec.Name,
		"wobble":      spec.Wobble,
		"coefficient": spec.Coefficient,
		"crisis":      spec.Crisis,
	}
	if len(spec.Sauces) > 0 {
		sauces := make([]interface{}, len(spec.Sauces))
		for i, s := range spec.Sauces {
			sauce := map[string]interface{}{"kind": s.Kind}
			switch s.Kind {
			case SauceMarinara:
				sauce["spiciness"] = s.Spiciness
			case SauceAlfredo:
				sauce["creaminess"] = s.Creaminess
			case SaucePesto:
				sauce["basil_quotient"] = s.BasilQuotient
			}
			sauces[i] = sauce
		}
		args["sauces"] = sauces
	}
	return args
}

// defaultLogger builds the pack-standard tinted slog logger.
// Debug step logs are suppressed; only warnings surface.
func defaultLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: time.Kitchen,
	}))
}
