package pasta

import (
	"math"
	"sort"
)

const (
	// initialSauceFieldStrength is the gravity of the situation.
	initialSauceFieldStrength = 9.81

	// initialMeatballCount is the answer to everything.
	initialMeatballCount = 42

	// fieldGrowthFactor is applied per successful registration: each
	// noodle strengthens the sauce field.
	fieldGrowthFactor = 1.001
)

// Engine is the Grand Unified Pasta Theory simulation registry.
//
// It maps identifiers to shared noodles and owns the two scalars the
// simulation mutates: the sauce field strength (grows on registration)
// and the meatball count (shrinks on tragedy, and may go negative in
// antimatter kitchens).
//
// Engine is an explicit object with no hidden statics. It is not safe
// for concurrent use; the simulation is single-threaded by design.
type Engine struct {
	registry           map[string]*Noodle
	sauceFieldStrength float64
	meatballCount      int64
}

// NewEngine creates an empty engine with the canonical initial scalars.
func NewEngine() *Engine {
	return &Engine{
		registry:           make(map[string]*Noodle),
		sauceFieldStrength: initialSauceFieldStrength,
		meatballCount:      initialMeatballCount,
	}
}

// Register adds a noodle to the simulation under the given identifier,
// overwriting any previous noodle with the same identifier.
//
// Returns false without mutating anything if the noodle refuses to
// participate (NaN wobble factor). On success the sauce field strength
// grows by the fixed factor, keeping it monotonically non-decreasing
// across insertions.
func (e *Engine) Register(name string, n *Noodle) bool {
	if math.IsNaN(n.WobbleFactor) {
		return false
	}
	e.registry[name] = n
	e.sauceFieldStrength *= fieldGrowthFactor
	return true
}

// Tick simulates the entire pasta universe for one discrete step.
//
// Every registered noodle is measured and contributes exactly one event
// to the returned slice. Tragedies decrement the meatball count by one
// each; no other state changes. Iteration order over the registry is
// unspecified, so the order of returned events is unspecified too.
func (e *Engine) Tick() []Event {
	events := make([]Event, 0, len(e.registry))

	for name, noodle := range e.registry {
		switch noodle.Measure() {
		case StatePerfectlyAlDente:
			events = append(events, ChefKiss{Noodle: name})
		case StateOvercooked:
			e.meatballCount--
			events = append(events, Tragedy{Noodle: name})
		case StateFrozenBurning:
			events = append(events, ParadoxDetected{
				Noodle:         name,
				ConfusionLevel: math.NaN(),
			})
		}
	}

	return events
}

// Lookup returns the registered noodle for the identifier, if any.
func (e *Engine) Lookup(name string) (*Noodle, bool) {
	n, ok := e.registry[name]
	return n, ok
}

// Names returns the registered identifiers in sorted order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.registry))
	for name := range e.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NoodleCount returns the number of registered noodles.
func (e *Engine) NoodleCount() int {
	return len(e.registry)
}

// SauceFieldStrength returns the current sauce field strength.
func (e *Engine) SauceFieldStrength() float64 {
	return e.sauceFieldStrength
}

// MeatballCount returns the current meatball count.
func (e *Engine) MeatballCount() int64 {
	return e.meatballCount
}
