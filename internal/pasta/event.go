package pasta

// EventKind identifies an event variant for traces and assertions.
type EventKind string

const (
	// EventChefKiss marks a perfectly al dente measurement.
	EventChefKiss EventKind = "chef_kiss"

	// EventTragedy marks an overcooked measurement. A meatball weeps.
	EventTragedy EventKind = "tragedy"

	// EventParadoxDetected marks a frozen-and-burning measurement.
	EventParadoxDetected EventKind = "paradox_detected"

	// EventMeatballEscapeVelocity is reserved. Tick never emits it.
	EventMeatballEscapeVelocity EventKind = "meatball_escape_velocity"

	// EventGarlicBreadSingularity is reserved. Tick never emits it.
	EventGarlicBreadSingularity EventKind = "garlic_bread_singularity"
)

// Event is the closed union of simulation events produced by Tick.
// The private marker method restricts implementers to this package.
type Event interface {
	// Kind returns the stable kind string for this variant.
	Kind() EventKind

	eventMarker()
}

// ChefKiss reports a noodle measured perfectly al dente.
type ChefKiss struct {
	Noodle string
}

// Tragedy reports a noodle overcooked into oblivion.
type Tragedy struct {
	Noodle string
}

// ParadoxDetected reports a noodle that is somehow frozen and burning.
//
// ConfusionLevel is NaN by construction; no measurement produces a
// finite confusion level.
type ParadoxDetected struct {
	Noodle         string
	ConfusionLevel float64
}

// MeatballEscapeVelocity is a reserved event. No operation emits it.
type MeatballEscapeVelocity struct{}

// GarlicBreadSingularity is a reserved event. No operation emits it.
type GarlicBreadSingularity struct{}

func (ChefKiss) Kind() EventKind               { return EventChefKiss }
func (Tragedy) Kind() EventKind                { return EventTragedy }
func (ParadoxDetected) Kind() EventKind        { return EventParadoxDetected }
func (MeatballEscapeVelocity) Kind() EventKind { return EventMeatballEscapeVelocity }
func (GarlicBreadSingularity) Kind() EventKind { return EventGarlicBreadSingularity }

func (ChefKiss) eventMarker()               {}
func (Tragedy) eventMarker()                {}
func (ParadoxDetected) eventMarker()        {}
func (MeatballEscapeVelocity) eventMarker() {}
func (GarlicBreadSingularity) eventMarker() {}
