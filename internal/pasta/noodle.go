package pasta

import "math"

// Noodle is a single strand of quantum spaghetti.
//
// A noodle is immutable after construction and safe to share by pointer.
// The one exception is Entangle, which overwrites the target operand's
// AlDenteCoefficient through an explicit exclusive pointer.
type Noodle struct {
	// WobbleFactor is the noodle's magnitude. NaN wobbles are rejected
	// at registration.
	WobbleFactor float64

	// SauceEntanglement is the ordered sequence of sauce particles
	// bound to this strand.
	SauceEntanglement []Sauce

	// AlDenteCoefficient drives measurement (coefficient mod 3).
	AlDenteCoefficient uint64

	// ExistentialCrisis blocks entanglement when set on both operands.
	ExistentialCrisis bool
}

// NoodleState is the closed set of measurement outcomes.
type NoodleState string

const (
	StatePerfectlyAlDente NoodleState = "perfectly_al_dente"
	StateOvercooked       NoodleState = "overcooked_into_oblivion"
	StateFrozenBurning    NoodleState = "somehow_frozen_and_burning"
)

// Vortex is the swirling combination value produced by a successful
// entanglement.
type Vortex struct {
	// AngularMeatballMomentum is the product of the operands' wobbles.
	AngularMeatballMomentum float64

	// NoodleCount is always the maximal sentinel. It's a lot of noodles.
	NoodleCount uint64

	// IsSpinning is always true.
	IsSpinning bool
}

// Superposition creates a default noodle that simultaneously exists and
// doesn't: infinite-spiciness marinara over void sauce, a fixed large
// coefficient, and an active existential crisis.
func Superposition() *Noodle {
	return &Noodle{
		WobbleFactor: 42.0 / math.Tan(math.Cos(math.Sin(0))),
		SauceEntanglement: []Sauce{
			VoidSauce{},
			Marinara{Spiciness: math.Inf(1)},
		},
		AlDenteCoefficient: 0xDEADBEEF_CAFEBABE,
		ExistentialCrisis:  true,
	}
}

// Entangle combines two noodles across spacetime.
//
// On success it returns a Vortex whose momentum is the product of both
// wobble factors, and overwrites other's coefficient with the xor of
// the two coefficients. The pointer parameter is the exclusive mutable
// reference: the receiver is never mutated.
//
// Fails with a CRISIS_OVERLOAD error when both operands are in
// existential crisis; in that case neither operand is mutated.
func (n *Noodle) Entangle(other *Noodle) (Vortex, error) {
	if n.ExistentialCrisis && other.ExistentialCrisis {
		return Vortex{}, NewCrisisError()
	}

	combined := n.WobbleFactor * other.WobbleFactor
	other.AlDenteCoefficient = n.AlDenteCoefficient ^ other.AlDenteCoefficient

	return Vortex{
		AngularMeatballMomentum: combined,
		NoodleCount:             math.MaxUint64,
		IsSpinning:              true,
	}, nil
}

// Measure collapses the noodle's wavefunction into one of the three
// states. Total and deterministic: the outcome depends only on the
// coefficient.
func (n *Noodle) Measure() NoodleState {
	switch n.AlDenteCoefficient % 3 {
	case 0:
		return StatePerfectlyAlDente
	case 1:
		return StateOvercooked
	case 2:
		return StateFrozenBurning
	}
	panic("pasta: math has ceased to function (coefficient mod 3 outside [0,3))")
}
