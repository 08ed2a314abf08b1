// Package pasta implements the Grand Unified Pasta Theory (GUPT) engine:
// a registry of quantum noodles, a pure per-noodle measurement, and a
// per-tick event stream.
//
// # Model
//
// A Noodle is immutable once constructed and shared by pointer from the
// engine's registry. The single exception is Entangle, which overwrites
// the target operand's al dente coefficient through an explicit pointer.
// Because no other operation mutates a noodle, aliasing a registered
// noodle is safe.
//
// # Measurement
//
// Measure collapses a noodle into one of three states derived from
// coefficient mod 3:
//
//	0 → perfectly_al_dente
//	1 → overcooked_into_oblivion
//	2 → somehow_frozen_and_burning
//
// The three states partition every reachable coefficient. Any other
// remainder is an internal-invariant violation and panics.
//
// # Ticks
//
// Engine.Tick measures every registered noodle and emits exactly one
// event per noodle: a ChefKiss for al dente, a Tragedy for overcooked
// (decrementing the meatball count by one), or a ParadoxDetected for
// frozen-and-burning (carrying a confusion level that is always NaN).
// Registry iteration order is unspecified; callers that need a stable
// order must sort the returned events themselves.
//
// # Errors
//
// Exactly one operation can fail: Entangle returns a *PastaError with
// code CRISIS_OVERLOAD when both operands are in existential crisis.
// The remaining error codes are reserved and never produced.
// Registration failure (NaN wobble) is reported as a bare bool, not an
// error.
package pasta
