package pasta

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_MeatballConservation(t *testing.T) {
	engine := NewEngine()

	assert.Equal(t, int64(42), engine.MeatballCount())
	assert.Equal(t, 9.81, engine.SauceFieldStrength())
	assert.Equal(t, 0, engine.NoodleCount())
}

func TestRegister_RejectsNaNWobble(t *testing.T) {
	engine := NewEngine()
	nan := &Noodle{WobbleFactor: math.NaN(), AlDenteCoefficient: 1}

	ok := engine.Register("noper", nan)

	// Rejected outright: no entry, no field growth.
	assert.False(t, ok)
	assert.Equal(t, 0, engine.NoodleCount())
	assert.Equal(t, 9.81, engine.SauceFieldStrength())
}

func TestRegister_GrowsSauceField(t *testing.T) {
	engine := NewEngine()
	names := []string{"spaghetti", "rigatoni", "orzo", "linguine", "fusilli"}

	for _, name := range names {
		ok := engine.Register(name, &Noodle{WobbleFactor: 1.0})
		require.True(t, ok)
	}

	want := 9.81 * math.Pow(1.001, float64(len(names)))
	assert.InEpsilon(t, want, engine.SauceFieldStrength(), 1e-12)
	assert.Equal(t, len(names), engine.NoodleCount())
}

func TestRegister_OverwriteKeepsOneEntry(t *testing.T) {
	engine := NewEngine()

	first := &Noodle{WobbleFactor: 1.0, AlDenteCoefficient: 1}
	second := &Noodle{WobbleFactor: 2.0, AlDenteCoefficient: 2}
	require.True(t, engine.Register("bucatini", first))
	require.True(t, engine.Register("bucatini", second))

	assert.Equal(t, 1, engine.NoodleCount())
	got, ok := engine.Lookup("bucatini")
	require.True(t, ok)
	assert.Same(t, second, got)

	// Overwrites still count as successful insertions for field growth.
	assert.InEpsilon(t, 9.81*1.001*1.001, engine.SauceFieldStrength(), 1e-12)
}

func TestRegister_SuperpositionNoodle(t *testing.T) {
	engine := NewEngine()
	assert.True(t, engine.Register("default", Superposition()))
}

func TestTick_TragedyDecrementsMeatballs(t *testing.T) {
	engine := NewEngine()
	// coefficient 4 mod 3 == 1: overcooked into oblivion.
	require.True(t, engine.Register("doomed", &Noodle{WobbleFactor: 1.0, AlDenteCoefficient: 4}))

	events := engine.Tick()

	require.Len(t, events, 1)
	tragedy, ok := events[0].(Tragedy)
	require.True(t, ok)
	assert.Equal(t, "doomed", tragedy.Noodle)
	assert.Equal(t, int64(41), engine.MeatballCount())

	// Exactly one decrement per tragedy per tick.
	engine.Tick()
	assert.Equal(t, int64(40), engine.MeatballCount())
}

func TestTick_OneEventPerNoodle(t *testing.T) {
	engine := NewEngine()
	require.True(t, engine.Register("rigatoni", &Noodle{WobbleFactor: 1.0, AlDenteCoefficient: 3}))
	require.True(t, engine.Register("linguine", &Noodle{WobbleFactor: 1.0, AlDenteCoefficient: 4}))
	require.True(t, engine.Register("orzo", &Noodle{WobbleFactor: 1.0, AlDenteCoefficient: 5}))

	events := engine.Tick()
	require.Len(t, events, 3)

	byKind := make(map[EventKind]Event)
	for _, ev := range events {
		byKind[ev.Kind()] = ev
	}

	kiss, ok := byKind[EventChefKiss].(ChefKiss)
	require.True(t, ok)
	assert.Equal(t, "rigatoni", kiss.Noodle)

	tragedy, ok := byKind[EventTragedy].(Tragedy)
	require.True(t, ok)
	assert.Equal(t, "linguine", tragedy.Noodle)

	paradox, ok := byKind[EventParadoxDetected].(ParadoxDetected)
	require.True(t, ok)
	assert.Equal(t, "orzo", paradox.Noodle)

	// Only the single tragedy touched the count.
	assert.Equal(t, int64(41), engine.MeatballCount())
}

func TestTick_ParadoxConfusionAlwaysNaN(t *testing.T) {
	engine := NewEngine()
	require.True(t, engine.Register("orzo", &Noodle{WobbleFactor: 1.0, AlDenteCoefficient: 2}))

	for i := 0; i < 5; i++ {
		events := engine.Tick()
		require.Len(t, events, 1)
		paradox, ok := events[0].(ParadoxDetected)
		require.True(t, ok)
		assert.True(t, math.IsNaN(paradox.ConfusionLevel))
	}
}

func TestTick_EmptyRegistry(t *testing.T) {
	engine := NewEngine()
	assert.Empty(t, engine.Tick())
	assert.Equal(t, int64(42), engine.MeatballCount())
}

func TestNames_Sorted(t *testing.T) {
	engine := NewEngine()
	for _, name := range []string{"ziti", "anelli", "orzo"} {
		require.True(t, engine.Register(name, &Noodle{WobbleFactor: 1.0}))
	}
	assert.Equal(t, []string{"anelli", "orzo", "ziti"}, engine.Names())
}
