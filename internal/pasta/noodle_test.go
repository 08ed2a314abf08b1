package pasta

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperposition_ExistentialCrisis(t *testing.T) {
	noodle := Superposition()

	// All quantum noodles question their existence.
	assert.True(t, noodle.ExistentialCrisis)

	// The default wobble is weird but finite, so the noodle is
	// registerable.
	assert.False(t, math.IsNaN(noodle.WobbleFactor))
	assert.Equal(t, uint64(0xDEADBEEF_CAFEBABE), noodle.AlDenteCoefficient)

	require.Len(t, noodle.SauceEntanglement, 2)
	assert.Equal(t, VoidSauce{}, noodle.SauceEntanglement[0])
	marinara, ok := noodle.SauceEntanglement[1].(Marinara)
	require.True(t, ok)
	assert.True(t, math.IsInf(marinara.Spiciness, 1))
}

func TestEntangle_DoubleCrisisFails(t *testing.T) {
	a := Superposition()
	b := Superposition()

	vortex, err := a.Entangle(b)
	require.Error(t, err)
	assert.True(t, IsCrisisError(err))

	// No combination value and no mutation on failure.
	assert.Equal(t, Vortex{}, vortex)
	assert.Equal(t, uint64(0xDEADBEEF_CAFEBABE), a.AlDenteCoefficient)
	assert.Equal(t, uint64(0xDEADBEEF_CAFEBABE), b.AlDenteCoefficient)
}

func TestEntangle_Success(t *testing.T) {
	a := &Noodle{WobbleFactor: 2.0, AlDenteCoefficient: 5, ExistentialCrisis: true}
	b := &Noodle{WobbleFactor: 3.0, AlDenteCoefficient: 6}

	vortex, err := a.Entangle(b)
	require.NoError(t, err)

	assert.Equal(t, 6.0, vortex.AngularMeatballMomentum)
	assert.Equal(t, uint64(math.MaxUint64), vortex.NoodleCount)
	assert.True(t, vortex.IsSpinning)

	// The target's coefficient becomes the xor of the originals; the
	// receiver is untouched.
	assert.Equal(t, uint64(3), b.AlDenteCoefficient)
	assert.Equal(t, uint64(5), a.AlDenteCoefficient)
}

func TestEntangle_SingleCrisisSucceeds(t *testing.T) {
	// One crisis on either side is fine; only mutual crisis fails.
	calm := &Noodle{WobbleFactor: 1.5, AlDenteCoefficient: 8}
	anxious := &Noodle{WobbleFactor: 4.0, AlDenteCoefficient: 1, ExistentialCrisis: true}

	_, err := calm.Entangle(anxious)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), anxious.AlDenteCoefficient)
}

func TestMeasure_PartitionsCoefficients(t *testing.T) {
	tests := []struct {
		coefficient uint64
		want        NoodleState
	}{
		{0, StatePerfectlyAlDente},
		{1, StateOvercooked},
		{2, StateFrozenBurning},
		{3, StatePerfectlyAlDente},
		{4, StateOvercooked},
		{5, StateFrozenBurning},
		{299, StateFrozenBurning},
		{math.MaxUint64, StatePerfectlyAlDente}, // 2^64-1 is divisible by 3
	}

	for _, tt := range tests {
		n := &Noodle{AlDenteCoefficient: tt.coefficient}
		assert.Equal(t, tt.want, n.Measure(), "coefficient %d", tt.coefficient)
	}
}

func TestMeasure_Deterministic(t *testing.T) {
	n := Superposition()
	first := n.Measure()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, n.Measure())
	}
	// 0xDEADBEEF_CAFEBABE mod 3 == 0.
	assert.Equal(t, StatePerfectlyAlDente, first)
}
