package velvet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-velvet-noise/internal/testutil"
)

func TestRender_RangeAndGain(t *testing.T) {
	locs, err := NewOVN(441, RateCD, WithSeed(1))
	require.NoError(t, err)

	k, err := Render(locs, NewClassicChoice(WithSeed(2)), 1000, 5000, 0.5)
	require.NoError(t, err)

	// Cells 10 through 49 of 100 samples each.
	require.Len(t, k, 40)
	testutil.AssertIndicesInRange(t, k.Indices(), 1000, 5000)
	testutil.AssertStrictlyIncreasing(t, k.Indices())
	for _, tap := range k {
		assert.Equal(t, 0.5, math.Abs(tap.Gain))
	}
	require.NoError(t, k.Validate())
}

func TestRender_DrawsOneSignPerLocation(t *testing.T) {
	locs := &sliceStream{values: []int{1, 3, 5, 7, 9}}
	signs := &cycleSigns{pattern: []float64{1, -1, -1, 1, 1}}

	k, err := Render(locs, signs, 3, 8, 2)
	require.NoError(t, err)
	assert.Equal(t, Kernel{{Index: 3, Gain: -2}, {Index: 5, Gain: -2}, {Index: 7, Gain: 2}}, k)
}

func TestRender_EmptyRange(t *testing.T) {
	k, err := Render(&sliceStream{values: []int{10, 20}}, &cycleSigns{pattern: []float64{1}}, 0, 5, 1)
	require.NoError(t, err)
	assert.Empty(t, k)
}

func TestRender_Errors(t *testing.T) {
	signs := &cycleSigns{pattern: []float64{1}}

	_, err := Render(&sliceStream{values: []int{1, 4, 4}}, signs, 0, 100, 1)
	require.ErrorIs(t, err, ErrNotMonotonic)

	_, err = Render(&sliceStream{}, signs, 10, 5, 1)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Render(&sliceStream{}, signs, -1, 5, 1)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Render(&sliceStream{}, signs, 0, 5, math.Inf(1))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Render(nil, signs, 0, 5, 1)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConcat(t *testing.T) {
	a := Kernel{{Index: 1, Gain: 1}, {Index: 4, Gain: -1}}
	b := Kernel{{Index: 5, Gain: 0.5}}

	k, err := Concat(a, nil, b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 5}, k.Indices())
	assert.Equal(t, []float64{1, -1, 0.5}, k.Gains())

	_, err = Concat(b, a)
	require.ErrorIs(t, err, ErrNotMonotonic)

	_, err = Concat(Kernel{{Index: 3, Gain: 1}, {Index: 2, Gain: 1}})
	require.ErrorIs(t, err, ErrNotMonotonic)

	_, err = Concat(Kernel{{Index: 3, Gain: math.NaN()}})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestKernel_DenseAndBounds(t *testing.T) {
	k := Kernel{{Index: 0, Gain: 1}, {Index: 3, Gain: -0.5}}

	dense, err := k.Dense(5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, -0.5, 0}, dense)

	_, err = k.Dense(3)
	require.ErrorIs(t, err, ErrOutOfRange)

	require.NoError(t, k.CheckBounds(4))
	require.ErrorIs(t, k.CheckBounds(3), ErrOutOfRange)
	require.ErrorIs(t, Kernel{{Index: -1, Gain: 1}}.Validate(), ErrOutOfRange)
}
