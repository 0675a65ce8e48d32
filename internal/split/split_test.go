package split

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item-%03d", i)
	}
	return out
}

func TestThree_Deterministic(t *testing.T) {
	t.Parallel()

	in := items(50)
	tr1, v1, te1, err := Three(in, DefaultRatios, 42)
	require.NoError(t, err)
	tr2, v2, te2, err := Three(in, DefaultRatios, 42)
	require.NoError(t, err)

	assert.Equal(t, tr1, tr2)
	assert.Equal(t, v1, v2)
	assert.Equal(t, te1, te2)

	// A different seed must be allowed to produce a different permutation.
	tr3, _, _, err := Three(in, DefaultRatios, 7)
	require.NoError(t, err)
	assert.NotEqual(t, tr1, tr3)
}

func TestThree_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := items(20)
	want := slices.Clone(in)
	_, _, _, err := Three(in, DefaultRatios, 42)
	require.NoError(t, err)
	assert.Equal(t, want, in)
}

func TestThree_CompleteAndDisjoint(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3, 5, 10, 17, 100} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			in := items(n)
			train, val, test, err := Three(in, DefaultRatios, 42)
			require.NoError(t, err)

			all := append(append(append([]string{}, train...), val...), test...)
			assert.Len(t, all, n)

			slices.Sort(all)
			assert.Equal(t, items(n), all, "union of splits must equal the input as a multiset")
		})
	}
}

func TestThree_Proportions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n                int
		train, val, test int
	}{
		{n: 10, train: 7, val: 2, test: 1},
		{n: 5, train: 3, val: 1, test: 1},
		{n: 3, train: 2, val: 0, test: 1},
		{n: 2, train: 1, val: 0, test: 1},
		// A single item lands in test: empty train/val is accepted for
		// tiny classes, not an error.
		{n: 1, train: 0, val: 0, test: 1},
		{n: 0, train: 0, val: 0, test: 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			t.Parallel()

			train, val, test, err := Three(items(tc.n), DefaultRatios, 42)
			require.NoError(t, err)
			assert.Len(t, train, tc.train)
			assert.Len(t, val, tc.val)
			assert.Len(t, test, tc.test)
		})
	}
}

func TestThree_InvalidRatios(t *testing.T) {
	t.Parallel()

	_, _, _, err := Three(items(10), [3]float64{0.5, 0.3, 0.3}, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRatios)
}

func TestValidateRatios(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRatios(DefaultRatios))
	assert.NoError(t, ValidateRatios([3]float64{0.8, 0.1, 0.1}))
	// Floating error well inside tolerance is fine.
	assert.NoError(t, ValidateRatios([3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}))
	assert.ErrorIs(t, ValidateRatios([3]float64{0.7, 0.2, 0.2}), ErrInvalidRatios)
}
