package sampling

import (
	"testing"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestDownsampleUnderTargetIsIdentity(t *testing.T) {
	items := sequence(100)

	sampled, err := Downsample(items, 200)
	require.NoError(t, err)

	assert.Equal(t, items, sampled)
}

func TestDownsampleKeepsFirstAndLast(t *testing.T) {
	for _, n := range []int{11, 100, 999, 10000} {
		items := sequence(n)

		sampled, err := Downsample(items, 10)
		require.NoError(t, err)

		assert.Equal(t, 0, sampled[0])
		assert.Equal(t, n-1, sampled[len(sampled)-1])
		assert.LessOrEqual(t, len(sampled), 11)
	}
}

func TestDownsampleUniformStride(t *testing.T) {
	sampled, err := Downsample(sequence(100), 10)
	require.NoError(t, err)

	// stride = ceil(100/10) = 10
	want := []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 99}
	assert.Equal(t, want, sampled)
}

func TestDownsampleIsDeterministic(t *testing.T) {
	items := sequence(1234)

	a, err := Downsample(items, 57)
	require.NoError(t, err)
	b, err := Downsample(items, 57)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDownsampleDoesNotMutateInput(t *testing.T) {
	items := sequence(100)

	_, err := Downsample(items, 7)
	require.NoError(t, err)

	assert.Equal(t, sequence(100), items)
}

func TestDownsampleRejectsNonPositiveTarget(t *testing.T) {
	_, err := Downsample(sequence(10), 0)
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = Downsample(sequence(10), -5)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestPolicyApply(t *testing.T) {
	points := make([]core.Point, 5000)
	for i := range points {
		points[i] = core.NewPoint(float64(i), float64(i))
	}

	sampled, err := DefaultPolicy().Apply(points)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(sampled), DefaultMaxPoints+1)
	assert.Equal(t, points[0].ID, sampled[0].ID)
	assert.Equal(t, points[len(points)-1].ID, sampled[len(sampled)-1].ID)
}

func TestPolicyEnforcesHardCap(t *testing.T) {
	points := make([]core.Point, 150)
	for i := range points {
		points[i] = core.NewPoint(float64(i), float64(i))
	}

	// a target above the cap lets too many points through sampling
	policy := Policy{MaxPoints: 1000, Cap: 100}

	_, err := policy.Apply(points)
	assert.ErrorIs(t, err, core.ErrRenderBudget)
}
