package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressForLevelBoundaries(t *testing.T) {
	cases := []struct {
		points    int
		level     int
		nextLevel int
		toNext    int
	}{
		{0, 1, 2, 20},
		{19, 1, 2, 1},
		{20, 2, 3, 25},
		{44, 2, 3, 1},
		{45, 3, 4, 30},
		{110, 5, 6, 40},
		{399, 9, 10, 1},
	}

	for _, tc := range cases {
		p := ProgressFor(tc.points)

		assert.Equal(t, tc.level, p.CurrentLevel, "points=%d", tc.points)
		require.NotNil(t, p.NextLevel, "points=%d", tc.points)
		assert.Equal(t, tc.nextLevel, *p.NextLevel, "points=%d", tc.points)
		assert.Equal(t, tc.toNext, p.PointsToNextLevel, "points=%d", tc.points)
	}
}

func TestProgressForTopLevel(t *testing.T) {
	for _, points := range []int{400, 401, 10000} {
		p := ProgressFor(points)

		assert.Equal(t, 10, p.CurrentLevel)
		assert.Nil(t, p.NextLevel)
		assert.Nil(t, p.NextLevelMinPoints)
		assert.Equal(t, 100, p.ProgressPercentage)
		assert.Equal(t, 0, p.PointsToNextLevel)
	}
}

func TestProgressForPercentage(t *testing.T) {
	// Level 1 spans 0..20, so 10 points is exactly halfway.
	p := ProgressFor(10)
	assert.Equal(t, 50, p.ProgressPercentage)

	// Integer arithmetic truncates, never rounds up.
	p = ProgressFor(19)
	assert.Equal(t, 95, p.ProgressPercentage)

	p = ProgressFor(0)
	assert.Equal(t, 0, p.ProgressPercentage)
}

func TestProgressForNegativePoints(t *testing.T) {
	p := ProgressFor(-50)

	assert.Equal(t, 1, p.CurrentLevel)
	assert.Equal(t, 0, p.ProgressPercentage)
	assert.Equal(t, 20, p.PointsToNextLevel)
}

func TestProgressForEmptyThresholds(t *testing.T) {
	p := ProgressForThresholds(42, nil)

	assert.Equal(t, 1, p.CurrentLevel)
	assert.Equal(t, 100, p.ProgressPercentage)
}
