package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuestLimits(t *testing.T) {
	testCases := []struct {
		number   int
		expected Limits
	}{
		{number: 1, expected: Limits{Min: 1, Max: 8}},
		{number: 8, expected: Limits{Min: 1, Max: 8}},
		{number: 2, expected: Limits{Min: 1, Max: 6}},
		{number: 3, expected: Limits{Min: 1, Max: 4}},
		{number: 5, expected: Limits{Min: 1, Max: 4}},
		{number: 7, expected: Limits{Min: 1, Max: 4}},
		{number: 9, expected: Limits{Min: 1, Max: 2}},
		{number: 13, expected: Limits{Min: 1, Max: 2}},
		{number: 14, expected: Limits{Min: 1, Max: 1}},
		{number: 0, expected: Limits{Min: 1, Max: 1}},
		{number: -4, expected: Limits{Min: 1, Max: 1}},
		{number: 100, expected: Limits{Min: 1, Max: 1}},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, GuestLimits(tc.number), "table %d", tc.number)
	}
}

func TestGuestLimits_AlwaysSane(t *testing.T) {
	for n := -10; n <= 200; n++ {
		l := GuestLimits(n)
		assert.GreaterOrEqual(t, l.Min, 1, "table %d", n)
		assert.LessOrEqual(t, l.Min, l.Max, "table %d", n)
	}
}

func TestLimits_Clamp(t *testing.T) {
	l := GuestLimits(9)
	assert.Equal(t, 2, l.Clamp(5))
	assert.Equal(t, 1, l.Clamp(0))
	assert.Equal(t, 2, l.Clamp(2))
	assert.True(t, l.Contains(1))
	assert.False(t, l.Contains(3))
}
