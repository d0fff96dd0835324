package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterSkipsMissingValues(t *testing.T) {
	c := CountValues("Delhi", "", "Mumbai", "Delhi", "")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 2, c.Get("Delhi"))
	assert.Equal(t, 0, c.Get(""))
}

func TestCounterModeTieKeepsFirstSeen(t *testing.T) {
	mode, ok := CountValues("B", "A", "A", "B").Mode()
	assert.True(t, ok)
	assert.Equal(t, "B", mode)

	mode, ok = CountValues("B", "A", "A").Mode()
	assert.True(t, ok)
	assert.Equal(t, "A", mode)

	_, ok = CountValues("", "").Mode()
	assert.False(t, ok)
}

func TestCounterSortedAndTop(t *testing.T) {
	c := CountValues("x", "y", "y", "z", "z", "w")
	assert.Equal(t, []Count{{"y", 2}, {"z", 2}, {"x", 1}, {"w", 1}}, c.Sorted())
	assert.Equal(t, []Count{{"x", 1}, {"y", 2}, {"z", 2}, {"w", 1}}, c.Ordered())
	assert.Equal(t, []Count{{"y", 2}, {"z", 2}}, c.Top(2))
	assert.Len(t, c.Top(0), 4)
	assert.Len(t, c.Top(10), 4)
}

func TestCounterMeanCount(t *testing.T) {
	mean, ok := CountValues("a", "a", "b").MeanCount()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, mean, 1e-9)

	_, ok = NewCounter().MeanCount()
	assert.False(t, ok)
}

func TestRoundTo2(t *testing.T) {
	assert.Equal(t, 33.33, RoundTo2(100.0/3))
	assert.Equal(t, 66.67, RoundTo2(200.0/3))
	assert.Equal(t, 1.33, RoundTo2(4.0/3))
	assert.Equal(t, 75.0, RoundTo2(75))
}
