package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddFloorsAtZero(t *testing.T) {
	var c Counters
	c.Add(-5, 3)
	assert.Equal(t, -3, c.Delta())
	assert.Equal(t, 0, c.Loyalty(3))

	c.Add(2, 3)
	assert.Equal(t, 2, c.Loyalty(3))
}

func TestTotalCountsMinusCounters(t *testing.T) {
	var c Counters
	c.AddPlusOne(-2)
	assert.Equal(t, 2, c.Total(0))
	c.Add(1, 4)
	assert.Equal(t, 7, c.Total(4))
	assert.Equal(t, 5, c.Loyalty(4))
}

func TestClearDeltaKeepsPlusOne(t *testing.T) {
	var c Counters
	c.Add(3, 0)
	c.AddPlusOne(1)
	c.ClearDelta()
	assert.Equal(t, 0, c.Delta())
	assert.Equal(t, 1, c.PlusOne())
}

func TestBoostLabel(t *testing.T) {
	var c Counters
	assert.Equal(t, "", c.BoostLabel())
	c.AddPlusOne(2)
	assert.Equal(t, "+2/+2", c.BoostLabel())
	c.AddPlusOne(-3)
	assert.Equal(t, "-1/-1", c.BoostLabel())
}
