package counters

import "strconv"

// Counters tracks the counters placed on a single permanent.
// Loyalty and generic counters live in delta, which is relative to the
// printed value of whichever face is showing. +1/+1 counters are tracked
// separately because they also change power and toughness.
type Counters struct {
	delta   int
	plusOne int
}

// Add adds n counters (n may be negative). The total of base plus delta
// never drops below zero.
func (c *Counters) Add(n, base int) {
	c.delta += n
	if base+c.delta < 0 {
		c.delta = -base
	}
}

// AddPlusOne adds n +1/+1 counters. Negative values model -1/-1 counters.
func (c *Counters) AddPlusOne(n int) {
	c.plusOne += n
}

// Delta returns the generic counter delta.
func (c *Counters) Delta() int {
	return c.delta
}

// PlusOne returns the signed +1/+1 counter count.
func (c *Counters) PlusOne() int {
	return c.plusOne
}

// Loyalty returns base plus the generic delta, ignoring +1/+1 counters.
func (c *Counters) Loyalty(base int) int {
	return base + c.delta
}

// Total returns every counter on the permanent. -1/-1 counters still count
// as counters.
func (c *Counters) Total(base int) int {
	plus := c.plusOne
	if plus < 0 {
		plus = -plus
	}
	return base + c.delta + plus
}

// ClearDelta drops generic counters. +1/+1 counters survive.
func (c *Counters) ClearDelta() {
	c.delta = 0
}

// BoostLabel returns the display name of the +1/+1 counters (e.g. "+2/+2").
// Returns "" when there are none.
func (c *Counters) BoostLabel() string {
	if c.plusOne == 0 {
		return ""
	}
	return formatBoost(c.plusOne) + "/" + formatBoost(c.plusOne)
}

func formatBoost(value int) string {
	if value > 0 {
		return "+" + strconv.Itoa(value)
	} else if value < 0 {
		return strconv.Itoa(value)
	}
	return "±0"
}
