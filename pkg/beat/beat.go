// Package beat implements the Swatch-style .beat clock: the fraction
// of the UTC+1 day scaled to thousandths, displayed with one decimal.
package beat

import "fmt"

const (
	hourSeconds = 3600
	daySeconds  = 86400
)

// Beats returns the current beat time multiplied by ten (0-9999) for
// the given UTC instant. 64-bit math keeps the scaled multiply exact.
func Beats(nowUTC int64) int {
	bmt := nowUTC + hourSeconds // .beat time is anchored to UTC+1
	secondsOfDay := bmt % daySeconds
	if secondsOfDay < 0 {
		secondsOfDay += daySeconds
	}
	b := int(uint64(secondsOfDay) * 10000 / daySeconds)
	if b > 9999 {
		b = 9999
	}
	return b
}

// Format renders a Beats value as "@BBB.F".
func Format(b int) string {
	return fmt.Sprintf("@%03d.%d", b/10, b%10)
}

// Clock caches the last rendered value so a caller ticking faster than
// the display changes can skip redundant work.
type Clock struct {
	last int
}

// NewClock returns a clock with no cached value.
func NewClock() *Clock { return &Clock{last: -1} }

// Update returns the display string for the instant and whether it
// differs from the previously returned one.
func (c *Clock) Update(nowUTC int64) (text string, changed bool) {
	b := Beats(nowUTC)
	if b == c.last {
		return Format(b), false
	}
	c.last = b
	return Format(b), true
}
