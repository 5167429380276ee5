// Package tid generates short time-ordered identifiers: an 11-char
// base-32 microsecond timestamp followed by a 2-char clock id, padded
// to a constant 13 characters. Successive identifiers from one
// generator are strictly increasing even when the clock source does
// not advance between calls.
package tid

import "math/rand"

// alphabet is sorted ASCII so identifiers collate in time order. '2'
// is the zero digit used for padding.
const alphabet = "234567abcdefghijklmnopqrstuvwxyz"

const (
	timestampChars = 11
	clockIDChars   = 2
	// Length is the constant width of every identifier.
	Length = timestampChars + clockIDChars
)

// Generator produces identifiers. The zero value is ready to use; an
// optional rand source varies the clock id suffix (nil keeps the fixed
// "22" suffix). Not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	last uint64
}

// NewGenerator returns a generator with the given clock-id source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Next returns the identifier for the given instant. If the computed
// microsecond value is not greater than the previous one, it is forced
// to previous+1 so ordering never breaks.
func (g *Generator) Next(seconds int64, milliseconds int) string {
	micros := uint64(seconds)*1_000_000 + uint64(milliseconds)*1000
	if micros <= g.last {
		micros = g.last + 1
	}
	g.last = micros

	var buf [Length]byte
	encode(buf[:timestampChars], micros)

	clockID := uint64(0) // "22"
	if g.rng != nil {
		clockID = uint64(g.rng.Intn(1024))
	}
	encode(buf[timestampChars:], clockID)

	return string(buf[:])
}

// encode fills dst right-to-left with base-32 digits, padding the
// remainder with the zero digit.
func encode(dst []byte, v uint64) {
	for i := range dst {
		dst[i] = alphabet[0]
	}
	for pos := len(dst); v > 0 && pos > 0; v >>= 5 {
		pos--
		dst[pos] = alphabet[v&31]
	}
}
