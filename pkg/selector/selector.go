// Package selector chooses, for a given UTC instant, the timezone
// variant whose local clock is the smallest reading that has already
// reached a target time-of-day, and a representative place within it.
package selector

import (
	"math/rand"

	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

// Selection is the outcome of one evaluation. ActiveOffset is the UTC
// offset in effect for the chosen variant at evaluation time,
// pre-resolved so per-second rendering never re-derives DST status.
type Selection struct {
	Place        tztable.Place
	ActiveOffset int
	Found        bool // a qualifying variant existed
	Corrupt      bool // selected variant's place range was broken
}

// Evaluate scans every variant and picks the one whose local
// seconds-of-day has the minimal non-negative excess over
// targetSecondsOfDay. Ties on the minimal excess are broken uniformly
// at random, as is the place within the winning variant, using the
// supplied source. It is a pure function of the table and inputs
// modulo rng; callers wanting reproducibility seed rng from the
// evaluation instant.
func Evaluate(table *tztable.Table, nowUTC int64, targetSecondsOfDay int, rng *rand.Rand) Selection {
	bestExcess := -1
	var winners []int

	for i, v := range table.Variants() {
		local := v.LocalSecondsOfDay(nowUTC)
		if local < targetSecondsOfDay {
			continue // hasn't reached the target yet today
		}
		excess := local - targetSecondsOfDay
		switch {
		case bestExcess < 0 || excess < bestExcess:
			bestExcess = excess
			winners = winners[:0]
			winners = append(winners, i)
		case excess == bestExcess:
			winners = append(winners, i)
		}
	}

	if len(winners) == 0 {
		// Normal outcome when the target is close to day-end and every
		// zone is still earlier. Not an error.
		return Selection{}
	}

	idx := winners[0]
	if len(winners) > 1 {
		idx = winners[rng.Intn(len(winners))]
	}

	count := table.PlaceCountOf(idx)
	if count == 0 {
		// Structurally impossible after table construction; surfaced as
		// a marker instead of a crash.
		return Selection{Found: true, Corrupt: true}
	}
	pick := 0
	if count > 1 {
		pick = rng.Intn(count)
	}
	place, ok := table.PlaceAt(idx, pick)
	if !ok {
		return Selection{Found: true, Corrupt: true}
	}

	return Selection{
		Place:        place,
		ActiveOffset: table.Variant(idx).OffsetAt(nowUTC),
		Found:        true,
	}
}
