// Package tzscan discovers a zone's DST behavior for one calendar
// year by walking the year hour by hour through the IANA database and
// watching for the daylight flag to toggle. The walk is the builder's
// single source of truth for variant tuples.
package tzscan

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"
)

// Transitions summarizes one zone's behavior in one year. Both
// instants are zero when the zone observes no DST (or its DST shift is
// under a minute, which is collapsed away).
type Transitions struct {
	StdOffset int   // seconds east of UTC when DST is inactive
	DSTOffset int   // seconds east of UTC when DST is active
	DSTStart  int64 // UTC epoch seconds, 0 if none in this year
	DSTEnd    int64
}

// Scanner memoizes per-zone scans. A full table build touches a few
// hundred zones, many repeatedly, and each scan walks ~8800 instants.
type Scanner struct {
	cache  *otter.Cache[string, Transitions]
	logger *slog.Logger
}

// NewScanner returns a scanner.
func NewScanner(logger *slog.Logger) *Scanner {
	return &Scanner{
		cache: otter.Must(&otter.Options[string, Transitions]{
			MaximumSize: 2048,
		}),
		logger: logger,
	}
}

// Find returns the transitions for zone in year.
func (s *Scanner) Find(zone string, year int) (Transitions, error) {
	key := fmt.Sprintf("%s@%d", zone, year)
	if tr, ok := s.cache.GetIfPresent(key); ok {
		return tr, nil
	}
	tr, err := scan(zone, year)
	if err != nil {
		return Transitions{}, err
	}
	s.cache.Set(key, tr)
	s.logger.Debug("scanned zone",
		"zone", zone, "year", year,
		"std", tr.StdOffset, "dst", tr.DSTOffset,
		"start", tr.DSTStart, "end", tr.DSTEnd)
	return tr, nil
}

// scan walks from one hour before the year starts through a leap
// year's worth of hours plus a small buffer, so transitions sitting
// exactly on the year boundary are caught.
func scan(zone string, year int) (Transitions, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Transitions{}, fmt.Errorf("loading zone %q: %w", zone, err)
	}

	cur := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Hour)
	local := cur.In(loc)
	_, firstOffset := local.Zone()
	prevDST := local.IsDST()

	var tr Transitions
	haveStd, haveDST := false, false
	record := func(offset int, dst bool) {
		if dst {
			tr.DSTOffset = offset
			haveDST = true
		} else {
			tr.StdOffset = offset
			haveStd = true
		}
	}
	record(firstOffset, prevDST)

	const totalHours = 366*24 + 3
	for i := 0; i < totalHours; i++ {
		cur = cur.Add(time.Hour)
		local = cur.In(loc)
		_, offset := local.Zone()
		dst := local.IsDST()
		record(offset, dst)

		if dst != prevDST && cur.UTC().Year() == year {
			switch {
			case !prevDST && dst:
				tr.DSTStart = cur.Unix()
			case prevDST && !dst:
				tr.DSTEnd = cur.Unix()
			}
		}
		prevDST = dst
	}

	if !haveStd {
		tr.StdOffset = tr.DSTOffset
	}
	if !haveDST {
		tr.DSTOffset = tr.StdOffset
	}

	// Shifts under a minute collapse to no DST at all.
	diff := tr.StdOffset - tr.DSTOffset
	if diff < 0 {
		diff = -diff
	}
	if diff < 60 {
		tr.DSTOffset = tr.StdOffset
		tr.DSTStart = 0
		tr.DSTEnd = 0
	}
	return tr, nil
}
