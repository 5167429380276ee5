package selector

import (
	"math/rand"

	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

// unset marks instants that have not been observed yet.
const unset = int64(-1)

// TickResult is what one scheduler tick hands to the renderer: the
// chosen place and the running local clock reading derived from the
// cached offset.
type TickResult struct {
	Place   tztable.Place
	Minutes int
	Seconds int
	Found   bool
	Corrupt bool
}

// Scheduler owns the selection state between evaluations. It decides
// once per second whether the selector must run again and otherwise
// keeps the previous pick alive with a live-updating clock. All
// mutation happens in Tick; the zero value is not usable, construct
// with New. Single-writer: one goroutine calls Tick.
type Scheduler struct {
	table      *tztable.Table
	current    Selection
	lastResult TickResult
	lastEval   int64
	lastRender int64
}

// New returns a scheduler with all-sentinel state so the first tick
// always evaluates regardless of wall-clock alignment.
func New(table *tztable.Table) *Scheduler {
	return &Scheduler{
		table:      table,
		lastEval:   unset,
		lastRender: unset,
	}
}

// needsEval applies the re-evaluation rule: UTC minute is a multiple
// of 15 other than :45, at second zero. Whole-hour, half-hour, and
// 45-minute offsets all realign at one of :00, :15 or :30, so :45
// never needs its own pass.
func (s *Scheduler) needsEval(nowUTC int64) bool {
	if s.lastEval == unset {
		return true // first tick after start: never leave the display blank
	}
	minute := nowUTC / 60 % 60
	second := nowUTC % 60
	if minute%15 != 0 || minute == 45 || second != 0 {
		return false
	}
	return nowUTC != s.lastEval // duplicate-evaluation guard within the second
}

// Tick is the scheduled once-per-second entry point. Re-invoking it
// within the same UTC second returns the previous result unchanged.
// The displayed minutes and seconds may jump discontinuously when a
// new place is chosen; that is the expected behavior of switching
// timezones mid-cycle.
func (s *Scheduler) Tick(nowUTC int64, targetSecondsOfDay int) TickResult {
	if nowUTC == s.lastRender {
		return s.lastResult
	}

	if s.needsEval(nowUTC) {
		rng := rand.New(rand.NewSource(nowUTC)) //nolint:gosec // display variety, not security
		s.current = Evaluate(s.table, nowUTC, targetSecondsOfDay, rng)
		s.lastEval = nowUTC
	}

	res := TickResult{
		Place:   s.current.Place,
		Found:   s.current.Found,
		Corrupt: s.current.Corrupt,
	}
	if s.current.Found && !s.current.Corrupt {
		local := (int(nowUTC%tztable.DaySeconds) + s.current.ActiveOffset) % tztable.DaySeconds
		if local < 0 {
			local += tztable.DaySeconds
		}
		res.Minutes = local / 60 % 60
		res.Seconds = local % 60
	}

	s.lastRender = nowUTC
	s.lastResult = res
	return res
}

// Selection returns the currently cached selection.
func (s *Scheduler) Selection() Selection { return s.current }
