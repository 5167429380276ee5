package selector

import (
	"testing"

	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

// at builds an epoch instant on day zero from a UTC time of day.
func at(hour, minute, second int) int64 {
	return int64(hour*3600 + minute*60 + second)
}

func TestTickFirstInvocationAlwaysEvaluates(t *testing.T) {
	s := New(scenarioTable(t))
	// Minute 59 is not an evaluation boundary, but the first tick must
	// still populate the display.
	res := s.Tick(at(16, 59, 40), noon)
	if !res.Found || res.Place.Code != "LON" {
		t.Fatalf("first tick = %+v, want LON", res)
	}
}

func TestTickHoldsSelectionBetweenBoundaries(t *testing.T) {
	s := New(scenarioTable(t))

	if res := s.Tick(at(16, 59, 40), noon); res.Place.Code != "LON" {
		t.Fatalf("first tick selected %s, want LON", res.Place.Code)
	}

	// At 17:07 NYC reads 12:07 and would win a fresh evaluation, but
	// minute 7 is not a boundary: the cached LON pick must survive, and
	// the clock must come from the cached +1h offset.
	res := s.Tick(at(17, 7, 23), noon)
	if res.Place.Code != "LON" {
		t.Errorf("mid-cycle tick re-evaluated: got %s", res.Place.Code)
	}
	if res.Minutes != 7 || res.Seconds != 23 {
		t.Errorf("clock = %02d:%02d, want 07:23 from cached offset", res.Minutes, res.Seconds)
	}

	// 17:15:00 is a boundary: now NYC (12:15, excess 15m) beats LON
	// (18:15, excess 6h15m).
	res = s.Tick(at(17, 15, 0), noon)
	if res.Place.Code != "NYC" {
		t.Errorf("boundary tick selected %s, want NYC", res.Place.Code)
	}
	if res.Minutes != 15 || res.Seconds != 0 {
		t.Errorf("clock = %02d:%02d, want 15:00", res.Minutes, res.Seconds)
	}
}

func TestTickBoundaryRule(t *testing.T) {
	cases := []struct {
		name   string
		minute int
		second int
		want   bool
	}{
		{"on the hour", 0, 0, true},
		{"quarter past", 15, 0, true},
		{"half past", 30, 0, true},
		{"quarter to is skipped", 45, 0, false},
		{"boundary minute but nonzero second", 15, 30, false},
		{"ordinary minute", 7, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New(scenarioTable(t))
			s.Tick(at(16, 59, 40), noon) // consume the forced first evaluation
			s.Tick(at(17, c.minute, c.second), noon)
			if got := s.lastEval == at(17, c.minute, c.second); got != c.want {
				t.Errorf("evaluated = %v, want %v", got, c.want)
			}
		})
	}
}

func TestTickSameSecondSuppression(t *testing.T) {
	s := New(scenarioTable(t))
	now := at(11, 0, 0)

	first := s.Tick(now, noon)
	evalInstant := s.lastEval
	for i := 0; i < 3; i++ {
		again := s.Tick(now, noon)
		if again != first {
			t.Fatalf("repeat tick %d = %+v, want %+v", i, again, first)
		}
	}
	if s.lastEval != evalInstant {
		t.Error("repeat tick within the same second re-ran the evaluation")
	}
}

func TestTickNoneFoundRendersPlaceholderState(t *testing.T) {
	tbl := tztable.New()
	if err := tbl.Add(tztable.Variant{StdOffset: -5 * 3600, DSTOffset: -5 * 3600}, []tztable.Place{
		{Code: "NYC", Name: "New York"},
	}); err != nil {
		t.Fatal(err)
	}
	s := New(tbl)
	res := s.Tick(at(11, 0, 0), noon)
	if res.Found {
		t.Fatalf("expected no selection, got %+v", res)
	}
	if res.Minutes != 0 || res.Seconds != 0 {
		t.Errorf("sentinel result carries clock %02d:%02d, want zeros", res.Minutes, res.Seconds)
	}
}

func TestTickReevaluatesAcrossBoundaries(t *testing.T) {
	// A scheduler driven second-by-second across a boundary must change
	// its evaluation instant exactly at the boundary.
	s := New(scenarioTable(t))
	start := at(13, 14, 58)
	s.Tick(start, noon)
	firstEval := s.lastEval

	s.Tick(at(13, 14, 59), noon)
	if s.lastEval != firstEval {
		t.Error("evaluated at 13:14:59")
	}
	s.Tick(at(13, 15, 0), noon)
	if s.lastEval != at(13, 15, 0) {
		t.Error("did not evaluate at 13:15:00")
	}
	s.Tick(at(13, 15, 1), noon)
	if s.lastEval != at(13, 15, 0) {
		t.Error("evaluated again at 13:15:01")
	}
}
