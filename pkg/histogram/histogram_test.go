package histogram

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

func TestCoverage(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	table := tztable.New()
	if err := table.Add(tztable.Variant{StdOffset: -5 * 3600, DSTOffset: -4 * 3600, DSTStart: 1000, DSTEnd: 2000},
		[]tztable.Place{{Code: "JFK", Name: "John F Kennedy"}, {Code: "ATL", Name: "Atlanta"}}); err != nil {
		t.Fatal(err)
	}
	if err := table.Add(tztable.Variant{StdOffset: 9 * 3600, DSTOffset: 9 * 3600},
		[]tztable.Place{{Code: "HND", Name: "Haneda"}}); err != nil {
		t.Fatal(err)
	}

	got := Coverage(table)
	for _, want := range []string{"UTC-05:00", "UTC+09:00", "2 offsets, 3 places"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "UTC-05:00 *") {
		t.Errorf("daylight offset not marked:\n%s", got)
	}
	if strings.Contains(got, "UTC+09:00 *") {
		t.Errorf("fixed offset wrongly marked:\n%s", got)
	}
}

func TestCoverageEmptyTable(t *testing.T) {
	got := Coverage(tztable.New())
	if !strings.Contains(got, "no places") {
		t.Errorf("empty table output = %q", got)
	}
}

func TestFormatOffset(t *testing.T) {
	cases := map[int]string{
		0:                 "UTC+00:00",
		5*3600 + 45*60:    "UTC+05:45",
		-(9*3600 + 30*60): "UTC-09:30",
		12*3600 + 45*60:   "UTC+12:45",
	}
	for seconds, want := range cases {
		if got := formatOffset(seconds); got != want {
			t.Errorf("formatOffset(%d) = %q, want %q", seconds, got, want)
		}
	}
}
