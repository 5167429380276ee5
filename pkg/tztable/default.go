package tztable

import (
	"fmt"
	"sync"
)

// Baked-in table for the 2026 evaluation year, so the watch runs
// without an external table file. Regenerate with noontz-gen for other
// years or a richer place list.

// DST transition instants, UTC epoch seconds, 2026, as the tzscan
// hourly walk reports them. US rules shift at 02:00 local, so each
// offset strip transitions at a different UTC instant.
const (
	pacificDSTStart = 1772964000 // Mar 8 10:00 UTC
	pacificDSTEnd   = 1793523600 // Nov 1 09:00 UTC

	mountainDSTStart = 1772960400 // Mar 8 09:00 UTC
	mountainDSTEnd   = 1793520000 // Nov 1 08:00 UTC

	centralDSTStart = 1772956800 // Mar 8 08:00 UTC
	centralDSTEnd   = 1793516400 // Nov 1 07:00 UTC

	easternDSTStart = 1772953200 // Mar 8 07:00 UTC
	easternDSTEnd   = 1793512800 // Nov 1 06:00 UTC

	newfoundlandDSTStart = 1772949600 // Mar 8 06:00 UTC
	newfoundlandDSTEnd   = 1793509200 // Nov 1 05:00 UTC

	// UK and EU shift together at 01:00 UTC.
	euDSTStart = 1774746000 // Mar 29 01:00 UTC
	euDSTEnd   = 1792890000 // Oct 25 01:00 UTC

	egDSTStart = 1776981600 // Apr 23 22:00 UTC
	egDSTEnd   = 1793307600 // Oct 29 21:00 UTC

	clDSTStart = 1788667200 // Sep 6 04:00 UTC
	clDSTEnd   = 1775358000 // Apr 5 03:00 UTC (wraps)

	adelaideDSTStart = 1791046800 // Oct 3 17:00 UTC
	adelaideDSTEnd   = 1775322000 // Apr 4 17:00 UTC (wraps)

	sydneyDSTStart = 1791043200 // Oct 3 16:00 UTC
	sydneyDSTEnd   = 1775318400 // Apr 4 16:00 UTC (wraps)

	// Auckland and Chatham shift together at 14:00 UTC.
	nzDSTStart = 1790431200 // Sep 26 14:00 UTC
	nzDSTEnd   = 1775311200 // Apr 4 14:00 UTC (wraps)
)

type defaultEntry struct {
	variant Variant
	places  []Place
}

var defaultEntries = []defaultEntry{
	{Variant{StdOffset: -10 * 3600, DSTOffset: -10 * 3600}, []Place{
		{"HNL", "Daniel K. Inouye"},
	}},
	{Variant{StdOffset: -34200, DSTOffset: -34200}, []Place{
		{"NHV", "Nuku Hiva"},
	}},
	{Variant{StdOffset: -8 * 3600, DSTOffset: -7 * 3600, DSTStart: pacificDSTStart, DSTEnd: pacificDSTEnd}, []Place{
		{"LAX", "Los Angeles"}, {"SFO", "San Francisco"}, {"SEA", "Seattle-Tacoma"},
	}},
	{Variant{StdOffset: -7 * 3600, DSTOffset: -7 * 3600}, []Place{
		{"PHX", "Phoenix Sky Harbor"},
	}},
	{Variant{StdOffset: -7 * 3600, DSTOffset: -6 * 3600, DSTStart: mountainDSTStart, DSTEnd: mountainDSTEnd}, []Place{
		{"DEN", "Denver"}, {"SLC", "Salt Lake City"},
	}},
	{Variant{StdOffset: -6 * 3600, DSTOffset: -5 * 3600, DSTStart: centralDSTStart, DSTEnd: centralDSTEnd}, []Place{
		{"ORD", "Chicago O'Hare"}, {"DFW", "Dallas Fort Worth"},
	}},
	{Variant{StdOffset: -5 * 3600, DSTOffset: -4 * 3600, DSTStart: easternDSTStart, DSTEnd: easternDSTEnd}, []Place{
		{"JFK", "John F. Kennedy"}, {"ATL", "Hartsfield Jackson Atlanta"}, {"MIA", "Miami"},
	}},
	{Variant{StdOffset: -4 * 3600, DSTOffset: -3 * 3600, DSTStart: clDSTStart, DSTEnd: clDSTEnd}, []Place{
		{"SCL", "Arturo Merino Benitez"},
	}},
	{Variant{StdOffset: -12600, DSTOffset: -9000, DSTStart: newfoundlandDSTStart, DSTEnd: newfoundlandDSTEnd}, []Place{
		{"YYT", "St. John's"},
	}},
	{Variant{StdOffset: -3 * 3600, DSTOffset: -3 * 3600}, []Place{
		{"GRU", "Sao Paulo-Guarulhos"},
	}},
	{Variant{StdOffset: 0, DSTOffset: 0}, []Place{
		{"KEF", "Keflavik"},
	}},
	{Variant{StdOffset: 0, DSTOffset: 1 * 3600, DSTStart: euDSTStart, DSTEnd: euDSTEnd}, []Place{
		{"LHR", "London Heathrow"}, {"LIS", "Lisbon Humberto Delgado"},
	}},
	{Variant{StdOffset: 1 * 3600, DSTOffset: 2 * 3600, DSTStart: euDSTStart, DSTEnd: euDSTEnd}, []Place{
		{"CDG", "Charles de Gaulle"}, {"FRA", "Frankfurt am Main"}, {"AMS", "Amsterdam Schiphol"},
	}},
	{Variant{StdOffset: 2 * 3600, DSTOffset: 3 * 3600, DSTStart: egDSTStart, DSTEnd: egDSTEnd}, []Place{
		{"CAI", "Cairo"},
	}},
	{Variant{StdOffset: 3 * 3600, DSTOffset: 3 * 3600}, []Place{
		{"DOH", "Hamad"}, {"IST", "Istanbul"},
	}},
	{Variant{StdOffset: 12600, DSTOffset: 12600}, []Place{
		{"IKA", "Tehran Imam Khomeini"},
	}},
	{Variant{StdOffset: 4 * 3600, DSTOffset: 4 * 3600}, []Place{
		{"DXB", "Dubai"},
	}},
	{Variant{StdOffset: 19800, DSTOffset: 19800}, []Place{
		{"DEL", "Indira Gandhi"}, {"BOM", "Chhatrapati Shivaji"},
	}},
	{Variant{StdOffset: 20700, DSTOffset: 20700}, []Place{
		{"KTM", "Tribhuvan"},
	}},
	{Variant{StdOffset: 23400, DSTOffset: 23400}, []Place{
		{"RGN", "Yangon"},
	}},
	{Variant{StdOffset: 7 * 3600, DSTOffset: 7 * 3600}, []Place{
		{"BKK", "Suvarnabhumi"}, {"CGK", "Soekarno-Hatta"},
	}},
	{Variant{StdOffset: 8 * 3600, DSTOffset: 8 * 3600}, []Place{
		{"PEK", "Beijing Capital"}, {"HKG", "Hong Kong"}, {"SIN", "Singapore Changi"},
	}},
	{Variant{StdOffset: 9 * 3600, DSTOffset: 9 * 3600}, []Place{
		{"HND", "Tokyo Haneda"}, {"ICN", "Incheon"},
	}},
	{Variant{StdOffset: 34200, DSTOffset: 37800, DSTStart: adelaideDSTStart, DSTEnd: adelaideDSTEnd}, []Place{
		{"ADL", "Adelaide"},
	}},
	{Variant{StdOffset: 10 * 3600, DSTOffset: 10 * 3600}, []Place{
		{"BNE", "Brisbane"},
	}},
	{Variant{StdOffset: 10 * 3600, DSTOffset: 11 * 3600, DSTStart: sydneyDSTStart, DSTEnd: sydneyDSTEnd}, []Place{
		{"SYD", "Sydney Kingsford Smith"}, {"MEL", "Melbourne"},
	}},
	{Variant{StdOffset: 12 * 3600, DSTOffset: 13 * 3600, DSTStart: nzDSTStart, DSTEnd: nzDSTEnd}, []Place{
		{"AKL", "Auckland"},
	}},
	{Variant{StdOffset: 45900, DSTOffset: 49500, DSTStart: nzDSTStart, DSTEnd: nzDSTEnd}, []Place{
		{"CHT", "Chatham Islands"},
	}},
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the baked-in 2026 table. The same instance is
// returned on every call; it is read-only.
func Default() *Table {
	defaultOnce.Do(func() {
		t := New()
		for _, e := range defaultEntries {
			if err := t.Add(e.variant, e.places); err != nil {
				panic(fmt.Sprintf("tztable: bad builtin entry: %v", err))
			}
		}
		t.Prune()
		if err := t.Validate(); err != nil {
			panic(fmt.Sprintf("tztable: builtin table invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}
