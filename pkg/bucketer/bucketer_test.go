package bucketer

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/codeGROOVE-dev/noonTZ/pkg/airports"
	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

// 2024 is over, so its transition data no longer shifts under us.
const year = 2024

func testConfig() Config {
	return Config{
		Year:   year,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func mustZones(t *testing.T, zones ...string) {
	t.Helper()
	for _, zone := range zones {
		if _, err := time.LoadLocation(zone); err != nil {
			t.Skipf("zone database unavailable: %v", err)
		}
	}
}

func findVariant(t *testing.T, table *tztable.Table, stdOffset int) (tztable.Variant, int) {
	t.Helper()
	for i, v := range table.Variants() {
		if v.StdOffset == stdOffset {
			return v, i
		}
	}
	t.Fatalf("no variant with standard offset %d", stdOffset)
	return tztable.Variant{}, -1
}

func placeCodes(table *tztable.Table, i int) []string {
	var codes []string
	for _, p := range table.PlacesOf(i) {
		codes = append(codes, p.Code)
	}
	return codes
}

func TestBuildGroupsSharedTuples(t *testing.T) {
	mustZones(t, "America/New_York", "Europe/London")

	db := map[string]*airports.Airport{
		"JFK": {IATA: "JFK", Name: "John F Kennedy", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		"BOS": {IATA: "BOS", Name: "Logan", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		"LHR": {IATA: "LHR", Name: "Heathrow", Zone: "Europe/London", Type: "large_airport", Scheduled: true},
	}
	ranked := []airports.Ranked{
		{IATA: "JFK", Name: "John F Kennedy"},
		{IATA: "BOS", Name: "Logan"},
		{IATA: "LHR", Name: "Heathrow"},
	}

	table, err := New(testConfig()).Build(ranked, db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if table.VariantCount() != 2 {
		t.Fatalf("got %d variants, want 2", table.VariantCount())
	}

	v, i := findVariant(t, table, -5*3600)
	if v.DSTOffset != -4*3600 {
		t.Errorf("eastern daylight offset = %d", v.DSTOffset)
	}
	if got := placeCodes(table, i); len(got) != 2 || got[0] != "JFK" || got[1] != "BOS" {
		t.Errorf("eastern places = %v, want [JFK BOS]", got)
	}
}

func TestBuildFillsUncoveredOffsets(t *testing.T) {
	mustZones(t, "America/New_York", "Asia/Tokyo")

	db := map[string]*airports.Airport{
		"JFK": {IATA: "JFK", Name: "John F Kennedy", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		// Tokyo's offset has no ranked airport. Scheduled fields fill
		// it; the strip with no scheduled service gets one anyway.
		"HND": {IATA: "HND", Name: "Haneda", Zone: "Asia/Tokyo", Type: "large_airport", Scheduled: true, RouteHits: 500},
		"NRT": {IATA: "NRT", Name: "Narita", Zone: "Asia/Tokyo", Type: "large_airport", Scheduled: true, RouteHits: 400},
		"KIX": {IATA: "KIX", Name: "Kansai", Zone: "Asia/Tokyo", Type: "large_airport", Scheduled: true, RouteHits: 300},
		"NGO": {IATA: "NGO", Name: "Chubu Centrair", Zone: "Asia/Tokyo", Type: "large_airport", Scheduled: true, RouteHits: 200},
		"OKD": {IATA: "OKD", Name: "Okadama", Zone: "Asia/Tokyo", Type: "small_airport", Scheduled: true, RouteHits: 1},
	}
	ranked := []airports.Ranked{{IATA: "JFK", Name: "John F Kennedy"}}

	table, err := New(testConfig()).Build(ranked, db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, i := findVariant(t, table, 9*3600)
	got := placeCodes(table, i)
	// Three large by route hits, then the one small.
	want := []string{"HND", "NRT", "KIX", "OKD"}
	if len(got) != len(want) {
		t.Fatalf("fallback places = %v, want %v", got, want)
	}
	for j := range want {
		if got[j] != want[j] {
			t.Errorf("fallback place %d = %s, want %s", j, got[j], want[j])
		}
	}
}

func TestBuildUnscheduledOffsetKeepsBusiestField(t *testing.T) {
	mustZones(t, "America/New_York", "Pacific/Marquesas")

	db := map[string]*airports.Airport{
		"JFK": {IATA: "JFK", Name: "John F Kennedy", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		"NHV": {IATA: "NHV", Name: "Nuku Hiva", Zone: "Pacific/Marquesas", Type: "small_airport", RouteHits: 4},
		"AUQ": {IATA: "AUQ", Name: "Hiva Oa", Zone: "Pacific/Marquesas", Type: "small_airport", RouteHits: 2},
	}
	ranked := []airports.Ranked{{IATA: "JFK", Name: "John F Kennedy"}}

	table, err := New(testConfig()).Build(ranked, db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, i := findVariant(t, table, -(9*3600 + 1800))
	if got := placeCodes(table, i); len(got) != 1 || got[0] != "NHV" {
		t.Errorf("marquesas places = %v, want [NHV]", got)
	}
}

func TestBuildHonorsTopAndBucketCaps(t *testing.T) {
	mustZones(t, "America/New_York")

	db := map[string]*airports.Airport{
		"JFK": {IATA: "JFK", Name: "John F Kennedy", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		"BOS": {IATA: "BOS", Name: "Logan", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		"PHL": {IATA: "PHL", Name: "Philadelphia", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
	}
	ranked := []airports.Ranked{
		{IATA: "JFK", Name: "John F Kennedy"},
		{IATA: "BOS", Name: "Logan"},
		{IATA: "PHL", Name: "Philadelphia"},
	}

	cfg := testConfig()
	cfg.MaxBucket = 2
	table, err := New(cfg).Build(ranked, db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, i := findVariant(t, table, -5*3600)
	if got := placeCodes(table, i); len(got) != 2 {
		t.Errorf("capped places = %v, want 2 entries", got)
	}

	cfg = testConfig()
	cfg.Top = 1
	table, err = New(cfg).Build(ranked, db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// BOS and PHL fall outside their offset's cap, and the covered
	// offset takes no fallback, so only the best-ranked airport stays.
	_, i = findVariant(t, table, -5*3600)
	if got := placeCodes(table, i); len(got) != 1 || got[0] != "JFK" {
		t.Errorf("top-capped places = %v, want [JFK]", got)
	}
}

func TestBuildTopCapIsPerOffset(t *testing.T) {
	mustZones(t, "America/New_York", "Europe/London")

	db := map[string]*airports.Airport{
		"JFK": {IATA: "JFK", Name: "John F Kennedy", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		"BOS": {IATA: "BOS", Name: "Logan", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
		"LHR": {IATA: "LHR", Name: "Heathrow Database Name", Zone: "Europe/London", Type: "large_airport", Scheduled: true},
	}
	// Heathrow ranks below the cap globally, but it is the best in its
	// own offset and must stay a ranked pick, not a database fallback.
	ranked := []airports.Ranked{
		{IATA: "JFK", Name: "John F Kennedy"},
		{IATA: "BOS", Name: "Logan"},
		{IATA: "LHR", Name: "Heathrow"},
	}

	cfg := testConfig()
	cfg.Top = 1
	table, err := New(cfg).Build(ranked, db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, i := findVariant(t, table, -5*3600)
	if got := placeCodes(table, i); len(got) != 1 || got[0] != "JFK" {
		t.Errorf("eastern places = %v, want [JFK]", got)
	}

	v, i := findVariant(t, table, 0)
	if got := placeCodes(table, i); len(got) != 1 || got[0] != "LHR" {
		t.Fatalf("london places = %v, want [LHR]", got)
	}
	if v.DSTOffset != 3600 {
		t.Errorf("london daylight offset = %d", v.DSTOffset)
	}
	if p, ok := table.PlaceAt(i, 0); !ok || p.Name != "Heathrow" {
		t.Errorf("london place name = %+v, want the ranking name", p)
	}
}

func TestBuildSkipsUnknownRankedCodes(t *testing.T) {
	mustZones(t, "America/New_York")

	db := map[string]*airports.Airport{
		"JFK": {IATA: "JFK", Name: "John F Kennedy", Zone: "America/New_York", Type: "large_airport", Scheduled: true},
	}
	ranked := []airports.Ranked{
		{IATA: "ZZZ", Name: "Nowhere"},
		{IATA: "JFK", Name: "John F Kennedy"},
	}

	table, err := New(testConfig()).Build(ranked, db)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if table.PlaceCount() != 1 {
		t.Errorf("place count = %d, want 1", table.PlaceCount())
	}
}

func TestBuildEmptyInputFails(t *testing.T) {
	if _, err := New(testConfig()).Build(nil, nil); err == nil {
		t.Error("empty build should be an error")
	}
}
