// Package airports acquires and merges the public datasets the table
// builder draws candidate places from: the OpenFlights airport and
// route dumps, the OurAirports airport inventory, and a saved copy of
// a busiest-airports ranking page.
package airports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Upstream dataset locations.
const (
	OpenFlightsAirportsURL = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airports.dat"
	OpenFlightsRoutesURL   = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/routes.dat"
	OurAirportsURL         = "https://davidmegginson.github.io/ourairports-data/airports.csv"
)

// Airport is one candidate place assembled from the source datasets.
type Airport struct {
	IATA      string
	Name      string
	Zone      string // IANA timezone name
	Type      string // OurAirports size class, e.g. "large_airport"
	Scheduled bool   // OurAirports scheduled_service flag
	RouteHits int    // appearances as route endpoint
}

// cleanName trims airport-title boilerplate so the short display name
// fits a small screen.
func cleanName(name string) string {
	name = strings.TrimSuffix(name, " International Airport")
	name = strings.TrimSuffix(name, " Airport")
	return strings.TrimSpace(name)
}

// ParseOpenFlightsAirports reads the airports.dat dump and returns
// airports keyed by IATA code. Rows without a usable IATA code or
// IANA timezone are skipped.
func ParseOpenFlightsAirports(r io.Reader) (map[string]*Airport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	airports := make(map[string]*Airport)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing airports.dat: %w", err)
		}
		// Columns: id, name, city, country, IATA, ICAO, lat, lon,
		// altitude, UTC offset, DST rule, IANA timezone, type, source.
		if len(record) < 12 {
			continue
		}
		iata := strings.ToUpper(strings.TrimSpace(record[4]))
		zone := strings.TrimSpace(record[11])
		if len(iata) != 3 || iata == `\N` || zone == "" || zone == `\N` {
			continue
		}
		airports[iata] = &Airport{
			IATA: iata,
			Name: cleanName(record[1]),
			Zone: zone,
		}
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("airports.dat contained no usable rows")
	}
	return airports, nil
}

// ParseOpenFlightsRoutes reads the routes.dat dump and returns how
// often each IATA code appears as a route source or destination. The
// counts serve as a crude popularity signal.
func ParseOpenFlightsRoutes(r io.Reader) (map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	hits := make(map[string]int)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing routes.dat: %w", err)
		}
		// Columns: airline, airline id, source, source id,
		// destination, destination id, ...
		if len(record) < 5 {
			continue
		}
		for _, col := range []int{2, 4} {
			code := strings.ToUpper(strings.TrimSpace(record[col]))
			if len(code) == 3 && code != `\N` {
				hits[code]++
			}
		}
	}
	return hits, nil
}

// ApplyOurAirports reads the OurAirports airports.csv inventory and
// annotates already-loaded airports with their size class and
// scheduled-service flag. Codes absent from the map are ignored.
func ApplyOurAirports(r io.Reader, airports map[string]*Airport) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading airports.csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	iataCol, ok1 := col["iata_code"]
	typeCol, ok2 := col["type"]
	schedCol, ok3 := col["scheduled_service"]
	if !ok1 || !ok2 || !ok3 {
		return fmt.Errorf("airports.csv missing expected columns, got %v", header)
	}

	annotated := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parsing airports.csv: %w", err)
		}
		if len(record) <= iataCol || len(record) <= typeCol || len(record) <= schedCol {
			continue
		}
		iata := strings.ToUpper(strings.TrimSpace(record[iataCol]))
		airport, found := airports[iata]
		if !found {
			continue
		}
		airport.Type = strings.TrimSpace(record[typeCol])
		airport.Scheduled = strings.TrimSpace(record[schedCol]) == "yes"
		annotated++
	}
	if annotated == 0 {
		return fmt.Errorf("airports.csv annotated no known airports")
	}
	return nil
}

// LoadDatabase fetches and merges all three datasets into one map
// keyed by IATA code.
func LoadDatabase(ctx context.Context, fetcher *Fetcher, logger *slog.Logger) (map[string]*Airport, error) {
	raw, err := fetcher.Get(ctx, OpenFlightsAirportsURL)
	if err != nil {
		return nil, fmt.Errorf("loading airport list: %w", err)
	}
	airports, err := ParseOpenFlightsAirports(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	raw, err = fetcher.Get(ctx, OpenFlightsRoutesURL)
	if err != nil {
		return nil, fmt.Errorf("loading route list: %w", err)
	}
	hits, err := ParseOpenFlightsRoutes(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	for code, count := range hits {
		if airport, found := airports[code]; found {
			airport.RouteHits = count
		}
	}

	raw, err = fetcher.Get(ctx, OurAirportsURL)
	if err != nil {
		return nil, fmt.Errorf("loading airport inventory: %w", err)
	}
	if err := ApplyOurAirports(bytes.NewReader(raw), airports); err != nil {
		return nil, err
	}

	logger.Info("airport database loaded", "airports", len(airports), "route_endpoints", len(hits))
	return airports, nil
}
