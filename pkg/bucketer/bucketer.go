// Package bucketer groups candidate airports into timezone variants
// and assembles the binary-table data model from them. Airports whose
// zones share the same standard offset, daylight offset, and daylight
// window for the evaluation year land in one variant.
package bucketer

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/codeGROOVE-dev/noonTZ/pkg/airports"
	"github.com/codeGROOVE-dev/noonTZ/pkg/tzscan"
	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

// TierCaps bounds how many fallback airports of each size class may
// fill a standard offset that no ranked airport covers.
type TierCaps struct {
	Large  int
	Medium int
	Small  int
}

// DefaultTiers admits a handful of scheduled-service airports per
// uncovered offset, preferring bigger fields.
var DefaultTiers = TierCaps{Large: 3, Medium: 2, Small: 1}

// Config controls a table build.
type Config struct {
	Year      int      // evaluation year the daylight windows are computed for
	Top       int      // ranked airports admitted per standard offset; 0 means all
	MaxBucket int      // max places per variant; 0 means unlimited
	Tiers     TierCaps // fallback caps for uncovered standard offsets
	Logger    *slog.Logger
}

// Builder assembles variant tables.
type Builder struct {
	scanner *tzscan.Scanner
	logger  *slog.Logger
	cfg     Config
}

// New returns a Builder for the given configuration.
func New(cfg Config) *Builder {
	if cfg.Tiers == (TierCaps{}) {
		cfg.Tiers = DefaultTiers
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Builder{
		scanner: tzscan.NewScanner(cfg.Logger),
		logger:  cfg.Logger,
		cfg:     cfg,
	}
}

// candidate is one airport resolved to its variant tuple.
type candidate struct {
	place tztable.Place
	trans tzscan.Transitions
	hits  int
	tier  string
	sched bool
}

// Build groups the ranked airports into variants, fills standard
// offsets the ranking misses from the wider database, and returns a
// validated table. Ranked entries without a database row or with an
// unresolvable zone are skipped with a warning. The Top cap applies
// within each standard offset, so a thinly ranked offset keeps its
// best-ranked airports instead of losing them to busier offsets.
func (b *Builder) Build(ranked []airports.Ranked, db map[string]*airports.Airport) (*tztable.Table, error) {
	var picks []candidate
	covered := make(map[int]bool)
	admitted := make(map[int]int)
	for _, r := range ranked {
		airport, found := db[r.IATA]
		if !found {
			b.logger.Warn("ranked airport not in database", "iata", r.IATA)
			continue
		}
		cand, ok := b.resolve(airport)
		if !ok {
			continue
		}
		covered[cand.trans.StdOffset] = true
		if b.cfg.Top > 0 && admitted[cand.trans.StdOffset] >= b.cfg.Top {
			continue
		}
		admitted[cand.trans.StdOffset]++
		// The ranking page usually has the nicer display name.
		if r.Name != "" {
			cand.place.Name = r.Name
		}
		picks = append(picks, cand)
	}

	fallbacks := b.fillUncovered(db, covered)
	picks = append(picks, fallbacks...)
	if len(picks) == 0 {
		return nil, fmt.Errorf("no usable airports after resolving timezones")
	}

	return b.assemble(picks)
}

// resolve checks the code packs and the zone scans.
func (b *Builder) resolve(airport *airports.Airport) (candidate, bool) {
	if _, err := tztable.PackCode(airport.IATA); err != nil {
		b.logger.Warn("unusable airport code", "iata", airport.IATA, "error", err)
		return candidate{}, false
	}
	trans, err := b.scanner.Find(airport.Zone, b.cfg.Year)
	if err != nil {
		b.logger.Warn("skipping airport with unresolvable zone",
			"iata", airport.IATA, "zone", airport.Zone, "error", err)
		return candidate{}, false
	}
	return candidate{
		place: tztable.Place{Code: airport.IATA, Name: airport.Name},
		trans: trans,
		hits:  airport.RouteHits,
		tier:  airport.Type,
		sched: airport.Scheduled,
	}, true
}

// fillUncovered picks fallback airports for every standard offset that
// exists in the database but gained no ranked airport. Scheduled
// service fields win, capped per size tier; an offset with no
// scheduled service at all still gets its single busiest airport so
// the offset is represented.
func (b *Builder) fillUncovered(db map[string]*airports.Airport, covered map[int]bool) []candidate {
	byOffset := make(map[int][]candidate)
	for _, airport := range db {
		cand, ok := b.resolve(airport)
		if !ok {
			continue
		}
		if covered[cand.trans.StdOffset] {
			continue
		}
		byOffset[cand.trans.StdOffset] = append(byOffset[cand.trans.StdOffset], cand)
	}

	offsets := make([]int, 0, len(byOffset))
	for offset := range byOffset {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)

	var fallbacks []candidate
	for _, offset := range offsets {
		group := byOffset[offset]
		sort.Slice(group, func(i, j int) bool {
			if group[i].hits != group[j].hits {
				return group[i].hits > group[j].hits
			}
			return group[i].place.Code < group[j].place.Code
		})

		quota := map[string]int{
			"large_airport":  b.cfg.Tiers.Large,
			"medium_airport": b.cfg.Tiers.Medium,
			"small_airport":  b.cfg.Tiers.Small,
		}
		taken := 0
		for _, cand := range group {
			if !cand.sched || quota[cand.tier] <= 0 {
				continue
			}
			quota[cand.tier]--
			fallbacks = append(fallbacks, cand)
			taken++
		}
		if taken == 0 {
			// Nothing scheduled here. Keep the busiest field anyway.
			fallbacks = append(fallbacks, group[0])
			taken = 1
		}
		b.logger.Debug("filled uncovered offset", "offset", offset, "airports", taken)
	}
	return fallbacks
}

// assemble groups candidates by variant tuple and builds the table.
// Grouping preserves first-appearance order so ranked airports stay
// ahead of fallbacks within a variant when the per-variant cap bites.
func (b *Builder) assemble(picks []candidate) (*tztable.Table, error) {
	type bucket struct {
		trans  tzscan.Transitions
		places []tztable.Place
	}
	index := make(map[tzscan.Transitions]int)
	var buckets []bucket
	for _, cand := range picks {
		i, found := index[cand.trans]
		if !found {
			i = len(buckets)
			index[cand.trans] = i
			buckets = append(buckets, bucket{trans: cand.trans})
		}
		if b.cfg.MaxBucket > 0 && len(buckets[i].places) >= b.cfg.MaxBucket {
			continue
		}
		buckets[i].places = append(buckets[i].places, cand.place)
	}

	table := tztable.New()
	for _, bk := range buckets {
		v := tztable.Variant{
			StdOffset: bk.trans.StdOffset,
			DSTOffset: bk.trans.DSTOffset,
			DSTStart:  bk.trans.DSTStart,
			DSTEnd:    bk.trans.DSTEnd,
		}
		if err := table.Add(v, bk.places); err != nil {
			return nil, fmt.Errorf("adding variant at offset %d: %w", bk.trans.StdOffset, err)
		}
	}
	table.Prune()
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("built table failed validation: %w", err)
	}
	b.logger.Info("table assembled",
		"variants", table.VariantCount(), "places", table.PlaceCount())
	return table, nil
}
