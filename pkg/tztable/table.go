// Package tztable holds the timezone variant table consumed by the
// closest-to-target selector. A variant is one distinct DST behavior
// pattern for the evaluation year: (standard offset, DST offset, DST
// start instant, DST end instant). Each variant owns a range of places
// in a shared flat pool. The table is built once, offline, and is
// read-only for the life of the running program.
package tztable

import (
	"fmt"
)

const (
	// QuarterHour is the offset granularity in seconds. Every real-world
	// UTC offset is a whole number of quarter hours.
	QuarterHour = 900

	// MaxOffsetSeconds bounds valid offsets to roughly ±16 hours.
	MaxOffsetSeconds = 16 * 3600

	// DaySeconds is the length of a day in seconds.
	DaySeconds = 86400
)

// Place is a short code plus a human-readable display name. Immutable
// once the table is built.
type Place struct {
	Code string
	Name string
}

// Variant describes one DST behavior bucket for the evaluation year.
// DSTStart and DSTEnd are UTC epoch seconds; both zero means the zone
// never observes DST this year. DSTStart > DSTEnd is the southern
// hemisphere case where the DST window wraps the year rollover.
type Variant struct {
	StdOffset int   // seconds east of UTC when DST is inactive
	DSTOffset int   // seconds east of UTC when DST is active
	DSTStart  int64 // UTC instant DST begins, 0 if none
	DSTEnd    int64 // UTC instant DST ends, 0 if none

	placeOffset int
	placeCount  int
}

// DSTActive reports whether DST is in effect for this variant at the
// given UTC instant. The wraparound window is kept as an explicit
// branch rather than normalized away.
func (v Variant) DSTActive(nowUTC int64) bool {
	if v.DSTStart == 0 && v.DSTEnd == 0 {
		return false
	}
	if v.DSTStart <= v.DSTEnd {
		return nowUTC >= v.DSTStart && nowUTC < v.DSTEnd
	}
	return nowUTC >= v.DSTStart || nowUTC < v.DSTEnd
}

// OffsetAt returns the UTC offset in seconds that applies at the given
// UTC instant.
func (v Variant) OffsetAt(nowUTC int64) int {
	if v.DSTActive(nowUTC) {
		return v.DSTOffset
	}
	return v.StdOffset
}

// LocalSecondsOfDay returns the variant's local clock reading at the
// given UTC instant as seconds since local midnight, normalized to
// [0, 86400) for negative offsets.
func (v Variant) LocalSecondsOfDay(nowUTC int64) int {
	utcSeconds := int(nowUTC % DaySeconds)
	local := (utcSeconds + v.OffsetAt(nowUTC)) % DaySeconds
	if local < 0 {
		local += DaySeconds
	}
	return local
}

// key is the 4-tuple the table is keyed by. Two variants never share it.
type key struct {
	std, dst int
	start    int64
	end      int64
}

// Table is the variant list plus the shared place pool. Codes are
// stored bit-packed (5 bits per letter) next to a parallel name slice,
// mirroring the on-wire layout.
type Table struct {
	variants []Variant
	index    map[key]int
	seen     map[uint16]bool
	codes    []uint16
	names    []string
}

// New returns an empty table ready for construction.
func New() *Table {
	return &Table{
		index: make(map[key]int),
		seen:  make(map[uint16]bool),
	}
}

// normalize applies the no-DST collapse: offsets closer than a minute
// are the same offset, and the transition instants are cleared.
func normalize(v Variant) Variant {
	diff := v.StdOffset - v.DSTOffset
	if diff < 0 {
		diff = -diff
	}
	if diff < 60 {
		v.DSTOffset = v.StdOffset
		v.DSTStart = 0
		v.DSTEnd = 0
	}
	return v
}

func validOffset(sec int) bool {
	return sec >= -MaxOffsetSeconds && sec <= MaxOffsetSeconds && sec%QuarterHour == 0
}

// Add inserts a variant together with its places. Variants with an
// already-known 4-tuple are merged into the existing entry. A place
// code already present anywhere in the table is skipped, keeping the
// global one-variant-per-code invariant.
func (t *Table) Add(v Variant, places []Place) error {
	v = normalize(v)
	if !validOffset(v.StdOffset) {
		return fmt.Errorf("standard offset %ds out of range or not quarter-hour aligned", v.StdOffset)
	}
	if !validOffset(v.DSTOffset) {
		return fmt.Errorf("DST offset %ds out of range or not quarter-hour aligned", v.DSTOffset)
	}
	if (v.DSTStart == 0) != (v.DSTEnd == 0) {
		return fmt.Errorf("half-open DST window [%d, %d): both instants must be set or both zero", v.DSTStart, v.DSTEnd)
	}

	k := key{std: v.StdOffset, dst: v.DSTOffset, start: v.DSTStart, end: v.DSTEnd}
	idx, exists := t.index[k]
	if !exists {
		v.placeOffset = len(t.codes)
		v.placeCount = 0
		t.variants = append(t.variants, v)
		idx = len(t.variants) - 1
		t.index[k] = idx
	}

	for _, p := range places {
		packed, err := PackCode(p.Code)
		if err != nil {
			return fmt.Errorf("place %q: %w", p.Code, err)
		}
		if t.seen[packed] {
			continue
		}
		if err := t.appendPlace(idx, packed, p.Name); err != nil {
			return err
		}
	}
	return nil
}

// appendPlace grows the pool range owned by variant idx. The pool is a
// simple arena, so appending to a variant that is not the last one
// requires shifting the later ranges.
func (t *Table) appendPlace(idx int, packed uint16, name string) error {
	v := &t.variants[idx]
	insert := v.placeOffset + v.placeCount
	t.codes = append(t.codes, 0)
	t.names = append(t.names, "")
	copy(t.codes[insert+1:], t.codes[insert:])
	copy(t.names[insert+1:], t.names[insert:])
	t.codes[insert] = packed
	t.names[insert] = name
	v.placeCount++
	t.seen[packed] = true
	for i := range t.variants {
		if i != idx && t.variants[i].placeOffset >= insert {
			t.variants[i].placeOffset++
		}
	}
	return nil
}

// VariantCount returns the number of variants in the table.
func (t *Table) VariantCount() int { return len(t.variants) }

// PlaceCount returns the total number of places in the shared pool.
func (t *Table) PlaceCount() int { return len(t.codes) }

// Variant returns the i'th variant.
func (t *Table) Variant(i int) Variant { return t.variants[i] }

// Variants returns the variant list. Callers must treat it as
// read-only.
func (t *Table) Variants() []Variant { return t.variants }

// PlacesOf returns the places owned by the i'th variant.
func (t *Table) PlacesOf(i int) []Place {
	v := t.variants[i]
	out := make([]Place, 0, v.placeCount)
	for j := 0; j < v.placeCount; j++ {
		out = append(out, Place{
			Code: UnpackCode(t.codes[v.placeOffset+j]),
			Name: t.names[v.placeOffset+j],
		})
	}
	return out
}

// PlaceAt returns the j'th place of the i'th variant without
// materializing the whole list.
func (t *Table) PlaceAt(i, j int) (Place, bool) {
	v := t.variants[i]
	if j < 0 || j >= v.placeCount {
		return Place{}, false
	}
	pool := v.placeOffset + j
	if pool >= len(t.codes) {
		return Place{}, false
	}
	return Place{Code: UnpackCode(t.codes[pool]), Name: t.names[pool]}, true
}

// PlaceCountOf returns how many places the i'th variant owns.
func (t *Table) PlaceCountOf(i int) int { return t.variants[i].placeCount }

// Prune drops variants that ended up with no places. Table
// construction guarantees the selector never sees an empty variant.
func (t *Table) Prune() {
	kept := t.variants[:0]
	for _, v := range t.variants {
		if v.placeCount > 0 {
			kept = append(kept, v)
		}
	}
	t.variants = kept
	t.reindex()
}

func (t *Table) reindex() {
	t.index = make(map[key]int, len(t.variants))
	for i, v := range t.variants {
		t.index[key{std: v.StdOffset, dst: v.DSTOffset, start: v.DSTStart, end: v.DSTEnd}] = i
	}
}

// Validate checks the construction invariants: unique 4-tuples,
// non-empty place lists, in-bounds pool ranges, and offsets equal when
// the variant observes no DST.
func (t *Table) Validate() error {
	tuples := make(map[key]bool, len(t.variants))
	for i, v := range t.variants {
		k := key{std: v.StdOffset, dst: v.DSTOffset, start: v.DSTStart, end: v.DSTEnd}
		if tuples[k] {
			return fmt.Errorf("variant %d duplicates tuple (%d, %d, %d, %d)", i, v.StdOffset, v.DSTOffset, v.DSTStart, v.DSTEnd)
		}
		tuples[k] = true
		if v.placeCount == 0 {
			return fmt.Errorf("variant %d has no places", i)
		}
		if v.placeOffset < 0 || v.placeOffset+v.placeCount > len(t.codes) {
			return fmt.Errorf("variant %d place range [%d, %d) outside pool of %d", i, v.placeOffset, v.placeOffset+v.placeCount, len(t.codes))
		}
		if v.DSTStart == 0 && v.DSTEnd == 0 && v.StdOffset != v.DSTOffset {
			return fmt.Errorf("variant %d has distinct offsets but no DST window", i)
		}
	}
	if len(t.codes) != len(t.names) {
		return fmt.Errorf("code pool (%d) and name pool (%d) lengths differ", len(t.codes), len(t.names))
	}
	return nil
}
