package tztable

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// On-wire layout, little-endian:
//
//	header: magic "NTZ1", version uint16, variant count uint16,
//	        place count uint16, reserved uint16, name pool bytes uint32
//	per variant: std offset int8 (quarter hours), dst offset int8,
//	        dst start int64, dst end int64, place offset uint16,
//	        place count uint16
//	code pool: place count x uint16 (bit-packed)
//	name pool: place count NUL-terminated strings
//
// The header's own counts are the round-trip contract: Decode fails if
// the body does not supply exactly what the header promises.

var magic = [4]byte{'N', 'T', 'Z', '1'}

const formatVersion = 1

type header struct {
	Magic     [4]byte
	Version   uint16
	Variants  uint16
	Places    uint16
	Reserved  uint16
	NameBytes uint32
}

type record struct {
	StdQuarters int8
	DSTQuarters int8
	DSTStart    int64
	DSTEnd      int64
	PlaceOffset uint16
	PlaceCount  uint16
}

// Encode writes the table in its binary form. Pools beyond the wire
// format's 16-bit counts cannot be represented and are rejected rather
// than silently truncated.
func (t *Table) Encode(w io.Writer) error {
	const maxPool = 1<<16 - 1
	if len(t.variants) > maxPool {
		return fmt.Errorf("%d variants exceed the format limit of %d", len(t.variants), maxPool)
	}
	if len(t.codes) > maxPool {
		return fmt.Errorf("%d places exceed the format limit of %d", len(t.codes), maxPool)
	}

	var namePool bytes.Buffer
	for _, name := range t.names {
		namePool.WriteString(name)
		namePool.WriteByte(0)
	}

	bw := bufio.NewWriter(w)
	h := header{
		Magic:     magic,
		Version:   formatVersion,
		Variants:  uint16(len(t.variants)),
		Places:    uint16(len(t.codes)),
		NameBytes: uint32(namePool.Len()),
	}
	if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, v := range t.variants {
		rec := record{
			StdQuarters: int8(v.StdOffset / QuarterHour),
			DSTQuarters: int8(v.DSTOffset / QuarterHour),
			DSTStart:    v.DSTStart,
			DSTEnd:      v.DSTEnd,
			PlaceOffset: uint16(v.placeOffset),
			PlaceCount:  uint16(v.placeCount),
		}
		if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("writing variant record: %w", err)
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, t.codes); err != nil {
		return fmt.Errorf("writing code pool: %w", err)
	}
	if _, err := bw.Write(namePool.Bytes()); err != nil {
		return fmt.Errorf("writing name pool: %w", err)
	}
	return bw.Flush()
}

// Decode reads a table back from its binary form and validates it.
// This runs in a tool environment where load-time validation is cheap,
// so unlike the embedded original the loader re-checks every invariant
// instead of trusting the producer.
func Decode(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("bad magic %q", h.Magic[:])
	}
	if h.Version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", h.Version)
	}

	t := New()
	t.variants = make([]Variant, h.Variants)
	for i := range t.variants {
		var rec record
		if err := binary.Read(br, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("reading variant %d: %w", i, err)
		}
		v := Variant{
			StdOffset:   int(rec.StdQuarters) * QuarterHour,
			DSTOffset:   int(rec.DSTQuarters) * QuarterHour,
			DSTStart:    rec.DSTStart,
			DSTEnd:      rec.DSTEnd,
			placeOffset: int(rec.PlaceOffset),
			placeCount:  int(rec.PlaceCount),
		}
		if !validOffset(v.StdOffset) || !validOffset(v.DSTOffset) {
			return nil, fmt.Errorf("variant %d: offsets (%d, %d) out of range", i, v.StdOffset, v.DSTOffset)
		}
		if (v.DSTStart == 0) != (v.DSTEnd == 0) {
			return nil, fmt.Errorf("variant %d: half-open DST window", i)
		}
		t.variants[i] = v
	}

	t.codes = make([]uint16, h.Places)
	if err := binary.Read(br, binary.LittleEndian, t.codes); err != nil {
		return nil, fmt.Errorf("reading code pool: %w", err)
	}

	namePool := make([]byte, h.NameBytes)
	if _, err := io.ReadFull(br, namePool); err != nil {
		return nil, fmt.Errorf("reading name pool: %w", err)
	}
	t.names = make([]string, 0, h.Places)
	for rest := namePool; len(t.names) < int(h.Places); {
		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, fmt.Errorf("name pool truncated: %d of %d names", len(t.names), h.Places)
		}
		t.names = append(t.names, string(rest[:nul]))
		rest = rest[nul+1:]
	}

	for _, packed := range t.codes {
		if t.seen[packed] {
			return nil, fmt.Errorf("code %s appears in more than one place", UnpackCode(packed))
		}
		t.seen[packed] = true
	}
	t.reindex()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("table failed validation: %w", err)
	}
	return t, nil
}
