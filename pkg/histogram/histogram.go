// Package histogram renders a terminal histogram of how many places a
// variant table carries at each standard UTC offset, so thin spots in
// the coverage stand out at a glance.
package histogram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

const barWidth = 40

type bucket struct {
	offset   int
	places   int
	daylight bool
}

// Coverage returns a bar chart of place counts per standard offset.
// Offsets where at least one variant observes daylight saving are
// marked with an asterisk.
func Coverage(table *tztable.Table) string {
	byOffset := make(map[int]*bucket)
	for i, v := range table.Variants() {
		b, found := byOffset[v.StdOffset]
		if !found {
			b = &bucket{offset: v.StdOffset}
			byOffset[v.StdOffset] = b
		}
		b.places += table.PlaceCountOf(i)
		if v.DSTStart != 0 || v.DSTEnd != 0 {
			b.daylight = true
		}
	}

	buckets := make([]*bucket, 0, len(byOffset))
	maxPlaces := 0
	for _, b := range byOffset {
		buckets = append(buckets, b)
		if b.places > maxPlaces {
			maxPlaces = b.places
		}
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].offset < buckets[j].offset })

	var out strings.Builder
	out.WriteString("Offset coverage\n")
	out.WriteString(strings.Repeat("─", 50) + "\n")
	if maxPlaces == 0 {
		out.WriteString("no places\n")
		return out.String()
	}

	bar := color.New(color.FgCyan)
	daylight := color.New(color.FgYellow)
	for _, b := range buckets {
		width := b.places * barWidth / maxPlaces
		if width == 0 {
			width = 1
		}
		mark := " "
		if b.daylight {
			mark = daylight.Sprint("*")
		}
		fmt.Fprintf(&out, "%s %s %s %d\n",
			formatOffset(b.offset), mark, bar.Sprint(strings.Repeat("█", width)), b.places)
	}
	fmt.Fprintf(&out, "%d offsets, %d places, * observes daylight saving\n",
		len(buckets), table.PlaceCount())
	return out.String()
}

func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, seconds/3600, seconds%3600/60)
}
