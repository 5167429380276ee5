// Package render formats selection results for the terminal display.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/noonTZ/pkg/selector"
)

// Placeholder is shown while no timezone has reached the target yet.
const Placeholder = "Wait..."

// ErrMarker is shown if a selected variant's place range turns out to
// be broken. Table construction makes this unreachable; the marker
// exists so a violation degrades to a fixed string instead of a crash.
const ErrMarker = "ERR:NAME"

// Line renders the one-line display contract: "CODE:MM:SS", or the
// placeholder / error marker.
func Line(res selector.TickResult) string {
	switch {
	case res.Corrupt:
		return ErrMarker
	case !res.Found:
		return Placeholder
	default:
		return fmt.Sprintf("%s:%02d:%02d", res.Place.Code, res.Minutes, res.Seconds)
	}
}

// Clock colors, kept muted so the hero line stands out.
var (
	heroCode  = color.New(color.FgHiYellow, color.Bold)
	heroTime  = color.New(color.FgHiWhite, color.Bold)
	placeName = color.New(color.FgCyan)
	auxLabel  = color.New(color.FgHiBlack)
	auxValue  = color.New(color.FgWhite)
	waiting   = color.New(color.FgHiBlack, color.Italic)
)

// Frame is one rendered screen of the watch loop: the hero
// closest-to-target line plus optional auxiliary clock lines.
type Frame struct {
	lines []string
}

// NewFrame starts a frame from the selection result.
func NewFrame(res selector.TickResult) *Frame {
	f := &Frame{}
	switch {
	case res.Corrupt:
		f.lines = append(f.lines, heroCode.Sprint(ErrMarker))
	case !res.Found:
		f.lines = append(f.lines, waiting.Sprint(Placeholder))
	default:
		f.lines = append(f.lines, fmt.Sprintf("%s %s  %s",
			heroCode.Sprint(res.Place.Code),
			heroTime.Sprintf("%02d:%02d", res.Minutes, res.Seconds),
			placeName.Sprint(res.Place.Name)))
	}
	return f
}

// AddAux appends a labeled auxiliary clock line.
func (f *Frame) AddAux(label, value string) *Frame {
	f.lines = append(f.lines, fmt.Sprintf("%s %s", auxLabel.Sprintf("%-8s", label), auxValue.Sprint(value)))
	return f
}

// String joins the frame's lines.
func (f *Frame) String() string {
	return strings.Join(f.lines, "\n")
}
