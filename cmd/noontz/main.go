// Package main implements the noontz CLI, a terminal clock that shows
// the airport whose local time most recently passed a target time of
// day, alongside a few alternative clocks.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/noonTZ/pkg/beat"
	"github.com/codeGROOVE-dev/noonTZ/pkg/decimal"
	"github.com/codeGROOVE-dev/noonTZ/pkg/histogram"
	"github.com/codeGROOVE-dev/noonTZ/pkg/noonzone"
	"github.com/codeGROOVE-dev/noonTZ/pkg/render"
	"github.com/codeGROOVE-dev/noonTZ/pkg/selector"
	"github.com/codeGROOVE-dev/noonTZ/pkg/tid"
	"github.com/codeGROOVE-dev/noonTZ/pkg/tztable"
)

var (
	tablePath = flag.String("table", "", "Path to a binary variant table (defaults to the built-in table)")
	target    = flag.String("target", "12:00", "Target local time of day, HH:MM or HH:MM:SS")
	once      = flag.Bool("once", false, "Print a single frame and exit")
	all       = flag.Bool("all", false, "Dump every variant and place in the table, then exit")
	noColor   = flag.Bool("no-color", false, "Disable colored output")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if *noColor {
		color.NoColor = true
	}

	table, err := loadTable(logger)
	if err != nil {
		logger.Error("failed to load table", "error", err)
		os.Exit(1)
	}

	if *all {
		dumpTable(table)
		return
	}

	targetSeconds, err := parseTarget(*target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -target: %v\n", err)
		os.Exit(1)
	}

	run(table, targetSeconds, logger)
}

func loadTable(logger *slog.Logger) (*tztable.Table, error) {
	if *tablePath == "" {
		logger.Debug("using built-in table")
		return tztable.Default(), nil
	}
	file, err := os.Open(*tablePath)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Debug("closing table file", "error", err)
		}
	}()
	table, err := tztable.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", *tablePath, err)
	}
	logger.Debug("table loaded", "path", *tablePath,
		"variants", table.VariantCount(), "places", table.PlaceCount())
	return table, nil
}

// parseTarget converts HH:MM or HH:MM:SS to seconds of day.
func parseTarget(s string) (int, error) {
	var h, m, sec int
	switch strings.Count(s, ":") {
	case 1:
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("want HH:MM, got %q", s)
		}
	case 2:
		if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
			return 0, fmt.Errorf("want HH:MM:SS, got %q", s)
		}
	default:
		return 0, fmt.Errorf("want HH:MM or HH:MM:SS, got %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return h*3600 + m*60 + sec, nil
}

func run(table *tztable.Table, targetSeconds int, logger *slog.Logger) {
	sched := selector.New(table)
	beats := beat.NewClock()
	ids := tid.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))

	printFrame := func(now time.Time) {
		utc := now.Unix()
		res := sched.Tick(utc, targetSeconds)
		frame := render.NewFrame(res)
		text, _ := beats.Update(utc)
		frame.AddAux("beat", text)
		frame.AddAux("zone", noonzone.Format(utc))
		frame.AddAux("dec", decimal.Format(utc))
		frame.AddAux("tid", ids.Next(utc, now.Nanosecond()/1e6))
		fmt.Println(frame.String())
	}

	now := time.Now().UTC()
	printFrame(now)
	if *once {
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			printFrame(now.UTC())
		case <-sig:
			logger.Debug("shutting down")
			return
		}
	}
}

func dumpTable(table *tztable.Table) {
	offset := color.New(color.FgCyan, color.Bold)
	window := color.New(color.Faint)
	for i, v := range table.Variants() {
		label := fmt.Sprintf("UTC%+05.1f", float64(v.StdOffset)/3600)
		if v.DSTStart != 0 || v.DSTEnd != 0 {
			fmt.Printf("%s %s\n", offset.Sprint(label),
				window.Sprintf("dst UTC%+05.1f from %d until %d",
					float64(v.DSTOffset)/3600, v.DSTStart, v.DSTEnd))
		} else {
			fmt.Println(offset.Sprint(label))
		}
		for _, p := range table.PlacesOf(i) {
			fmt.Printf("  %s  %s\n", p.Code, p.Name)
		}
	}
	fmt.Printf("%d variants, %d places\n\n", table.VariantCount(), table.PlaceCount())
	fmt.Print(histogram.Coverage(table))
}
