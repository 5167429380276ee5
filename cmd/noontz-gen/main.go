// Package main implements noontz-gen, the builder that turns public
// airport datasets and a saved busiest-airports page into the binary
// variant table the noontz clock consumes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// The builder needs transition data for every zone it scans, even
	// on hosts with no system zone database.
	_ "time/tzdata"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/noonTZ/pkg/airports"
	"github.com/codeGROOVE-dev/noonTZ/pkg/bucketer"
)

var (
	htmlPath  = flag.String("html", "", "Path to a saved busiest-airports ranking page (required)")
	outPath   = flag.String("out", "noontz.tbl", "Output table path")
	top       = flag.Int("top", 100, "Ranked airports admitted per standard offset (0 = all)")
	maxBucket = flag.Int("max-bucket", 16, "Max places per variant (0 = unlimited)")
	year      = flag.Int("year", time.Now().UTC().Year(), "Year to compute daylight windows for")
	cacheDir  = flag.String("cache-dir", "", "Download cache directory (or set CACHE_DIR)")
	noCache   = flag.Bool("no-cache", false, "Disable the download cache")
	offline   = flag.Bool("offline", false, "Use only cached downloads, never the network")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if *htmlPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -html <ranking.html> [flags]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := generate(logger); err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func generate(logger *slog.Logger) error {
	htmlFile, err := os.Open(*htmlPath)
	if err != nil {
		return fmt.Errorf("opening ranking page: %w", err)
	}
	ranked, err := airports.ParseRanking(htmlFile)
	if closeErr := htmlFile.Close(); closeErr != nil {
		logger.Debug("closing ranking page", "error", closeErr)
	}
	if err != nil {
		return err
	}
	logger.Info("ranking parsed", "airports", len(ranked))

	cache, err := openCache(logger)
	if err != nil {
		return err
	}
	fetcher := airports.NewFetcher(cache, logger)
	fetcher.Offline = *offline

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := airports.LoadDatabase(ctx, fetcher, logger)
	if err != nil {
		return err
	}
	if cache != nil {
		if err := cache.Save(); err != nil {
			logger.Warn("failed to persist download cache", "error", err)
		}
	}

	builder := bucketer.New(bucketer.Config{
		Year:      *year,
		Top:       *top,
		MaxBucket: *maxBucket,
		Logger:    logger,
	})
	table, err := builder.Build(ranked, db)
	if err != nil {
		return err
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := table.Encode(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing table: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	ok := color.New(color.FgGreen, color.Bold)
	fmt.Printf("%s wrote %s for %d: %d variants, %d places\n",
		ok.Sprint("✓"), *outPath, *year, table.VariantCount(), table.PlaceCount())
	return nil
}

func openCache(logger *slog.Logger) (*airports.Cache, error) {
	if *noCache {
		return nil, nil
	}
	dir := *cacheDir
	if dir == "" {
		dir = os.Getenv("CACHE_DIR")
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			logger.Warn("no cache directory available, caching disabled", "error", err)
			return nil, nil
		}
		dir = filepath.Join(base, "noontz")
	}
	cache, err := airports.NewCache(dir, airports.DefaultTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return cache, nil
}
