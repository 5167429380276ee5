package airports

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/maypok86/otter/v2"
)

// DefaultTTL is how long fetched source files stay fresh. The upstream
// datasets change on the order of weeks; a day keeps repeated builder
// runs off the network without hiding updates for long.
const DefaultTTL = 24 * time.Hour

type cacheEntry struct {
	ExpiresAt time.Time
	Data      []byte
}

// Cache is a disk-persisted byte cache for downloaded source files.
// Unlike a long-running service cache there is no background saver:
// the builder is a batch tool, so callers persist once with Save when
// the run ends.
type Cache struct {
	cache  *otter.Cache[string, cacheEntry]
	logger *slog.Logger
	dir    string
	ttl    time.Duration
}

// NewCache opens (or creates) a cache directory and loads any
// previously persisted entries that are still fresh.
func NewCache(dir string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	c := &Cache{
		cache: otter.Must(&otter.Options[string, cacheEntry]{
			MaximumSize: 64,
		}),
		logger: logger,
		dir:    dir,
		ttl:    ttl,
	}
	if err := c.loadFromDisk(); err != nil {
		logger.Warn("failed to load fetch cache", "error", err)
	}
	return c, nil
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached bytes for a URL if present and unexpired.
func (c *Cache) Get(url string) ([]byte, bool) {
	entry, found := c.cache.GetIfPresent(cacheKey(url))
	if !found {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		c.cache.Invalidate(cacheKey(url))
		return nil, false
	}
	c.logger.Debug("fetch cache hit", "url", url, "size", len(entry.Data))
	return entry.Data, true
}

// Set stores the bytes for a URL.
func (c *Cache) Set(url string, data []byte) {
	c.cache.Set(cacheKey(url), cacheEntry{
		ExpiresAt: time.Now().Add(c.ttl),
		Data:      data,
	})
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, "sources.gob")
}

func (c *Cache) loadFromDisk() error {
	file, err := os.Open(c.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.Debug("closing cache file", "error", err)
		}
	}()

	var entries map[string]cacheEntry
	if err := gob.NewDecoder(file).Decode(&entries); err != nil {
		return fmt.Errorf("decoding cache file: %w", err)
	}
	now := time.Now()
	kept := 0
	for key, entry := range entries {
		if now.Before(entry.ExpiresAt) {
			c.cache.Set(key, entry)
			kept++
		}
	}
	c.logger.Debug("fetch cache loaded", "entries", len(entries), "fresh", kept)
	return nil
}

// Save persists the cache to disk via a temp-file rename.
func (c *Cache) Save() error {
	entries := make(map[string]cacheEntry)
	for key, entry := range c.cache.All() {
		entries[key] = entry
	}

	tmp := c.path() + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	if err := gob.NewEncoder(file).Encode(entries); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("closing cache temp file: %w", err)
	}
	if err := os.Rename(tmp, c.path()); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}
	c.logger.Debug("fetch cache saved", "entries", len(entries))
	return nil
}
