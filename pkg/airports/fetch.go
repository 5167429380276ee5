package airports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const maxSourceBytes = 32 << 20 // largest upstream file is well under 16 MB

// Fetcher downloads builder source files with retries and an optional
// disk-backed cache. When Offline is set it serves cached bytes only
// and fails on a miss rather than touching the network.
type Fetcher struct {
	client  *http.Client
	cache   *Cache
	logger  *slog.Logger
	Offline bool
}

// NewFetcher returns a Fetcher. The cache may be nil, in which case
// every Get hits the network.
func NewFetcher(cache *Cache, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 60 * time.Second},
		cache:  cache,
		logger: logger,
	}
}

// Get returns the body of url, from cache when fresh.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(url); ok {
			return data, nil
		}
	}
	if f.Offline {
		return nil, fmt.Errorf("offline and %s not in cache", url)
	}

	data, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		f.cache.Set(url, data)
	}
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			resp, err := f.client.Do(req)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", url, err)
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					f.logger.Debug("closing response body", "error", err)
				}
			}()

			if resp.StatusCode != http.StatusOK {
				err := fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
				// Client errors other than rate limiting will not
				// succeed on retry.
				if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body, err = io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
			if err != nil {
				return fmt.Errorf("reading %s: %w", url, err)
			}
			return nil
		},
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.MaxDelay(2*time.Minute),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("retrying download", "url", url, "attempt", n+1, "error", err)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("downloaded", "url", url, "size", len(body))
	return body, nil
}
