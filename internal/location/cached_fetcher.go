package location

import (
	"context"
	"log/slog"
	"os"

	"subgen/internal/logging"
)

// DownloadJournal records where remote URLs were previously fetched to.
// The history store implements it.
type DownloadJournal interface {
	LookupDownload(ctx context.Context, url string) (string, bool, error)
	StoreDownload(ctx context.Context, url, path string) error
}

// CachedFetcher wraps a Fetcher with journal-backed reuse: a URL already
// fetched is served from disk when its file still exists. Force disables
// reuse but still records fresh downloads.
type CachedFetcher struct {
	fetcher Fetcher
	journal DownloadJournal
	force   bool
	logger  *slog.Logger
}

// NewCachedFetcher builds the caching wrapper. A nil journal degrades to
// pass-through fetching.
func NewCachedFetcher(fetcher Fetcher, journal DownloadJournal, force bool, logger *slog.Logger) *CachedFetcher {
	return &CachedFetcher{
		fetcher: fetcher,
		journal: journal,
		force:   force,
		logger:  logging.NewComponentLogger(logger, "fetch-cache"),
	}
}

// Fetch implements Fetcher.
func (c *CachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if c.journal != nil && !c.force {
		path, found, err := c.journal.LookupDownload(ctx, url)
		if err != nil {
			c.logger.Warn("download journal lookup failed", logging.String("url", url), logging.Error(err))
		} else if found {
			if _, statErr := os.Stat(path); statErr == nil {
				c.logger.Info("reusing previously downloaded media",
					logging.String("url", url),
					logging.String("path", path))
				return path, nil
			}
		}
	}

	path, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if c.journal != nil {
		if err := c.journal.StoreDownload(ctx, url, path); err != nil {
			c.logger.Warn("download journal store failed", logging.String("url", url), logging.Error(err))
		}
	}
	return path, nil
}
