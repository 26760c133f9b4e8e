package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"subgen/internal/fileutil"
	"subgen/internal/logging"
	"subgen/internal/services"
)

// Client defines remote media fetch behaviour.
type Client interface {
	// Fetch downloads the media behind url and returns the local file path.
	Fetch(ctx context.Context, url string) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithIncludeVideo downloads bestvideo+bestaudio instead of bestaudio only.
func WithIncludeVideo(include bool) Option {
	return func(c *CLI) {
		c.includeVideo = include
	}
}

// WithRunner overrides the capture runner. Tests use this to fake downloads.
func WithRunner(runner services.CaptureRunner) Option {
	return func(c *CLI) {
		if runner != nil {
			c.capture = runner
		}
	}
}

// CLI wraps the yt-dlp command-line downloader.
type CLI struct {
	binary       string
	downloadDir  string
	includeVideo bool
	capture      services.CaptureRunner
	logger       *slog.Logger
}

// NewCLI constructs a CLI client downloading into downloadDir.
func NewCLI(downloadDir string, logger *slog.Logger, opts ...Option) *CLI {
	cli := &CLI{
		binary:      "yt-dlp",
		downloadDir: downloadDir,
		capture:     services.RunCommandCapture,
		logger:      logging.NewComponentLogger(logger, "ytdlp"),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Fetch implements Client. The download lands in a per-call staging
// directory first so a failed or interrupted transfer never leaves partial
// files in the download directory; the finished file is then moved into
// place under its sanitized name.
func (c *CLI) Fetch(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New("url required")
	}
	if strings.TrimSpace(c.downloadDir) == "" {
		return "", services.Wrap(services.ErrConfiguration, "ytdlp", "fetch", "download directory not configured", nil)
	}

	staging := filepath.Join(c.downloadDir, ".staging-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	format := "bestaudio"
	if c.includeVideo {
		format = "bestvideo+bestaudio"
	}

	args := []string{
		"-f", format,
		"--no-playlist",
		"--restrict-filenames",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-o", filepath.Join(staging, "%(title)s.%(ext)s"),
		url,
	}

	c.logger.Info("downloading remote media",
		logging.String("url", url),
		logging.String("format", format))

	stdout, err := c.capture(ctx, c.binary, args...)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	staged := lastLine(stdout)
	if staged == "" {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "fetch", "downloader reported no output file", nil)
	}

	final := filepath.Join(c.downloadDir, filepath.Base(staged))
	if err := fileutil.MoveFile(staged, final); err != nil {
		return "", fmt.Errorf("move download into place: %w", err)
	}

	c.logger.Info("download complete", logging.String("path", final))
	return final, nil
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ Client = (*CLI)(nil)
