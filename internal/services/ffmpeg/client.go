package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"subgen/internal/logging"
	"subgen/internal/services"
)

// Client defines audio extraction behaviour.
type Client interface {
	// ExtractAudio decodes the selected audio stream of input into an mp3 at
	// output, overwriting any existing file.
	ExtractAudio(ctx context.Context, input, output string, audioTrack int) error
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

// WithBitrate overrides the default output bitrate.
func WithBitrate(bitrate string) Option {
	return func(c *CLI) {
		if bitrate != "" {
			c.bitrate = bitrate
		}
	}
}

// WithRunner overrides the subprocess runner. Tests use this to capture
// arguments without spawning ffmpeg.
func WithRunner(runner services.CommandRunner) Option {
	return func(c *CLI) {
		if runner != nil {
			c.run = runner
		}
	}
}

// CLI wraps the ffmpeg command-line decoder.
type CLI struct {
	binary  string
	bitrate string
	run     services.CommandRunner
	logger  *slog.Logger
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(logger *slog.Logger, opts ...Option) *CLI {
	cli := &CLI{
		binary:  "ffmpeg",
		bitrate: "192k",
		run:     services.RunCommand,
		logger:  logging.NewComponentLogger(logger, "ffmpeg"),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// ExtractAudio implements Client.
func (c *CLI) ExtractAudio(ctx context.Context, input, output string, audioTrack int) error {
	if input == "" {
		return errors.New("input path required")
	}
	if output == "" {
		return errors.New("output path required")
	}
	if audioTrack < 0 {
		return services.Wrap(services.ErrValidation, "ffmpeg", "extract audio", fmt.Sprintf("invalid audio track %d", audioTrack), nil)
	}

	args := []string{"-y", "-i", input}
	args = append(args, "-map", fmt.Sprintf("0:a:%d", audioTrack))
	args = append(args,
		"-acodec", "libmp3lame",
		"-ab", c.bitrate,
		"-vn",
		output,
	)

	c.logger.Info("extracting audio",
		logging.String("input", input),
		logging.String("output", output),
		logging.Int("audio_track", audioTrack))

	if err := c.run(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("transcode %s: %w", filepath.Base(input), err)
	}
	return nil
}

// AudioPath returns the derived mp3 path for a media file: the extension
// swapped for .mp3 alongside the source.
func AudioPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".mp3"
}

var _ Client = (*CLI)(nil)
