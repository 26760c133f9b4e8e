package whisperx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	langpkg "subgen/internal/language"
	"subgen/internal/logging"
	"subgen/internal/services"
)

// Options captures runtime settings for WhisperX invocations.
type Options struct {
	// Model is the WhisperX model to use (e.g., "small", "large-v3").
	Model string
	// OutputFormat is one of srt, vtt, txt, tsv, json, aud.
	OutputFormat string
	// Language is an optional hint; empty auto-detects.
	Language string
	// Device is "cpu" or "cuda".
	Device string
	// ComputeType is the precision (e.g., "int8", "float16").
	ComputeType string
	// OutputDir receives the subtitle file. Empty writes it next to the audio.
	OutputDir string
}

// Client defines transcription behaviour.
type Client interface {
	// Transcribe produces a subtitle file for the audio and returns its path.
	Transcribe(ctx context.Context, audioPath string) (string, error)
	// OutputPath returns where Transcribe would write the subtitle file.
	OutputPath(audioPath string) string
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

// WithRunner overrides the subprocess runner for tests.
func WithRunner(runner services.CommandRunner) Option {
	return func(c *CLI) {
		if runner != nil {
			c.run = runner
		}
	}
}

// CLI wraps the WhisperX command-line transcription engine.
type CLI struct {
	binary string
	opts   Options
	run    services.CommandRunner
	logger *slog.Logger
}

// NewCLI constructs a CLI client using the provided options.
func NewCLI(opts Options, logger *slog.Logger, options ...Option) *CLI {
	cli := &CLI{
		binary: "whisperx",
		opts:   opts,
		run:    services.RunCommand,
		logger: logging.NewComponentLogger(logger, "whisperx"),
	}
	for _, opt := range options {
		opt(cli)
	}
	return cli
}

// OutputPath implements Client.
func (c *CLI) OutputPath(audioPath string) string {
	outputDir := c.opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	base := filepath.Base(audioPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"."+c.opts.OutputFormat)
}

// Transcribe implements Client.
func (c *CLI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", errors.New("audio path required")
	}

	outputDir := c.opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	outputFile := c.OutputPath(audioPath)

	args := c.buildArgs(audioPath, outputDir)

	c.logger.Info("transcribing",
		logging.String("audio", audioPath),
		logging.String("model", c.opts.Model),
		logging.String("output", outputFile))

	if err := c.run(ctx, c.binary, args...); err != nil {
		return "", fmt.Errorf("transcribe %s: %w", filepath.Base(audioPath), err)
	}
	return outputFile, nil
}

func (c *CLI) buildArgs(audioPath, outputDir string) []string {
	args := make([]string, 0, 16)
	args = append(args,
		"--model", c.opts.Model,
		"--output_format", c.opts.OutputFormat,
	)
	if lang := langpkg.ToISO2(c.opts.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	if c.opts.Device != "" {
		args = append(args, "--device", c.opts.Device)
	}
	if c.opts.ComputeType != "" {
		args = append(args, "--compute_type", c.opts.ComputeType)
	}
	args = append(args, "--output_dir", outputDir)
	args = append(args, audioPath)
	return args
}

var _ Client = (*CLI)(nil)
