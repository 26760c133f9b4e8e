package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subgen/internal/history"
	"subgen/internal/location"
	"subgen/internal/logging"
	"subgen/internal/media"
	"subgen/internal/pipeline"
	"subgen/internal/services/ffmpeg"
	"subgen/internal/services/whisperx"
	"subgen/internal/services/ytdlp"
)

func runTranscribe(cmd *cobra.Command, flags *runFlags, locations []string) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	logger = logger.With(logging.String(logging.FieldRunID, runID))

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		store = nil
	}
	defer store.Close()

	// Two concurrent runs fetching into the same download directory would
	// race on staging; serialize remote work with a lock file.
	if hasRemote(locations) {
		lock := flock.New(filepath.Join(cfg.Paths.DownloadDir, ".subgen.lock"))
		locked, lockErr := lock.TryLock()
		if lockErr != nil {
			return fmt.Errorf("acquire download lock: %w", lockErr)
		}
		if !locked {
			return errors.New("another subgen run is downloading into the same directory")
		}
		defer lock.Unlock()
	}

	fetcher := ytdlp.NewCLI(cfg.Paths.DownloadDir, logger,
		ytdlp.WithBinary(cfg.YTDLPBinary()),
		ytdlp.WithIncludeVideo(cfg.Fetch.IncludeVideo))
	var journal location.DownloadJournal
	if store != nil {
		journal = store
	}
	cached := location.NewCachedFetcher(fetcher, journal, flags.force, logger)

	engine := location.NewEngine(location.DefaultResolvers(cached), logger)

	ctx := cmd.Context()
	started := time.Now()

	result := engine.Resolve(ctx, locations)
	for _, failure := range result.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", failure.Location, failure.Err)
	}
	if len(result.Files) == 0 {
		return fmt.Errorf("no transcribable files resolved from %d location(s)", len(locations))
	}

	extractor := ffmpeg.NewCLI(logger,
		ffmpeg.WithBinary(cfg.FFmpegBinary()),
		ffmpeg.WithBitrate(cfg.Transcode.Bitrate))
	transcriber := whisperx.NewCLI(whisperx.Options{
		Model:        cfg.WhisperX.Model,
		OutputFormat: cfg.WhisperX.OutputFormat,
		Language:     cfg.WhisperX.Language,
		Device:       cfg.WhisperX.Device,
		ComputeType:  cfg.WhisperX.ComputeType,
		OutputDir:    cfg.Paths.OutputDir,
	}, logger, whisperx.WithBinary(cfg.WhisperXBinary()))

	pipe := pipeline.New(extractor, transcriber, pipeline.Options{
		AudioTrack:      cfg.Transcode.AudioTrack,
		ForceTranscode:  cfg.Transcode.Force,
		ForceTranscribe: cfg.WhisperX.Force,
	}, logger)

	summary, runErr := pipe.Process(ctx, result.Files)

	recordRun(cmd, store, logger, runID, started, len(locations), len(result.Files), summary)
	printSummary(cmd.OutOrStdout(), summary)

	if runErr != nil {
		return runErr
	}
	if summary.Succeeded == 0 && summary.Failed > 0 {
		return fmt.Errorf("all %d file(s) failed", summary.Failed)
	}
	return nil
}

func hasRemote(locations []string) bool {
	for _, loc := range locations {
		if media.IsRemoteVideoURL(loc) {
			return true
		}
	}
	return false
}

func recordRun(cmd *cobra.Command, store *history.Store, logger *slog.Logger, runID string, started time.Time, locations, resolved int, summary pipeline.Summary) {
	if store == nil {
		return
	}
	files := make([]history.FileRecord, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		files = append(files, history.FileRecord{
			Source: outcome.Source,
			Output: outcome.Output,
			Status: string(outcome.Status),
			Detail: outcome.Detail(),
		})
	}
	run := history.Run{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Locations:  locations,
		Resolved:   resolved,
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
		Skipped:    summary.Skipped,
	}
	if err := store.RecordRun(cmd.Context(), run, files); err != nil {
		logger.Warn("record run failed", logging.Error(err))
	}
}

func printSummary(out io.Writer, summary pipeline.Summary) {
	for _, outcome := range summary.Outcomes {
		switch outcome.Status {
		case pipeline.StatusOK:
			fmt.Fprintf(out, "wrote %s\n", outcome.Output)
		case pipeline.StatusSkipped:
			fmt.Fprintf(out, "up to date %s\n", outcome.Output)
		case pipeline.StatusFailed:
			fmt.Fprintf(out, "failed %s: %v\n", outcome.Source, outcome.Err)
		}
	}
	fmt.Fprintf(out, "%d succeeded, %d skipped, %d failed\n",
		summary.Succeeded, summary.Skipped, summary.Failed)
}
