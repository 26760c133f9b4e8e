package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"subgen/internal/freshness"
	"subgen/internal/logging"
	"subgen/internal/media"
	"subgen/internal/services"
	"subgen/internal/services/ffmpeg"
	"subgen/internal/services/whisperx"
)

// Status is the terminal state of one file in a run.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Options tunes per-run behaviour.
type Options struct {
	// AudioTrack selects the audio stream extracted from video inputs.
	AudioTrack int
	// ForceTranscode re-extracts audio even when a fresh mp3 already exists.
	ForceTranscode bool
	// ForceTranscribe re-runs transcription even when a fresh subtitle exists.
	ForceTranscribe bool
}

// FileOutcome records what happened to one resolved file.
type FileOutcome struct {
	Source string
	Audio  string
	Output string
	Status Status
	Err    error
}

// Detail returns the failure message suitable for the journal, empty on success.
func (o FileOutcome) Detail() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Outcomes  []FileOutcome
	Succeeded int
	Skipped   int
	Failed    int
}

// Pipeline turns resolved media files into subtitle files. Video inputs are
// transcoded to mp3 first; both steps are skipped when a newer derived file
// already exists.
type Pipeline struct {
	extractor   ffmpeg.Client
	transcriber whisperx.Client
	opts        Options
	logger      *slog.Logger
}

// New constructs a Pipeline.
func New(extractor ffmpeg.Client, transcriber whisperx.Client, opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transcriber: transcriber,
		opts:        opts,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process handles each file in order. A failure on one file does not stop the
// batch unless the underlying tool is missing entirely, which would fail every
// remaining file the same way.
func (p *Pipeline) Process(ctx context.Context, files []string) (Summary, error) {
	summary := Summary{Outcomes: make([]FileOutcome, 0, len(files))}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome := p.processOne(ctx, file)
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch outcome.Status {
		case StatusOK:
			summary.Succeeded++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
			p.logger.Error("file failed",
				logging.String("source", file),
				logging.Error(outcome.Err))
			if services.IsFatal(outcome.Err) {
				return summary, outcome.Err
			}
		}
	}

	return summary, nil
}

func (p *Pipeline) processOne(ctx context.Context, file string) FileOutcome {
	outcome := FileOutcome{Source: file}

	audio, err := p.ensureAudio(ctx, file)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Audio = audio
	outcome.Output = p.transcriber.OutputPath(audio)

	if !p.opts.ForceTranscribe && freshness.UpToDate(audio, outcome.Output) {
		p.logger.Info("subtitle up to date",
			logging.String("audio", audio),
			logging.String("output", outcome.Output))
		outcome.Status = StatusSkipped
		return outcome
	}

	output, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Output = output
	outcome.Status = StatusOK
	return outcome
}

// ensureAudio returns a transcribable audio path for the file, transcoding
// video inputs unless a newer mp3 already sits beside them.
func (p *Pipeline) ensureAudio(ctx context.Context, file string) (string, error) {
	ext := filepath.Ext(file)
	switch {
	case media.IsAudioExt(ext):
		return file, nil
	case media.IsVideoExt(ext):
		audio := ffmpeg.AudioPath(file)
		if !p.opts.ForceTranscode && freshness.UpToDate(file, audio) {
			p.logger.Info("reusing extracted audio",
				logging.String("source", file),
				logging.String("audio", audio))
			return audio, nil
		}
		if err := p.extractor.ExtractAudio(ctx, file, audio, p.opts.AudioTrack); err != nil {
			return "", err
		}
		return audio, nil
	default:
		return "", services.Wrap(services.ErrUnsupportedMedia, "pipeline", "ensure audio",
			fmt.Sprintf("unsupported media extension %q", ext), nil)
	}
}
