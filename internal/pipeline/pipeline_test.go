package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subgen/internal/logging"
	"subgen/internal/pipeline"
	"subgen/internal/services"
	"subgen/internal/services/whisperx"
)

type fakeExtractor struct {
	calls int
	err   error
}

func (f *fakeExtractor) ExtractAudio(_ context.Context, input, output string, _ int) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, []byte("audio for "+input), 0o644)
}

type fakeTranscriber struct {
	calls int
	err   error
}

func (f *fakeTranscriber) OutputPath(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".srt"
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	out := f.OutputPath(audioPath)
	return out, os.WriteFile(out, []byte("1\n00:00:00,000 --> 00:00:01,000\nhi\n"), 0o644)
}

func writeMedia(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func newPipeline(extractor *fakeExtractor, transcriber whisperx.Client, opts pipeline.Options) *pipeline.Pipeline {
	return pipeline.New(extractor, transcriber, opts, logging.NewNop())
}

func TestProcessTranscribesAudioDirectly(t *testing.T) {
	dir := t.TempDir()
	audio := writeMedia(t, dir, "talk.mp3", time.Now().Add(-time.Hour))
	extractor := &fakeExtractor{}
	transcriber := &fakeTranscriber{}

	summary, err := newPipeline(extractor, transcriber, pipeline.Options{}).Process(context.Background(), []string{audio})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if summary.Succeeded != 1 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if extractor.calls != 0 {
		t.Fatalf("audio input must not be transcoded, got %d calls", extractor.calls)
	}
	if transcriber.calls != 1 {
		t.Fatalf("expected one transcription, got %d", transcriber.calls)
	}
	if summary.Outcomes[0].Output != filepath.Join(dir, "talk.srt") {
		t.Fatalf("unexpected output: %q", summary.Outcomes[0].Output)
	}
}

func TestProcessTranscodesVideoFirst(t *testing.T) {
	dir := t.TempDir()
	video := writeMedia(t, dir, "clip.mp4", time.Now().Add(-time.Hour))
	extractor := &fakeExtractor{}
	transcriber := &fakeTranscriber{}

	summary, err := newPipeline(extractor, transcriber, pipeline.Options{}).Process(context.Background(), []string{video})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if extractor.calls != 1 || transcriber.calls != 1 {
		t.Fatalf("expected transcode then transcribe, got %d/%d", extractor.calls, transcriber.calls)
	}
	if got := summary.Outcomes[0].Audio; got != filepath.Join(dir, "clip.mp3") {
		t.Fatalf("unexpected audio path: %q", got)
	}
}

func TestProcessReusesFreshAudio(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	video := writeMedia(t, dir, "clip.mp4", base)
	writeMedia(t, dir, "clip.mp3", base.Add(time.Minute))
	extractor := &fakeExtractor{}
	transcriber := &fakeTranscriber{}

	if _, err := newPipeline(extractor, transcriber, pipeline.Options{}).Process(context.Background(), []string{video}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("fresh mp3 must be reused, got %d extract calls", extractor.calls)
	}
	if transcriber.calls != 1 {
		t.Fatalf("expected one transcription, got %d", transcriber.calls)
	}
}

func TestProcessSkipsFreshSubtitle(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	audio := writeMedia(t, dir, "talk.mp3", base)
	writeMedia(t, dir, "talk.srt", base.Add(time.Minute))
	extractor := &fakeExtractor{}
	transcriber := &fakeTranscriber{}

	summary, err := newPipeline(extractor, transcriber, pipeline.Options{}).Process(context.Background(), []string{audio})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if transcriber.calls != 0 {
		t.Fatalf("fresh subtitle must short-circuit transcription, got %d calls", transcriber.calls)
	}
	if summary.Skipped != 1 || summary.Outcomes[0].Status != pipeline.StatusSkipped {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestProcessForceRetranscribes(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	audio := writeMedia(t, dir, "talk.mp3", base)
	writeMedia(t, dir, "talk.srt", base.Add(time.Minute))
	transcriber := &fakeTranscriber{}

	summary, err := newPipeline(&fakeExtractor{}, transcriber, pipeline.Options{ForceTranscribe: true}).
		Process(context.Background(), []string{audio})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if transcriber.calls != 1 {
		t.Fatalf("force must re-run transcription, got %d calls", transcriber.calls)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestProcessForceTranscodeReextracts(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	video := writeMedia(t, dir, "clip.mp4", base)
	writeMedia(t, dir, "clip.mp3", base.Add(time.Minute))
	extractor := &fakeExtractor{}

	_, err := newPipeline(extractor, &fakeTranscriber{}, pipeline.Options{ForceTranscode: true}).
		Process(context.Background(), []string{video})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("force transcode must re-extract, got %d calls", extractor.calls)
	}
}

func TestProcessContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	bad := writeMedia(t, dir, "bad.mp3", time.Now().Add(-time.Hour))
	good := writeMedia(t, dir, "good.mp3", time.Now().Add(-time.Hour))

	toolErr := services.Wrap(services.ErrExternalTool, "whisperx", "run", "exit code 1", nil)
	transcriber := &fakeTranscriber{}
	failing := &failFirstTranscriber{inner: transcriber, failFor: bad, err: toolErr}

	summary, err := newPipeline(&fakeExtractor{}, failing, pipeline.Options{}).
		Process(context.Background(), []string{bad, good})
	if err != nil {
		t.Fatalf("tool failure on one file must not abort the batch: %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Outcomes[0].Status != pipeline.StatusFailed || summary.Outcomes[0].Detail() == "" {
		t.Fatalf("unexpected outcome: %+v", summary.Outcomes[0])
	}
}

func TestProcessAbortsWhenToolMissing(t *testing.T) {
	dir := t.TempDir()
	first := writeMedia(t, dir, "first.mp3", time.Now().Add(-time.Hour))
	second := writeMedia(t, dir, "second.mp3", time.Now().Add(-time.Hour))

	missing := services.Wrap(services.ErrToolMissing, "whisperx", "run", "binary not found on PATH", nil)
	transcriber := &fakeTranscriber{err: missing}

	summary, err := newPipeline(&fakeExtractor{}, transcriber, pipeline.Options{}).
		Process(context.Background(), []string{first, second})
	if !errors.Is(err, services.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
	if len(summary.Outcomes) != 1 {
		t.Fatalf("missing tool must abort the batch, got %d outcomes", len(summary.Outcomes))
	}
}

func TestProcessRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	note := writeMedia(t, dir, "note.txt", time.Now().Add(-time.Hour))
	good := writeMedia(t, dir, "talk.mp3", time.Now().Add(-time.Hour))

	summary, err := newPipeline(&fakeExtractor{}, &fakeTranscriber{}, pipeline.Options{}).
		Process(context.Background(), []string{note, good})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !errors.Is(summary.Outcomes[0].Err, services.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", summary.Outcomes[0].Err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("batch must continue past unsupported file: %+v", summary)
	}
}

func TestProcessHonoursContextCancellation(t *testing.T) {
	dir := t.TempDir()
	audio := writeMedia(t, dir, "talk.mp3", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newPipeline(&fakeExtractor{}, &fakeTranscriber{}, pipeline.Options{}).
		Process(ctx, []string{audio})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(summary.Outcomes) != 0 {
		t.Fatalf("cancelled run must not process files: %+v", summary)
	}
}

type failFirstTranscriber struct {
	inner   *fakeTranscriber
	failFor string
	err     error
}

func (f *failFirstTranscriber) OutputPath(audioPath string) string {
	return f.inner.OutputPath(audioPath)
}

func (f *failFirstTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if audioPath == f.failFor {
		return "", f.err
	}
	return f.inner.Transcribe(ctx, audioPath)
}
