package location_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"subgen/internal/location"
	"subgen/internal/logging"
	"subgen/internal/services"
)

type fakeFetcher struct {
	paths map[string]string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.paths[url], nil
}

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newEngine(fetcher location.Fetcher) *location.Engine {
	return location.NewEngine(location.DefaultResolvers(fetcher), logging.NewNop())
}

func TestResolveFileThenDirectoryKeepsSeedOrder(t *testing.T) {
	dir := t.TempDir()
	audio := touch(t, filepath.Join(dir, "a.mp3"))
	somedir := filepath.Join(dir, "somedir")
	video := touch(t, filepath.Join(somedir, "b.mp4"))
	touch(t, filepath.Join(somedir, "note.txt"))

	result := newEngine(nil).Resolve(context.Background(), []string{audio, somedir})

	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	want := []string{audio, video}
	if len(result.Files) != len(want) {
		t.Fatalf("resolved %v, want %v", result.Files, want)
	}
	for i := range want {
		if result.Files[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, result.Files, want)
		}
	}
}

func TestResolveNestedDirectories(t *testing.T) {
	root := t.TempDir()
	deep := touch(t, filepath.Join(root, "x", "y", "z", "deep.flac"))
	shallow := touch(t, filepath.Join(root, "shallow.mkv"))
	touch(t, filepath.Join(root, "x", "readme.md"))

	result := newEngine(nil).Resolve(context.Background(), []string{root})

	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	got := append([]string{}, result.Files...)
	sort.Strings(got)
	want := []string{deep, shallow}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("resolved %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("set mismatch: got %v want %v", got, want)
		}
	}
}

func TestResolveEmptyDirectoryIsHandled(t *testing.T) {
	// An empty directory expands to nothing; it must not be reported as an
	// unhandled location.
	result := newEngine(nil).Resolve(context.Background(), []string{t.TempDir()})

	if len(result.Files) != 0 {
		t.Fatalf("expected no files, got %v", result.Files)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("empty directory must not fail: %v", result.Failures)
	}
}

func TestResolveUnrecognizedLocationContinuesBatch(t *testing.T) {
	dir := t.TempDir()
	audio := touch(t, filepath.Join(dir, "keep.mp3"))

	result := newEngine(nil).Resolve(context.Background(), []string{"not_a_real_path", audio})

	if len(result.Files) != 1 || result.Files[0] != audio {
		t.Fatalf("valid location should still resolve, got %v", result.Files)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected one failure, got %v", result.Failures)
	}
	if result.Failures[0].Location != "not_a_real_path" {
		t.Fatalf("unexpected failed location: %v", result.Failures[0])
	}
	if !errors.Is(result.Failures[0].Err, services.ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable, got %v", result.Failures[0].Err)
	}
}

func TestResolveRemoteURL(t *testing.T) {
	dir := t.TempDir()
	downloaded := touch(t, filepath.Join(dir, "xyz.m4a"))
	fetcher := &fakeFetcher{paths: map[string]string{"https://youtu.be/xyz": downloaded}}

	result := newEngine(fetcher).Resolve(context.Background(), []string{"https://youtu.be/xyz"})

	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	if len(result.Files) != 1 || result.Files[0] != downloaded {
		t.Fatalf("expected downloaded path, got %v", result.Files)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.calls)
	}
}

func TestResolveFetchFailureYieldsZeroFiles(t *testing.T) {
	fetchErr := services.Wrap(services.ErrExternalTool, "ytdlp", "fetch", "exit code 1", errors.New("boom"))
	fetcher := &fakeFetcher{err: fetchErr}

	result := newEngine(fetcher).Resolve(context.Background(), []string{"https://youtu.be/xyz"})

	if len(result.Files) != 0 {
		t.Fatalf("expected zero files, got %v", result.Files)
	}
	if len(result.Failures) != 1 || !errors.Is(result.Failures[0].Err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool failure, got %v", result.Failures)
	}
}

func TestResolveDoesNotDedupeOverlappingInputs(t *testing.T) {
	dir := t.TempDir()
	audio := touch(t, filepath.Join(dir, "a.mp3"))

	result := newEngine(nil).Resolve(context.Background(), []string{audio, dir})

	if len(result.Files) != 2 {
		t.Fatalf("overlapping inputs should duplicate, got %v", result.Files)
	}
	if result.Files[0] != audio || result.Files[1] != audio {
		t.Fatalf("unexpected files: %v", result.Files)
	}
}

func TestResolveHostInPathIsNotRemote(t *testing.T) {
	fetcher := &fakeFetcher{paths: map[string]string{}}

	result := newEngine(fetcher).Resolve(context.Background(), []string{"https://example.com/youtube.com/video"})

	if fetcher.calls != 0 {
		t.Fatalf("fetcher must not be called for non-video hosts, calls=%d", fetcher.calls)
	}
	if len(result.Failures) != 1 || !errors.Is(result.Failures[0].Err, services.ErrUnresolvable) {
		t.Fatalf("expected unresolvable failure, got %v", result.Failures)
	}
}

func TestResolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newEngine(nil).Resolve(ctx, []string{"anything"})

	if len(result.Failures) != 1 || !errors.Is(result.Failures[0].Err, context.Canceled) {
		t.Fatalf("expected context failure, got %v", result.Failures)
	}
}
