package media_test

import (
	"os"
	"path/filepath"
	"testing"

	"subgen/internal/media"
)

func TestFileTitle(t *testing.T) {
	cases := map[string]string{
		"/tmp/my_cool-episode.01.mp3": "My Cool Episode 01",
		"interview.mp4":               "Interview",
		"a.mp3":                       "A",
	}
	for path, want := range cases {
		if got := media.FileTitle(path); got != want {
			t.Fatalf("FileTitle(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestProbeUntaggedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw_take.wav")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := media.Probe(path)
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if info.Title != "Raw Take" {
		t.Fatalf("expected filename-derived title, got %q", info.Title)
	}
	if info.Size != int64(len("not really audio")) {
		t.Fatalf("unexpected size: %d", info.Size)
	}
}

func TestProbeMissingFile(t *testing.T) {
	if _, err := media.Probe(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
