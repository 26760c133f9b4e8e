package media

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Info describes a local media file for display purposes. Fields are
// best-effort: a file with no readable tags still gets a title derived from
// its name.
type Info struct {
	Title    string
	Artist   string
	Size     int64
	Duration time.Duration
}

// Probe collects display metadata for a local media file. Tag and duration
// failures are tolerated; only a stat failure is an error.
func Probe(path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Title: FileTitle(path),
		Size:  stat.Size(),
	}

	if file, err := os.Open(path); err == nil {
		if meta, err := tag.ReadFrom(file); err == nil {
			if title := strings.TrimSpace(meta.Title()); title != "" {
				info.Title = title
			}
			info.Artist = strings.TrimSpace(meta.Artist())
		}
		file.Close()
	}

	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		if d, err := mp3Duration(path); err == nil {
			info.Duration = d
		}
	}

	return info, nil
}

var titleCaser = cases.Title(language.Und)

// FileTitle derives a human-readable title from a file name: extension
// stripped, separators spaced, words title-cased.
func FileTitle(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(stem)
	stem = strings.Join(strings.Fields(stem), " ")
	if stem == "" {
		return base
	}
	return titleCaser.String(stem)
}

func mp3Duration(path string) (time.Duration, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	decoder := mp3.NewDecoder(file)
	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
	)
	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			break
		}
		total += frame.Duration()
	}
	return total, nil
}
