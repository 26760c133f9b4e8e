package location

import (
	"context"
	"io/fs"
	"path/filepath"

	"subgen/internal/media"
)

// Resolver turns one category of location into a resolution. CanHandle must
// be cheap and side-effect free; Resolve may touch the file system or the
// network.
type Resolver interface {
	Name() string
	CanHandle(location string) bool
	Resolve(ctx context.Context, location string) (Resolution, error)
}

// Fetcher downloads remote media and returns the local path of the result.
// The ytdlp client implements it; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// DefaultResolvers returns the resolver set in priority order: local file
// first, then remote URL, then directory. File checks must win before the
// directory fallthrough, and the order is part of the engine's contract.
func DefaultResolvers(fetcher Fetcher) []Resolver {
	return []Resolver{
		localFileResolver{},
		remoteResolver{fetcher: fetcher},
		directoryResolver{},
	}
}

// localFileResolver finalizes existing audio/video files unchanged. Video
// files are not transcoded here; the pipeline extracts audio lazily, guarded
// by the freshness gate.
type localFileResolver struct{}

func (localFileResolver) Name() string { return "local-file" }

func (localFileResolver) CanHandle(location string) bool {
	return media.IsAudioFile(location) || media.IsVideoFile(location)
}

func (localFileResolver) Resolve(_ context.Context, location string) (Resolution, error) {
	return File(location), nil
}

// remoteResolver downloads remote media through the fetch service.
type remoteResolver struct {
	fetcher Fetcher
}

func (remoteResolver) Name() string { return "remote" }

func (r remoteResolver) CanHandle(location string) bool {
	return r.fetcher != nil && media.IsRemoteVideoURL(location)
}

func (r remoteResolver) Resolve(ctx context.Context, location string) (Resolution, error) {
	path, err := r.fetcher.Fetch(ctx, location)
	if err != nil {
		return Resolution{}, err
	}
	return File(path), nil
}

// directoryResolver expands a directory into every descendant file with a
// whisper-compatible extension. A directory always handles itself: zero
// matches yield an empty expansion, never Unhandled.
type directoryResolver struct{}

func (directoryResolver) Name() string { return "directory" }

func (directoryResolver) CanHandle(location string) bool {
	return media.Classify(location) == media.Directory
}

func (directoryResolver) Resolve(_ context.Context, location string) (Resolution, error) {
	files := []string{}
	err := filepath.WalkDir(location, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if media.IsCompatibleExt(filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return Resolution{}, err
	}
	return Expand(files), nil
}
