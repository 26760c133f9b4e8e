package media

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Category is the classification of a caller-supplied location string.
type Category int

const (
	// Unrecognized means no category matched. The engine surfaces these as
	// "could not handle" rather than silently dropping them.
	Unrecognized Category = iota
	// LocalAudio is an existing regular file with an audio extension.
	LocalAudio
	// LocalVideo is an existing regular file with a video extension.
	LocalVideo
	// Directory is an existing directory.
	Directory
	// RemoteVideo is a URL whose host belongs to a known video-hosting domain.
	RemoteVideo
)

func (c Category) String() string {
	switch c {
	case LocalAudio:
		return "audio"
	case LocalVideo:
		return "video"
	case Directory:
		return "directory"
	case RemoteVideo:
		return "remote"
	default:
		return "unrecognized"
	}
}

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".wav":  {},
	".flac": {},
	".aac":  {},
	".ogg":  {},
	".opus": {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".avi":  {},
	".mov":  {},
	".flv":  {},
	".webm": {},
}

// videoHosts are the domains the remote resolver knows how to fetch from.
// Matching is on the parsed URL host (or a subdomain of it), never on
// substrings, so a domain appearing in the path does not count.
var videoHosts = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
	"twitch.tv",
}

// Classify categorizes a location string by syntactic inspection: file
// existence plus extension for local paths, structured URL parsing for
// remote ones.
func Classify(location string) Category {
	if IsAudioFile(location) {
		return LocalAudio
	}
	if IsVideoFile(location) {
		return LocalVideo
	}
	if IsRemoteVideoURL(location) {
		return RemoteVideo
	}
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		return Directory
	}
	return Unrecognized
}

// IsAudioExt reports whether ext (including the dot) is a recognized audio
// container format. Comparison is case-insensitive.
func IsAudioExt(ext string) bool {
	_, ok := audioExtensions[strings.ToLower(ext)]
	return ok
}

// IsVideoExt reports whether ext (including the dot) is a recognized video
// container format. Comparison is case-insensitive.
func IsVideoExt(ext string) bool {
	_, ok := videoExtensions[strings.ToLower(ext)]
	return ok
}

// IsCompatibleExt reports whether ext names a whisper-compatible container,
// audio or video.
func IsCompatibleExt(ext string) bool {
	return IsAudioExt(ext) || IsVideoExt(ext)
}

// IsAudioFile reports whether path is an existing regular file with an audio
// extension.
func IsAudioFile(path string) bool {
	return isRegularFile(path) && IsAudioExt(filepath.Ext(path))
}

// IsVideoFile reports whether path is an existing regular file with a video
// extension.
func IsVideoFile(path string) bool {
	return isRegularFile(path) && IsVideoExt(filepath.Ext(path))
}

// IsRemoteVideoURL reports whether the location parses as an http(s) URL
// whose host equals, or is a subdomain of, a known video-hosting domain.
func IsRemoteVideoURL(location string) bool {
	parsed, err := url.Parse(location)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return false
	}
	for _, known := range videoHosts {
		if host == known || strings.HasSuffix(host, "."+known) {
			return true
		}
	}
	return false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
