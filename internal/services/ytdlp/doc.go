// Package ytdlp wraps the yt-dlp command-line downloader for fetching
// remote video/audio into the configured download directory. Filenames are
// sanitized by the tool (--restrict-filenames) from remote metadata.
package ytdlp
