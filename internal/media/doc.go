// Package media classifies location strings into categories (local audio,
// local video, directory, remote video URL) and probes local files for
// display metadata.
//
// Classification is purely syntactic: file existence plus a fixed
// case-insensitive extension allow-list for local paths, and structured URL
// parsing with host matching for remote ones. A video-hosting domain that
// appears only as a path segment does not classify as remote.
package media
