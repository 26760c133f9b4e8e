// Package ffmpeg wraps the ffmpeg command-line decoder for extracting mp3
// audio from video containers. ffmpeg must be installed and resolvable on
// PATH.
package ffmpeg
