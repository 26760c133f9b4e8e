// Package pipeline orchestrates the transcode and transcribe steps for a
// batch of resolved media files.
package pipeline
