// Package services defines the error taxonomy and subprocess plumbing shared
// by the external tool clients (ffmpeg, yt-dlp, WhisperX).
//
// Sentinel errors classify failures for the orchestrator: a missing binary
// (ErrToolMissing) aborts the batch, any other tool failure fails only the
// file being processed. Wrap attaches component and operation context while
// preserving the marker for errors.Is checks.
package services
