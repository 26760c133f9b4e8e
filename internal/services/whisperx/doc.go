// Package whisperx wraps the WhisperX command-line transcription engine.
// One subtitle file is produced per invocation at
// <output_dir>/<base_name>.<format>.
package whisperx
