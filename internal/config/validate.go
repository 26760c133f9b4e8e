package config

import (
	"errors"
	"fmt"
)

// OutputFormats lists the subtitle formats WhisperX can produce.
var OutputFormats = []string{"srt", "vtt", "txt", "tsv", "json", "aud"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	return c.validateTranscode()
}

func (c *Config) validateWhisperX() error {
	if c.WhisperX.Model == "" {
		return errors.New("whisperx.model must be set")
	}
	if !validOutputFormat(c.WhisperX.OutputFormat) {
		return fmt.Errorf("whisperx.output_format must be one of %v, got %q", OutputFormats, c.WhisperX.OutputFormat)
	}
	switch c.WhisperX.Device {
	case "cpu", "cuda":
	default:
		return fmt.Errorf("whisperx.device must be cpu or cuda, got %q", c.WhisperX.Device)
	}
	if c.WhisperX.ComputeType == "" {
		return errors.New("whisperx.compute_type must be set")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.AudioTrack < 0 {
		return errors.New("transcode.audio_track must be >= 0")
	}
	if c.Transcode.Bitrate == "" {
		return errors.New("transcode.bitrate must be set")
	}
	return nil
}

func validOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
