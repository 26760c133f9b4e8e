package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// OutputDir receives subtitle files. Empty means "alongside the audio".
	OutputDir string `toml:"output_dir"`
	// DownloadDir receives remote media fetched by yt-dlp.
	DownloadDir string `toml:"download_dir"`
	// LogDir holds the log file and the run history database.
	LogDir string `toml:"log_dir"`
}

// WhisperX contains transcription engine settings.
type WhisperX struct {
	Model        string `toml:"model"`
	OutputFormat string `toml:"output_format"`
	Language     string `toml:"language"`
	Device       string `toml:"device"`
	ComputeType  string `toml:"compute_type"`
	// Force re-transcribes even when the subtitle file is newer than the audio.
	Force bool `toml:"force"`
}

// Transcode contains audio extraction settings for video inputs.
type Transcode struct {
	// AudioTrack selects the audio stream ffmpeg maps (0 = first track).
	AudioTrack int    `toml:"audio_track"`
	Bitrate    string `toml:"bitrate"`
	// Force re-extracts audio even when an up-to-date copy exists. Kept
	// independent from whisperx.force: re-encoding correct audio is usually
	// wasted work even when a re-transcription is wanted.
	Force bool `toml:"force"`
}

// Fetch contains remote download settings.
type Fetch struct {
	// IncludeVideo downloads bestvideo+bestaudio instead of bestaudio.
	IncludeVideo bool `toml:"include_video"`
}

// History contains run journal settings.
type History struct {
	Enabled bool `toml:"enabled"`
	// Path overrides the journal location. Empty means <log_dir>/history.db.
	Path string `toml:"path"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subgen. It is assembled
// once at startup (file values overlaid by CLI flags) and never mutated
// afterwards.
type Config struct {
	Paths     Paths     `toml:"paths"`
	WhisperX  WhisperX  `toml:"whisperx"`
	Transcode Transcode `toml:"transcode"`
	Fetch     Fetch     `toml:"fetch"`
	History   History   `toml:"history"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subgen/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was actually found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subgen.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DownloadDir, c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		dirs = append(dirs, c.Paths.OutputDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the run journal location, or "" when history is disabled.
func (c *Config) HistoryPath() string {
	if !c.History.Enabled {
		return ""
	}
	if strings.TrimSpace(c.History.Path) != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// YTDLPBinary returns the yt-dlp executable name.
func (c *Config) YTDLPBinary() string {
	return "yt-dlp"
}

// WhisperXBinary returns the WhisperX executable name.
func (c *Config) WhisperXBinary() string {
	return "whisperx"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
