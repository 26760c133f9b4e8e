package main

import (
	"github.com/spf13/cobra"

	"subgen/internal/config"
)

type runFlags struct {
	configPath   string
	model        string
	outputFormat string
	language     string
	device       string
	computeType  string
	force        bool
	audioTrack   int
	outputDir    string
	downloadDir  string
	includeVideo bool
}

func newRootCommand() *cobra.Command {
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:           "subgen [locations...]",
		Short:         "Generate subtitles for local and remote media",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runTranscribe(cmd, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")

	rootCmd.Flags().StringVar(&flags.model, "model", "", "WhisperX model (e.g. small, large-v3)")
	rootCmd.Flags().StringVar(&flags.outputFormat, "output_format", "", "Subtitle format (srt, vtt, txt, tsv, json, aud)")
	rootCmd.Flags().StringVar(&flags.language, "language", "", "Language hint (name or ISO code); empty auto-detects")
	rootCmd.Flags().StringVar(&flags.device, "device", "", "Inference device (cpu or cuda)")
	rootCmd.Flags().StringVar(&flags.computeType, "compute_type", "", "Inference precision (e.g. int8, float16)")
	rootCmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Re-transcribe and re-download even when outputs are fresh")
	rootCmd.Flags().IntVar(&flags.audioTrack, "audio_track", 0, "Audio stream index extracted from video inputs")
	rootCmd.Flags().StringVarP(&flags.outputDir, "output_dir", "o", "", "Directory for subtitle files (default: alongside the audio)")
	rootCmd.Flags().StringVarP(&flags.downloadDir, "download_dir", "d", "", "Directory for downloaded media")
	rootCmd.Flags().BoolVar(&flags.includeVideo, "include_video", false, "Download bestvideo+bestaudio instead of audio only")

	rootCmd.AddCommand(newResolveCommand(flags))
	rootCmd.AddCommand(newStatusCommand(flags))
	rootCmd.AddCommand(newHistoryCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}

// loadConfig reads the configuration file and overlays values from flags that
// were set explicitly on the command line.
func loadConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	set := cmd.Flags().Changed
	if set("model") {
		cfg.WhisperX.Model = flags.model
	}
	if set("output_format") {
		cfg.WhisperX.OutputFormat = flags.outputFormat
	}
	if set("language") {
		cfg.WhisperX.Language = flags.language
	}
	if set("device") {
		cfg.WhisperX.Device = flags.device
	}
	if set("compute_type") {
		cfg.WhisperX.ComputeType = flags.computeType
	}
	if set("force") {
		cfg.WhisperX.Force = flags.force
	}
	if set("audio_track") {
		cfg.Transcode.AudioTrack = flags.audioTrack
	}
	if set("output_dir") {
		expanded, err := config.ExpandPath(flags.outputDir)
		if err != nil {
			return nil, err
		}
		cfg.Paths.OutputDir = expanded
	}
	if set("download_dir") {
		expanded, err := config.ExpandPath(flags.downloadDir)
		if err != nil {
			return nil, err
		}
		cfg.Paths.DownloadDir = expanded
	}
	if set("include_video") {
		cfg.Fetch.IncludeVideo = flags.includeVideo
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
