package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subgen/internal/location"
	"subgen/internal/logging"
	"subgen/internal/media"
)

// newResolveCommand builds the dry-run command: expand locations into the
// files a run would process, without downloading or transcribing anything.
func newResolveCommand(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [locations...]",
		Short: "Show the files a run would transcribe, without processing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, flags); err != nil {
				return err
			}

			var local, remote []string
			for _, loc := range args {
				if media.IsRemoteVideoURL(loc) {
					remote = append(remote, loc)
					continue
				}
				local = append(local, loc)
			}

			// No fetcher: remote locations are listed but never downloaded.
			engine := location.NewEngine(location.DefaultResolvers(nil), logging.NewNop())
			result := engine.Resolve(cmd.Context(), local)

			rows := make([][]string, 0, len(result.Files)+len(remote))
			for _, file := range result.Files {
				rows = append(rows, resolveRow(file))
			}
			for _, url := range remote {
				rows = append(rows, []string{url, "remote video", "", "", "(not fetched)"})
			}

			out := cmd.OutOrStdout()
			if len(rows) > 0 {
				writeTable(out,
					[]string{"FILE", "TYPE", "SIZE", "DURATION", "TITLE"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft})
			}
			for _, failure := range result.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "unresolvable %s: %v\n", failure.Location, failure.Err)
			}
			fmt.Fprintf(out, "%d file(s) from %d location(s)\n", len(result.Files)+len(remote), len(args))

			if len(result.Files) == 0 && len(remote) == 0 {
				return fmt.Errorf("no transcribable files resolved from %d location(s)", len(args))
			}
			return nil
		},
	}
}

func resolveRow(file string) []string {
	category := media.Classify(file)
	info, err := media.Probe(file)
	if err != nil {
		return []string{file, category.String(), "", "", ""}
	}
	duration := ""
	if info.Duration > 0 {
		duration = info.Duration.Round(time.Second).String()
	}
	title := info.Title
	if info.Artist != "" {
		title = info.Artist + " - " + title
	}
	return []string{file, category.String(), formatSize(info.Size), duration, title}
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
