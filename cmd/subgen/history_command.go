package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subgen/internal/history"
)

func newHistoryCommand(flags *runFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent runs from the journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			path := cfg.HistoryPath()
			if path == "" {
				return errors.New("run history is disabled in config")
			}
			store, err := history.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return showRunFiles(cmd, store, args[0])
			}
			return showRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}

func showRecentRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
			strconv.Itoa(run.Resolved),
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Failed),
		})
	}
	writeTable(cmd.OutOrStdout(),
		[]string{"RUN", "STARTED", "DURATION", "FILES", "OK", "SKIPPED", "FAILED"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight})
	return nil
}

func showRunFiles(cmd *cobra.Command, store *history.Store, runID string) error {
	files, err := store.RunFiles(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files recorded for run %s", runID)
	}

	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{file.Source, file.Output, file.Status, file.Detail})
	}
	writeTable(cmd.OutOrStdout(), []string{"SOURCE", "OUTPUT", "STATUS", "DETAIL"}, rows, nil)
	return nil
}
