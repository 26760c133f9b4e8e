package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subgen/internal/preflight"
)

func newStatusCommand(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools and directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			toolRows := make([][]string, 0, 3)
			missing := 0
			for _, status := range preflight.CheckSystemDeps(cfg) {
				state := "ok"
				if !status.Available {
					state = "missing"
					if !status.Optional {
						missing++
					}
				}
				toolRows = append(toolRows, []string{status.Name, status.Command, state, firstNonEmpty(status.Detail, status.Description)})
			}
			writeTable(out, []string{"TOOL", "COMMAND", "STATE", "DETAIL"}, toolRows, nil)

			checkRows := make([][]string, 0, 3)
			for _, result := range preflight.RunAll(cfg) {
				state := "ok"
				if !result.Passed {
					state = "failed"
					missing++
				}
				checkRows = append(checkRows, []string{result.Name, state, result.Detail})
			}
			writeTable(out, []string{"CHECK", "STATE", "DETAIL"}, checkRows, nil)

			if missing > 0 {
				return fmt.Errorf("%d check(s) failed", missing)
			}
			return nil
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
