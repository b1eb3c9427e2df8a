package commands

import (
	"github.com/spf13/cobra"

	"github.com/bankfusion/bankfusion/internal/runlog"
)

func newRunsCommand(configPath *string) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Summarize past batch runs from the run log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runRuns(cmd, cfg.Output.LogDir, last)
		},
	}

	cmd.Flags().IntVar(&last, "last", 0, "show only the most recent N runs")

	return cmd
}

func runRuns(cmd *cobra.Command, logDir string, last int) error {
	entries, err := runlog.Read(logDir)
	if err != nil {
		return err
	}
	runs := runlog.Summarize(entries)
	if last > 0 && len(runs) > last {
		runs = runs[len(runs)-last:]
	}
	return printJSON(cmd.OutOrStdout(), runs)
}
