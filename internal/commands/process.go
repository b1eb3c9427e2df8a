package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfusion/bankfusion/internal/batch"
)

func newProcessCommand(configPath *string) *cobra.Command {
	var persist bool
	var root string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Extract every statement under the input root",
		Long: "Runs every PDF in the input root's bank folders through extraction and\n" +
			"normalization and prints one summary per file as JSON. A file that fails\n" +
			"is reported in its summary and the rest of the batch continues.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("persist") {
				cfg.Batch.Persist = persist
			}
			if root != "" {
				cfg.Input.Root = root
			}
			return runProcess(cmd.Context(), cmd, newOrchestrator(cfg, log, nil), cfg.Input.Root)
		},
	}

	cmd.Flags().BoolVar(&persist, "persist", false, "write extracted and normalized JSON and the run log")
	cmd.Flags().StringVar(&root, "root", "", "input root (overrides config)")

	return cmd
}

func runProcess(ctx context.Context, cmd *cobra.Command, o *batch.Orchestrator, root string) error {
	run, err := o.Run(ctx, root)
	if errors.Is(err, batch.ErrRootNotFound) {
		return fmt.Errorf("%s directory not found", filepath.Base(root))
	}
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), run.Results)
}
