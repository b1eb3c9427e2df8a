package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfusion/bankfusion/internal/ledger"
)

func newSummaryCommand(configPath *string) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total an exported CSV ledger per bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if in == "" {
				in = filepath.Join(cfg.Output.CSVDir, ledgerFile)
			}
			return runSummary(cmd, in)
		},
	}

	cmd.Flags().StringVar(&in, "ledger", "", "ledger CSV (default <csv_dir>/ledger.csv)")

	return cmd
}

func runSummary(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	rows, err := ledger.ReadCSV(f)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), ledger.Summarize(ledger.Transactions(rows)))
}
