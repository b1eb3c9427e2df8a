package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfusion/bankfusion/internal/ledger"
)

// ledgerFile is the default export file inside the CSV directory.
const ledgerFile = "ledger.csv"

func newExportCommand(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export persisted normalized statements as one CSV ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(cfg.Output.CSVDir, ledgerFile)
			}
			return runExport(cmd, cfg.Output.NormalizedDir, out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file, or - for stdout (default <csv_dir>/ledger.csv)")

	return cmd
}

func runExport(cmd *cobra.Command, normalizedDir, out string) error {
	var w io.Writer = cmd.OutOrStdout()
	if out != "-" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	n, err := ledger.ExportCSV(normalizedDir, w)
	if err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", n, out)
	}
	return nil
}
