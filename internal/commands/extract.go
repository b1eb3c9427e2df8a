package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankfusion/bankfusion/internal/ledger"
	"github.com/bankfusion/bankfusion/internal/logger"
)

func newExtractCommand(configPath *string) *cobra.Command {
	var bank string
	var normalized bool

	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Extract one statement PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}

			o := newOrchestrator(cfg, log, nil)
			ctx := logger.WithContext(cmd.Context(), log.With().Str("bank", bank).Logger())
			st, norm, err := o.ProcessFile(ctx, args[0], bank)
			if err != nil {
				return fmt.Errorf("extracting %s: %w", args[0], err)
			}

			if normalized {
				return printJSON(cmd.OutOrStdout(), ledger.FromNormalized(norm))
			}
			return printJSON(cmd.OutOrStdout(), ledger.FromStatement(st))
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank folder alias, e.g. hdfc or bank_of_india (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().BoolVar(&normalized, "normalized", false, "print the normalized record")

	return cmd
}
