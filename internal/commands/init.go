package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfusion/bankfusion/internal/config"
	"github.com/bankfusion/bankfusion/internal/extractor"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new BankFusion project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(dir string, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	cfg := config.Default()
	// One statement folder per supported bank.
	bankFolders := extractor.DefaultRegistry().Folders()

	// Create directory structure.
	dirs := []string{
		cfg.Output.ExtractedDir,
		cfg.Output.NormalizedDir,
		cfg.Output.CSVDir,
		cfg.Output.LogDir,
	}
	for _, bank := range bankFolders {
		dirs = append(dirs, filepath.Join(cfg.Input.Root, bank))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write bankfusion.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Keep the empty bank folders under version control.
	for _, bank := range bankFolders {
		keep := filepath.Join(dir, cfg.Input.Root, bank, ".gitkeep")
		if err := os.WriteFile(keep, []byte{}, 0o644); err != nil {
			return fmt.Errorf("writing .gitkeep: %w", err)
		}
	}

	// Write .gitignore. Statements and everything derived from them stay local.
	gitignore := fmt.Sprintf("%s/**/*.pdf\n%s/\n%s/\n%s/\n%s/\n.env\n",
		cfg.Input.Root, cfg.Output.ExtractedDir, cfg.Output.NormalizedDir, cfg.Output.CSVDir, cfg.Output.LogDir)
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized BankFusion project at %s\n", dir)
	return nil
}
