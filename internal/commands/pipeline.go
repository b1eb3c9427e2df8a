package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/bankfusion/bankfusion/internal/batch"
	"github.com/bankfusion/bankfusion/internal/config"
	"github.com/bankfusion/bankfusion/internal/extractor"
	"github.com/bankfusion/bankfusion/internal/logger"
	"github.com/bankfusion/bankfusion/internal/metrics"
	"github.com/bankfusion/bankfusion/internal/pdftext"
)

// loadConfig reads .env, the config file (defaults if missing) and the
// BANKFUSION_* environment, in that order.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("configuring logger: %w", err)
	}
	return cfg, log, nil
}

func newOrchestrator(cfg *config.Config, log zerolog.Logger, m *metrics.Pipeline) *batch.Orchestrator {
	return &batch.Orchestrator{
		Registry: extractor.DefaultRegistry(),
		Reader:   pdftext.PDFReader{},
		Timeout:  cfg.Batch.FileTimeout,
		Persist:  cfg.Batch.Persist,
		Outputs: batch.Outputs{
			ExtractedDir:  cfg.Output.ExtractedDir,
			NormalizedDir: cfg.Output.NormalizedDir,
			LogDir:        cfg.Output.LogDir,
		},
		Metrics: m,
		Log:     log,
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
