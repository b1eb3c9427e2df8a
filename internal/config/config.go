package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name in a project directory.
const FileName = "bankfusion.yaml"

// Config represents the top-level bankfusion.yaml configuration.
type Config struct {
	Input    InputConfig  `yaml:"input"`
	Output   OutputConfig `yaml:"output"`
	Batch    BatchConfig  `yaml:"batch"`
	Server   ServerConfig `yaml:"server"`
	LogLevel string       `yaml:"log_level"`
}

// InputConfig locates the statement tree: one folder per bank.
type InputConfig struct {
	Root string `yaml:"root"`
}

// OutputConfig names the directories persisted results go to.
type OutputConfig struct {
	ExtractedDir  string `yaml:"extracted_dir"`
	NormalizedDir string `yaml:"normalized_dir"`
	CSVDir        string `yaml:"csv_dir"`
	LogDir        string `yaml:"log_dir"`
}

// BatchConfig controls the batch orchestrator.
type BatchConfig struct {
	FileTimeout time.Duration `yaml:"file_timeout"`
	Persist     bool          `yaml:"persist"`
}

// ServerConfig controls the HTTP trigger.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Schedule       string   `yaml:"schedule,omitempty"` // cron expression; empty disables
}

// Environment overrides applied by ApplyEnv.
const (
	EnvInputRoot   = "BANKFUSION_INPUT_ROOT"
	EnvAddr        = "BANKFUSION_ADDR"
	EnvLogLevel    = "BANKFUSION_LOG_LEVEL"
	EnvSchedule    = "BANKFUSION_SCHEDULE"
	EnvFileTimeout = "BANKFUSION_FILE_TIMEOUT"
	EnvPersist     = "BANKFUSION_PERSIST"
)

// Load reads a bankfusion.yaml file from disk. Fields the file omits keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Root: "raw_pdfs",
		},
		Output: OutputConfig{
			ExtractedDir:  "extracted_json",
			NormalizedDir: "normalized_json",
			CSVDir:        "exports",
			LogDir:        "logs",
		},
		Batch: BatchConfig{
			FileTimeout: 60 * time.Second,
		},
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"*"},
		},
		LogLevel: "info",
	}
}

// LoadEnv loads KEY=VALUE files into the process environment. Missing files
// are skipped; variables already set win.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays BANKFUSION_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v, ok := lookup(EnvInputRoot); ok {
		cfg.Input.Root = v
	}
	if v, ok := lookup(EnvAddr); ok {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvSchedule); ok {
		cfg.Server.Schedule = v
	}
	if v, ok := lookup(EnvFileTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvFileTimeout, err)
		}
		cfg.Batch.FileTimeout = d
	}
	if v, ok := lookup(EnvPersist); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvPersist, err)
		}
		cfg.Batch.Persist = b
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
