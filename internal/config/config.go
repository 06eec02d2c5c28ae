// Package config resolves file locations for the store, backups,
// activity log, and export.
//
// Resolution order, lowest to highest precedence:
//
//	built-in defaults < YAML config file < environment variables
//
// Command-line flags override all of these at the CLI layer. A .env
// file in the working directory is loaded best-effort before the
// environment is read, so local setups can keep settings out of the
// shell profile. When nothing is configured the tool falls back to
// recbook.db, backups/, logs/activity.log and export.txt relative to
// the working directory.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file consulted when --config is not given.
const DefaultFile = "recbook.yaml"

// Environment variable names.
const (
	EnvDB         = "RECBOOK_DB"
	EnvBackupDir  = "RECBOOK_BACKUP_DIR"
	EnvLogFile    = "RECBOOK_LOG_FILE"
	EnvExportFile = "RECBOOK_EXPORT_FILE"
)

// Config holds the resolved file locations.
type Config struct {
	DB         string `yaml:"db"`
	BackupDir  string `yaml:"backupDir"`
	LogFile    string `yaml:"logFile"`
	ExportFile string `yaml:"exportFile"`
}

// Default returns the documented local fallback configuration.
func Default() Config {
	return Config{
		DB:         "recbook.db",
		BackupDir:  "backups",
		LogFile:    "logs/activity.log",
		ExportFile: "export.txt",
	}
}

// Load resolves the configuration.
//
// When file is non-empty it must exist and parse; when empty, the
// default config file is used if present and silently skipped if not.
// Malformed YAML is an error either way.
func Load(file string) (Config, error) {
	// Best-effort: a missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	path := file
	required := file != ""
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case required:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides non-empty environment values.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv(EnvBackupDir); v != "" {
		cfg.BackupDir = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvExportFile); v != "" {
		cfg.ExportFile = v
	}
}
