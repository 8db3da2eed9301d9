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
	"github.com/sasha-s/go-deadlock"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "tally.yaml"

// Environment variables that override values from the config file.
const (
	EnvFile              = "TALLY_FILE"
	EnvAutoload          = "TALLY_AUTOLOAD"
	EnvAutosave          = "TALLY_AUTOSAVE"
	EnvDeadlockDetection = "TALLY_DEADLOCK_DETECTION"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Shell  ShellConfig  `yaml:"shell"`
	Debug  DebugConfig  `yaml:"debug"`
}

// LedgerConfig locates the persisted ledger.
type LedgerConfig struct {
	File string `yaml:"file"`
}

// ShellConfig controls the interactive shell.
type ShellConfig struct {
	Autoload bool `yaml:"autoload"`
	Autosave bool `yaml:"autosave"`
}

// DebugConfig toggles runtime lock diagnostics.
type DebugConfig struct {
	DeadlockDetection bool          `yaml:"deadlock_detection"`
	DeadlockTimeout   time.Duration `yaml:"deadlock_timeout"`
}

// Load reads a tally.yaml file from disk.
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

// LoadOrDefault is Load, falling back to Default when path does not exist.
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
		Ledger: LedgerConfig{
			File: "bank_state.csv",
		},
		Shell: ShellConfig{
			Autoload: true,
			Autosave: false,
		},
		Debug: DebugConfig{
			DeadlockDetection: false,
			DeadlockTimeout:   30 * time.Second,
		},
	}
}

// ApplyEnv loads the given dotenv files (missing ones are skipped) into the
// process environment and then applies TALLY_* overrides to cfg. Variables
// already set in the environment win over dotenv values.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	var present []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return fmt.Errorf("loading env files: %w", err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvFile)); v != "" {
		cfg.Ledger.File = v
	}
	for name, dst := range map[string]*bool{
		EnvAutoload:          &cfg.Shell.Autoload,
		EnvAutosave:          &cfg.Shell.Autosave,
		EnvDeadlockDetection: &cfg.Debug.DeadlockDetection,
	} {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", name, v, err)
		}
		*dst = b
	}
	return nil
}

// ApplyDebug configures the lock detector used by accounts and ledgers.
func ApplyDebug(d DebugConfig) {
	deadlock.Opts.Disable = !d.DeadlockDetection
	if d.DeadlockTimeout > 0 {
		deadlock.Opts.DeadlockTimeout = d.DeadlockTimeout
	}
}
