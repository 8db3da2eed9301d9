package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/ledger"
)

func newInitCommand(opts *options) *cobra.Command {
	var autosave bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger project",
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

			cfg := config.Default()
			if opts.ledgerFile != "" {
				cfg.Ledger.File = opts.ledgerFile
			}
			cfg.Shell.Autosave = autosave

			msg, err := runInit(absDir, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&autosave, "autosave", false, "save the ledger when the shell exits")

	return cmd
}

func runInit(dir string, cfg *config.Config) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Write tally.yaml.
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	// Write an empty ledger unless one is already there.
	path := cfg.Ledger.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("creating ledger dir: %w", err)
		}
		if err := ledger.New().Save(path); err != nil {
			return "", fmt.Errorf("writing ledger: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("checking ledger file: %w", err)
	}

	return fmt.Sprintf("Initialized ledger project at %s (%s)", dir, path), nil
}
