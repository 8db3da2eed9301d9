package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// options holds the persistent flags shared by all subcommands.
type options struct {
	configPath string
	ledgerFile string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Minimal named-account ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&opts.ledgerFile, "file", "", "ledger file (overrides config; relative to the config directory)")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newCreateCommand(opts),
		newDepositCommand(opts),
		newWithdrawCommand(opts),
		newTransferCommand(opts),
		newBalanceCommand(opts),
		newListCommand(opts),
		newShellCommand(opts),
	)

	return rootCmd
}

// resolve loads the config named by --config (defaults when absent), applies
// a .env file next to it and the environment, then --file. A relative ledger
// path is taken from the config directory, as init writes it.
func (o *options) resolve() (*config.Config, string, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, "", err
	}

	baseDir := filepath.Dir(o.configPath)
	if err := config.ApplyEnv(cfg, filepath.Join(baseDir, ".env")); err != nil {
		return nil, "", err
	}
	config.ApplyDebug(cfg.Debug)

	path := cfg.Ledger.File
	if o.ledgerFile != "" {
		path = o.ledgerFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return cfg, path, nil
}

// openLedger loads the ledger file at path. A missing file yields an empty
// ledger, which the first save will create.
func openLedger(path string) (*ledger.Ledger, error) {
	l := ledger.New()
	if err := l.Load(path); err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return l, nil
}
