package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/shell"
)

func newShellCommand(opts *options) *cobra.Command {
	var noAutoload bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.resolve()
			if err != nil {
				return err
			}

			l := ledger.New()
			if cfg.Shell.Autoload && !noAutoload {
				err := l.Load(path)
				switch {
				case errors.Is(err, model.ErrNotFound):
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", shell.Describe(err))
				case err != nil:
					return shell.Present(err)
				}
			}

			sh := shell.New(l, path, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := sh.Run(); err != nil {
				return err
			}

			if cfg.Shell.Autosave {
				if err := l.Save(path); err != nil {
					return fmt.Errorf("autosave: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bank state saved to %s.\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAutoload, "no-load", false, "start with an empty ledger")

	return cmd
}
