package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/shell"
)

func newCreateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [balance]",
		Short: "Create an account",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := shell.Command{Action: shell.ActionCreate, Name: args[0], Amount: decimal.Zero}
			if len(args) == 2 {
				amount, err := shell.ParseAmount(args[1])
				if err != nil {
					return shell.Present(err)
				}
				c.Amount = amount
			}
			return applyAndSave(cmd, opts, c)
		},
	}
}

func newDepositCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <name> <amount>",
		Short: "Deposit into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmountCommand(cmd, opts, shell.ActionDeposit, args[0], "", args[1])
		},
	}
}

func newWithdrawCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <name> <amount>",
		Short: "Withdraw from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmountCommand(cmd, opts, shell.ActionWithdraw, args[0], "", args[1])
		},
	}
}

func newTransferCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "Transfer between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmountCommand(cmd, opts, shell.ActionTransfer, args[0], args[1], args[2])
		},
	}
}

func newBalanceCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <name>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := opts.resolve()
			if err != nil {
				return err
			}
			l, err := openLedger(path)
			if err != nil {
				return shell.Present(err)
			}
			acct, err := l.Lookup(args[0])
			if err != nil {
				return shell.Present(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", acct.Name(), shell.Money(acct.Balance()))
			return nil
		},
	}
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := opts.resolve()
			if err != nil {
				return err
			}
			l, err := openLedger(path)
			if err != nil {
				return shell.Present(err)
			}
			return l.Write(cmd.OutOrStdout())
		},
	}
}

func runAmountCommand(cmd *cobra.Command, opts *options, action shell.Action, name, target, rawAmount string) error {
	amount, err := shell.ParseAmount(rawAmount)
	if err != nil {
		return shell.Present(err)
	}
	return applyAndSave(cmd, opts, shell.Command{Action: action, Name: name, Target: target, Amount: amount})
}

// applyAndSave loads the ledger, dispatches c and saves the result. The file
// is left untouched when c fails.
func applyAndSave(cmd *cobra.Command, opts *options, c shell.Command) error {
	_, path, err := opts.resolve()
	if err != nil {
		return err
	}
	l, err := openLedger(path)
	if err != nil {
		return shell.Present(err)
	}

	msg, err := shell.Dispatch(l, path, c)
	if err != nil {
		return shell.Present(err)
	}
	if err := l.Save(path); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
