// Package shell implements the interactive menu over a ledger: parsing of
// user selections and amounts, a dispatcher that applies one command, and
// the text shown for every outcome.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/ledger"
)

// Action is a menu selection.
type Action int

const (
	ActionCreate Action = iota + 1
	ActionDeposit
	ActionWithdraw
	ActionTransfer
	ActionSave
	ActionLoad
	ActionExit
)

var (
	ErrInvalidChoice = errors.New("invalid choice")
	ErrInvalidInput  = errors.New("invalid numeric input")
)

var actionLabels = map[Action]string{
	ActionCreate:   "Create Account",
	ActionDeposit:  "Deposit",
	ActionWithdraw: "Withdraw",
	ActionTransfer: "Transfer",
	ActionSave:     "Save State",
	ActionLoad:     "Load State",
	ActionExit:     "Exit",
}

func (a Action) String() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Command is one parsed request against the ledger. Target is only used by
// transfers; Amount is unused by save, load and exit.
type Command struct {
	Action Action
	Name   string
	Target string
	Amount decimal.Decimal
}

// ParseChoice converts a menu selection ("1".."7") to an Action.
func ParseChoice(s string) (Action, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return ActionCreate, nil
	case "2":
		return ActionDeposit, nil
	case "3":
		return ActionWithdraw, nil
	case "4":
		return ActionTransfer, nil
	case "5":
		return ActionSave, nil
	case "6":
		return ActionLoad, nil
	case "7":
		return ActionExit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
}

// ParseAmount parses user input as a decimal amount. Sign is not checked
// here; the ledger decides which amounts are acceptable.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return d, nil
}

// Dispatch applies cmd to l and returns the confirmation text. path is the
// ledger file used by save and load.
func Dispatch(l *ledger.Ledger, path string, cmd Command) (string, error) {
	switch cmd.Action {
	case ActionCreate:
		if _, err := l.CreateAccount(cmd.Name, cmd.Amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Account created for %s with starting balance of %s.", cmd.Name, Money(cmd.Amount)), nil

	case ActionDeposit:
		acct, err := l.Lookup(cmd.Name)
		if err != nil {
			return "", err
		}
		if err := acct.Deposit(cmd.Amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deposited %s to %s's account.", Money(cmd.Amount), cmd.Name), nil

	case ActionWithdraw:
		acct, err := l.Lookup(cmd.Name)
		if err != nil {
			return "", err
		}
		if err := acct.Withdraw(cmd.Amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Withdrew %s from %s's account.", Money(cmd.Amount), cmd.Name), nil

	case ActionTransfer:
		from, err := l.Lookup(cmd.Name)
		if err != nil {
			return "", err
		}
		to, err := l.Lookup(cmd.Target)
		if err != nil {
			return "", err
		}
		if err := from.Transfer(cmd.Amount, to); err != nil {
			return "", err
		}
		return fmt.Sprintf("Transferred %s from %s's account to %s's account.", Money(cmd.Amount), cmd.Name, cmd.Target), nil

	case ActionSave:
		if err := l.Save(path); err != nil {
			return "", err
		}
		return fmt.Sprintf("Bank state saved to %s.", path), nil

	case ActionLoad:
		if err := l.Load(path); err != nil {
			return "", err
		}
		return fmt.Sprintf("Bank state loaded from %s.", path), nil

	case ActionExit:
		return "Exiting the bank system.", nil
	}
	return "", fmt.Errorf("%w: %v", ErrInvalidChoice, cmd.Action)
}

// Money renders an amount as "$12.34".
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
