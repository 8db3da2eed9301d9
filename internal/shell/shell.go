package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/ledger"
)

// Menu is printed before every selection prompt.
const Menu = `
Menu:
1. Create Account
2. Deposit
3. Withdraw
4. Transfer
5. Save State
6. Load State
7. Exit`

// Shell reads menu selections from in and applies them to a ledger until the
// user exits or input ends. Failures are printed and never end the session.
type Shell struct {
	ledger *ledger.Ledger
	path   string
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a Shell over l. path is the ledger file used by save and load.
func New(l *ledger.Ledger, path string, in io.Reader, out io.Writer) *Shell {
	return &Shell{ledger: l, path: path, in: bufio.NewScanner(in), out: out}
}

// Run loops until Exit is chosen or input is exhausted.
func (s *Shell) Run() error {
	for {
		fmt.Fprintln(s.out, Menu)
		line, err := s.prompt("Choose an option: ")
		if err != nil {
			return endOfInput(err)
		}

		action, err := ParseChoice(line)
		if err != nil {
			fmt.Fprintln(s.out, Describe(err))
			continue
		}

		cmd, err := s.readCommand(action)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, Describe(err))
			continue
		}

		msg, err := Dispatch(s.ledger, s.path, cmd)
		if err != nil {
			fmt.Fprintln(s.out, Describe(err))
			continue
		}
		fmt.Fprintln(s.out, msg)

		if action == ActionExit {
			return nil
		}
	}
}

// readCommand prompts for the fields an action needs. Account names are
// checked as soon as they are entered, before the amount is asked for.
func (s *Shell) readCommand(action Action) (Command, error) {
	cmd := Command{Action: action}
	var err error

	switch action {
	case ActionCreate:
		if cmd.Name, err = s.prompt("Enter account name: "); err != nil {
			return cmd, err
		}
		cmd.Amount, err = s.promptAmount()

	case ActionDeposit, ActionWithdraw:
		if cmd.Name, err = s.promptAccount(); err != nil {
			return cmd, err
		}
		cmd.Amount, err = s.promptAmount()

	case ActionTransfer:
		if cmd.Name, err = s.promptAccount(); err != nil {
			return cmd, err
		}
		if cmd.Target, err = s.promptAccount(); err != nil {
			return cmd, err
		}
		cmd.Amount, err = s.promptAmount()
	}
	return cmd, err
}

func (s *Shell) promptAccount() (string, error) {
	name, err := s.prompt("Enter account name: ")
	if err != nil {
		return "", err
	}
	if _, err := s.ledger.Lookup(name); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Shell) promptAmount() (decimal.Decimal, error) {
	line, err := s.prompt("Enter amount: ")
	if err != nil {
		return decimal.Zero, err
	}
	return ParseAmount(line)
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
