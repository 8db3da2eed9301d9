// Package ledger keeps the set of accounts keyed by name and persists them to
// a Name,Balance CSV file.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/sasha-s/go-deadlock"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Ledger owns a collection of accounts. Insertion order is kept so saved
// files are deterministic.
type Ledger struct {
	mu     deadlock.RWMutex
	order  []string
	byName map[string]*model.Account
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{byName: make(map[string]*model.Account)}
}

// CreateAccount adds an account with the given starting balance. The starting
// balance may be zero or negative.
func (l *Ledger) CreateAccount(name string, startingBalance decimal.Decimal) (*model.Account, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byName[name]; ok {
		return nil, fmt.Errorf("%w: %s", model.ErrAlreadyExists, name)
	}
	acct := model.NewAccount(name, startingBalance)
	l.put(acct)
	return acct, nil
}

// Get returns the account for name. The pointer stays valid across Load:
// loading a file updates existing accounts in place.
func (l *Ledger) Get(name string) (*model.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.byName[name]
	return a, ok
}

// Lookup is Get with absence reported as model.ErrNotFound.
func (l *Ledger) Lookup(name string) (*model.Account, error) {
	a, ok := l.Get(name)
	if !ok {
		return nil, fmt.Errorf("account %w: %s", model.ErrNotFound, name)
	}
	return a, nil
}

// All returns all accounts in insertion order.
func (l *Ledger) All() []*model.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*model.Account, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.byName[name])
	}
	return out
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// Write serializes all accounts to w.
func (l *Ledger) Write(w io.Writer) error {
	accts := l.All()
	rows := make([]Row, len(accts))
	for i, a := range accts {
		rows[i] = Row{Name: a.Name(), Balance: a.Balance()}
	}
	return WriteRows(w, rows)
}

// Read parses r and merges the result: accounts named in the input take the
// stored balance, new names are appended and other accounts stay. Nothing
// changes if parsing fails.
func (l *Ledger) Read(r io.Reader) error {
	rows, err := ReadRows(r)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, row := range rows {
		if acct, ok := l.byName[row.Name]; ok {
			acct.Restore(row.Balance)
			continue
		}
		l.put(model.NewAccount(row.Name, row.Balance))
	}
	return nil
}

// Save writes the ledger to path, replacing any existing content.
func (l *Ledger) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer f.Close()

	if err := l.Write(f); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger file: %w", err)
	}
	return nil
}

// Load merges the accounts stored at path into the ledger. A missing file is
// reported as model.ErrNotFound, unparsable content as model.ErrMalformedContent.
func (l *Ledger) Load(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ledger file %s %w: %w", path, model.ErrNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("opening ledger file: %w", err)
	}
	defer f.Close()

	if err := l.Read(f); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// put inserts or replaces acct. Callers hold l.mu.
func (l *Ledger) put(acct *model.Account) {
	if _, ok := l.byName[acct.Name()]; !ok {
		l.order = append(l.order, acct.Name())
	}
	l.byName[acct.Name()] = acct
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", model.ErrInvalidName)
	}
	if strings.ContainsAny(name, ",\r\n\"") {
		return fmt.Errorf("%w: %q contains a delimiter", model.ErrInvalidName, name)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has surrounding spaces", model.ErrInvalidName, name)
	}
	return nil
}
