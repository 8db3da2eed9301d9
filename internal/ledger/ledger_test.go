package ledger

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireBalance(t *testing.T, l *Ledger, name, want string) {
	t.Helper()
	acct, ok := l.Get(name)
	require.True(t, ok, "account %s should exist", name)
	assert.True(t, dec(want).Equal(acct.Balance()), "%s balance = %s, want %s", name, acct.Balance(), want)
}

func TestCreateAccount(t *testing.T) {
	l := New()
	acct, err := l.CreateAccount("Alice", dec("50.00"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", acct.Name())

	requireBalance(t, l, "Alice", "50.00")
	assert.Equal(t, 1, l.Len())
}

func TestCreateAccount_ZeroAndNegativeStart(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Zero", decimal.Zero)
	require.NoError(t, err)
	_, err = l.CreateAccount("Negative", dec("-20"))
	require.NoError(t, err)

	requireBalance(t, l, "Zero", "0")
	requireBalance(t, l, "Negative", "-20")
}

func TestCreateAccount_AlreadyExists(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", dec("50.00"))
	require.NoError(t, err)

	_, err = l.CreateAccount("Alice", dec("100.00"))
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
	requireBalance(t, l, "Alice", "50.00")
	assert.Equal(t, 1, l.Len())
}

func TestCreateAccount_InvalidName(t *testing.T) {
	l := New()
	for _, name := range []string{"", "   ", "Smith, John", "two\nlines", `say "hi"`, " Alice", "Alice ", "\tAlice"} {
		_, err := l.CreateAccount(name, decimal.Zero)
		assert.ErrorIs(t, err, model.ErrInvalidName, "name %q", name)
	}
	assert.Equal(t, 0, l.Len())
}

func TestGet(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", decimal.Zero)
	require.NoError(t, err)

	acct, ok := l.Get("Alice")
	require.True(t, ok)
	// A zero balance is still a found account.
	assert.True(t, acct.Balance().IsZero())

	acct, ok = l.Get("Nobody")
	assert.False(t, ok)
	assert.Nil(t, acct)
}

func TestLookup(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", dec("1"))
	require.NoError(t, err)

	acct, err := l.Lookup("Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", acct.Name())

	_, err = l.Lookup("Nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAll_InsertionOrder(t *testing.T) {
	l := New()
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		_, err := l.CreateAccount(name, decimal.Zero)
		require.NoError(t, err)
	}

	var names []string
	for _, a := range l.All() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"Carol", "Alice", "Bob"}, names)
}

func TestTransferBetweenLedgerAccounts(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", dec("100.00"))
	require.NoError(t, err)
	_, err = l.CreateAccount("Bob", dec("50.00"))
	require.NoError(t, err)

	alice, _ := l.Get("Alice")
	bob, _ := l.Get("Bob")
	require.NoError(t, alice.Transfer(dec("50.00"), bob))

	requireBalance(t, l, "Alice", "50.00")
	requireBalance(t, l, "Bob", "100.00")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", dec("100.00"))
	require.NoError(t, err)
	_, err = l.CreateAccount("Bob", dec("0.1"))
	require.NoError(t, err)
	_, err = l.CreateAccount("Carol", dec("2.345"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bank_state.csv")
	require.NoError(t, l.Save(path))

	l2 := New()
	require.NoError(t, l2.Load(path))
	assert.Equal(t, 3, l2.Len())
	requireBalance(t, l2, "Alice", "100.00")
	requireBalance(t, l2, "Bob", "0.10")
	// Precision is two decimal places.
	requireBalance(t, l2, "Carol", "2.35")
}

func TestSave_FileContents(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", dec("100"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bank_state.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than the new file\n"), 0o644))
	require.NoError(t, l.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,Balance\nAlice,100.00\n", string(data))
}

func TestSave_IOError(t *testing.T) {
	l := New()
	err := l.Save(filepath.Join(t.TempDir(), "missing-dir", "bank_state.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_NotFound(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", dec("10"))
	require.NoError(t, err)

	err = l.Load(filepath.Join(t.TempDir(), "nonexistent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.Equal(t, 1, l.Len())
	requireBalance(t, l, "Alice", "10")
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_state.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Balance\nBob,5.00\nAlice,1.00,extra\n"), 0o644))

	l := New()
	_, err := l.CreateAccount("Alice", dec("10"))
	require.NoError(t, err)

	err = l.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMalformedContent)
	assert.NotErrorIs(t, err, model.ErrNotFound)

	// Nothing from the bad file is applied.
	assert.Equal(t, 1, l.Len())
	requireBalance(t, l, "Alice", "10")
	_, ok := l.Get("Bob")
	assert.False(t, ok)
}

func TestLoad_Merges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_state.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Balance\nAlice,1.00\nDave,4.00\n"), 0o644))

	l := New()
	_, err := l.CreateAccount("Alice", dec("10"))
	require.NoError(t, err)
	_, err = l.CreateAccount("Bob", dec("20"))
	require.NoError(t, err)

	require.NoError(t, l.Load(path))

	requireBalance(t, l, "Alice", "1.00")
	requireBalance(t, l, "Bob", "20")
	requireBalance(t, l, "Dave", "4.00")

	var names []string
	for _, a := range l.All() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"Alice", "Bob", "Dave"}, names)
}

func TestLoad_KeepsBorrowedAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank_state.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Balance\nAlice,1.00\n"), 0o644))

	l := New()
	alice, err := l.CreateAccount("Alice", dec("10"))
	require.NoError(t, err)

	require.NoError(t, l.Load(path))
	assert.True(t, dec("1").Equal(alice.Balance()))

	require.NoError(t, alice.Deposit(dec("2")))
	got, ok := l.Get("Alice")
	require.True(t, ok)
	assert.Same(t, alice, got)
	requireBalance(t, l, "Alice", "3")
}

func TestLoad_SingleAccountScenario(t *testing.T) {
	l := New()
	_, err := l.CreateAccount("Alice", dec("100.00"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bank_state.csv")
	require.NoError(t, l.Save(path))

	fresh := New()
	require.NoError(t, fresh.Load(path))
	requireBalance(t, fresh, "Alice", "100.00")
}
