package model

import (
	"github.com/sasha-s/go-deadlock"
	"github.com/shopspring/decimal"
)

// Account is a named balance holder. The balance only changes through
// Deposit, Withdraw and Transfer, or Restore when persisted state is loaded.
type Account struct {
	mu      deadlock.Mutex
	name    string
	balance decimal.Decimal
}

// NewAccount returns an account with the given starting balance. The balance
// is taken as-is; positivity rules only apply to later operations.
func NewAccount(name string, balance decimal.Decimal) *Account {
	return &Account{name: name, balance: balance}
}

// Name returns the account name.
func (a *Account) Name() string {
	return a.name
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Restore replaces the balance with one read from storage. No positivity
// rules apply, matching NewAccount.
func (a *Account) Restore(balance decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = balance
}

// Deposit adds amount to the balance. Amount must be positive.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.credit(amount)
	return nil
}

// Withdraw removes amount from the balance. Amount must be positive and no
// greater than the balance; withdrawing the whole balance leaves exactly zero.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInsufficientFunds
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Transfer moves amount from a to target. Both balances change together or
// not at all. A transfer to the same account is rejected for every amount.
func (a *Account) Transfer(amount decimal.Decimal, target *Account) error {
	if target == nil {
		return ErrNotFound
	}
	if a.sameAs(target) {
		return ErrSameAccount
	}
	if !amount.IsPositive() {
		return ErrInsufficientFunds
	}

	// Lock in name order so opposing transfers cannot deadlock.
	first, second := a, target
	if second.name < first.name {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	target.credit(amount)
	return nil
}

// credit is the deposit path without validation or locking. Callers hold a.mu.
func (a *Account) credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

func (a *Account) sameAs(other *Account) bool {
	return a == other || a.name == other.name
}
