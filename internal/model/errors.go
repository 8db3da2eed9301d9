package model

import "errors"

// Error kinds reported by accounts and the ledger. Match them with errors.Is;
// wrapped errors carry extra context such as the file path or row number.
var (
	ErrInvalidAmount     = errors.New("deposit amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds or invalid amount")
	ErrSameAccount       = errors.New("unable to transfer funds to the same account")
	ErrAlreadyExists     = errors.New("account already exists")
	ErrNotFound          = errors.New("not found")
	ErrMalformedContent  = errors.New("malformed content")
	ErrInvalidName       = errors.New("invalid account name")
)
