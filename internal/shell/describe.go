package shell

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cleared-dev/tally/internal/model"
)

// Describe returns the message shown to the user for err.
func Describe(err error) string {
	var pathErr *fs.PathError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidChoice):
		return "Invalid choice. Please try again."
	case errors.Is(err, ErrInvalidInput):
		return "Amount is invalid. Please input only numeric value."
	case errors.Is(err, model.ErrInvalidAmount):
		return "Deposit amount must be positive."
	case errors.Is(err, model.ErrInsufficientFunds):
		return "Insufficient funds or invalid amount."
	case errors.Is(err, model.ErrSameAccount):
		return "Unable to transfer funds to the same account."
	case errors.Is(err, model.ErrAlreadyExists):
		return "Account already exists."
	case errors.Is(err, model.ErrInvalidName):
		return "Account name must be non-empty, without leading or trailing spaces, commas, quotes or line breaks."
	case errors.Is(err, model.ErrNotFound) && errors.As(err, &pathErr):
		return fmt.Sprintf("File %s not found.", pathErr.Path)
	case errors.Is(err, model.ErrNotFound):
		return "Account not found."
	case errors.Is(err, model.ErrMalformedContent):
		return fmt.Sprintf("Saved state is malformed: %v", err)
	}
	return err.Error()
}

// Present wraps err so that its message is the Describe text. The original
// error stays reachable through errors.Is and errors.As.
func Present(err error) error {
	if err == nil {
		return nil
	}
	return presented{err: err}
}

type presented struct {
	err error
}

func (p presented) Error() string { return Describe(p.err) }

func (p presented) Unwrap() error { return p.err }
