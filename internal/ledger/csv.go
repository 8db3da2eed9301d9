package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the first row of a ledger file.
const Header = "Name,Balance"

const (
	numFields  = 2
	colName    = 0
	colBalance = 1
	// Balances are always written with two fraction digits.
	balancePlaces = 2
)

// Row is one parsed ledger file row.
type Row struct {
	Name    string
	Balance decimal.Decimal
}

// ReadRows reads a ledger file. The first row is skipped as the header.
// Every failure is reported as model.ErrMalformedContent.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	// The header may have any shape; UnmarshalRow checks data rows.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
		}
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", model.ErrMalformedContent, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows writes the header followed by one row per entry.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a Row to CSV fields.
func MarshalRow(row Row) []string {
	rec := make([]string, numFields)
	rec[colName] = row.Name
	rec[colBalance] = row.Balance.StringFixed(balancePlaces)
	return rec
}

// UnmarshalRow converts CSV fields to a Row.
func UnmarshalRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	name := record[colName]
	if strings.TrimSpace(name) == "" {
		return Row{}, errors.New("empty account name")
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(record[colBalance]))
	if err != nil {
		return Row{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	return Row{Name: name, Balance: balance}, nil
}
