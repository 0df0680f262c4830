package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Column names of a budget CSV export. Header names are case-sensitive;
// column order is free.
const (
	colDate     = "DATE"
	colAccount  = "ACCOUNT"
	colPayee    = "PAYEE"
	colCategory = "CATEGORY"
	colAmount   = "AMOUNT"
	colNotes    = "NOTES"
	colCleared  = "CLEARED"
)

var requiredColumns = []string{colDate, colAccount, colPayee, colCategory, colAmount, colNotes, colCleared}

const dateFormat = "2006-01-02"

// Row is one parsed budget CSV row.
type Row struct {
	Date     time.Time
	Account  string
	Payee    string
	Category string
	Amount   decimal.Decimal
	Notes    string
	Cleared  bool
}

// ReadRows parses a budget CSV: a header row naming the columns, then one
// row per transaction. Any malformed row fails the whole read.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading budget CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("budget CSV has no header row")
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("budget CSV missing column %s", name)
		}
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := unmarshalRow(rec, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func unmarshalRow(rec []string, index map[string]int) (Row, error) {
	date, err := time.Parse(dateFormat, rec[index[colDate]])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", rec[index[colDate]], err)
	}

	amount, err := decimal.NewFromString(rec[index[colAmount]])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[index[colAmount]], err)
	}

	return Row{
		Date:     date,
		Account:  rec[index[colAccount]],
		Payee:    rec[index[colPayee]],
		Category: rec[index[colCategory]],
		Amount:   amount,
		Notes:    rec[index[colNotes]],
		Cleared:  parseCleared(rec[index[colCleared]]),
	}, nil
}

// parseCleared treats exactly "y", "Y" or "1" as cleared. Anything else,
// including "yes" and the empty string, is uncleared.
func parseCleared(v string) bool {
	switch v {
	case "y", "Y", "1":
		return true
	}
	return false
}
