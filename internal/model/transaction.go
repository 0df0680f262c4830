package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row in the transactions table. The account, payee and
// category references must already exist when the row is written; the store
// does not re-check them.
type Transaction struct {
	ID         int64
	Date       time.Time
	AccountID  int64
	PayeeID    int64
	CategoryID int64
	Amount     decimal.Decimal // negative = expense, positive = income
	Notes      string
	Cleared    bool
}

// CategoryEntry is one line of a per-category transaction report.
type CategoryEntry struct {
	Date     time.Time
	Amount   decimal.Decimal
	Category string
	Notes    string
	Cleared  bool
}
