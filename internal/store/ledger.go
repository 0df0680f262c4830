package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-dev/budget/internal/model"
)

const dateFormat = "2006-01-02"

// RecordTransaction writes one transaction row and commits immediately.
// The account, payee and category IDs are taken as given; callers resolve
// them first.
func (s *Store) RecordTransaction(txn model.Transaction) (int64, error) {
	cleared := 0
	if txn.Cleared {
		cleared = 1
	}

	res, err := s.db.Exec(
		"INSERT INTO transactions (date, account_id, payee_id, category_id, amount, notes, cleared) VALUES (?, ?, ?, ?, ?, ?, ?)",
		txn.Date.Format(dateFormat),
		txn.AccountID,
		txn.PayeeID,
		txn.CategoryID,
		txn.Amount.String(),
		txn.Notes,
		cleared,
	)
	if err != nil {
		return 0, fmt.Errorf("recording transaction: %w", err)
	}
	return lastInsertID(res)
}

// Balance sums the signed amounts of an account's transactions as exact
// decimals and rounds the aggregate to two places with banker's rounding.
// With onlyCleared, only rows whose cleared flag is 1 count. An account with
// no transactions balances to zero.
func (s *Store) Balance(accountID int64, onlyCleared bool) (decimal.Decimal, error) {
	query := "SELECT amount FROM transactions WHERE account_id = ?"
	if onlyCleared {
		query += " AND cleared = 1"
	}

	rows, err := s.db.Query(query, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying balance for account %d: %w", accountID, err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("scanning amount: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing stored amount %q: %w", raw, err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("reading balance rows: %w", err)
	}

	// Round the aggregate, not the individual amounts.
	return total.RoundBank(2), nil
}

// TransactionsByCategory returns every transaction filed under the named
// category, in insertion order. The slice is empty when the category is
// unknown or unused.
func (s *Store) TransactionsByCategory(name string) ([]model.CategoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT date, amount, category_name, COALESCE(notes, ''), cleared
		FROM transactions
		JOIN categories ON transactions.category_id = categories.id
		WHERE category_name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("querying category %q: %w", name, err)
	}
	defer rows.Close()

	var entries []model.CategoryEntry
	for rows.Next() {
		var (
			rawDate   string
			rawAmount string
			cleared   int
			e         model.CategoryEntry
		)
		if err := rows.Scan(&rawDate, &rawAmount, &e.Category, &e.Notes, &cleared); err != nil {
			return nil, fmt.Errorf("scanning category entry: %w", err)
		}

		e.Date, err = time.Parse(dateFormat, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", rawDate, err)
		}
		e.Amount, err = decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("parsing stored amount %q: %w", rawAmount, err)
		}
		e.Cleared = cleared == 1

		entries = append(entries, e)
	}
	return entries, rows.Err()
}
