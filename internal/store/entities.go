package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/budget-dev/budget/internal/model"
)

// kindTable maps an entity kind to its table and name column.
func kindTable(kind model.EntityKind) (table, column string, err error) {
	switch kind {
	case model.KindAccount:
		return "accounts", "account_name", nil
	case model.KindPayee:
		return "payees", "payee_name", nil
	case model.KindCategory:
		return "categories", "category_name", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}

// Resolve looks up an entity by exact name. ok is false when no row matches;
// that is an absent value, not an error.
func (s *Store) Resolve(kind model.EntityKind, name string) (id int64, ok bool, err error) {
	table, column, err := kindTable(kind)
	if err != nil {
		return 0, false, err
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE %s = ?", table, column)
	err = s.db.QueryRow(query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolving %s %q: %w", kind, name, err)
	}
	return id, true, nil
}

// CreateAccount returns the existing account named name, or inserts a new one
// with the given currency and symbol. The symbol must be at most one
// character. Lookup-then-insert is not atomic; the single-writer assumption
// makes that acceptable.
func (s *Store) CreateAccount(name, currency, symbol string) (int64, error) {
	if len([]rune(symbol)) > 1 {
		return 0, fmt.Errorf("account %q: %w", name, ErrSymbolTooLong)
	}

	if id, ok, err := s.Resolve(model.KindAccount, name); err != nil {
		return 0, err
	} else if ok {
		return id, nil
	}

	res, err := s.db.Exec(
		"INSERT INTO accounts (account_name, currency, currency_symbol) VALUES (?, ?, ?)",
		name, currency, symbol,
	)
	if err != nil {
		return 0, fmt.Errorf("creating account %q: %w", name, err)
	}
	return lastInsertID(res)
}

// CreatePayee returns the existing payee named name, creating it first if
// needed.
func (s *Store) CreatePayee(name string) (int64, error) {
	if id, ok, err := s.Resolve(model.KindPayee, name); err != nil {
		return 0, err
	} else if ok {
		return id, nil
	}

	res, err := s.db.Exec("INSERT INTO payees (payee_name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("creating payee %q: %w", name, err)
	}
	return lastInsertID(res)
}

// CreateCategory returns the existing category named name, creating it first
// if needed.
func (s *Store) CreateCategory(name string) (int64, error) {
	if id, ok, err := s.Resolve(model.KindCategory, name); err != nil {
		return 0, err
	} else if ok {
		return id, nil
	}

	res, err := s.db.Exec("INSERT INTO categories (category_name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("creating category %q: %w", name, err)
	}
	return lastInsertID(res)
}

// ListAccounts returns all accounts sorted by name. The slice is empty when
// the table is.
func (s *Store) ListAccounts() ([]model.Account, error) {
	rows, err := s.db.Query(
		"SELECT id, account_name, currency, COALESCE(currency_symbol, '') FROM accounts ORDER BY account_name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Currency, &a.CurrencySymbol); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ListCategories returns all category names sorted ascending.
func (s *Store) ListCategories() ([]string, error) {
	rows, err := s.db.Query("SELECT category_name FROM categories ORDER BY category_name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AccountCurrencySymbol returns the symbol set on an account. ok is false
// when the account does not exist or has no symbol.
func (s *Store) AccountCurrencySymbol(accountID int64) (symbol string, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT COALESCE(currency_symbol, '') FROM accounts WHERE id = ?", accountID,
	).Scan(&symbol)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading currency symbol for account %d: %w", accountID, err)
	}
	return symbol, symbol != "", nil
}

func lastInsertID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}
	return id, nil
}
