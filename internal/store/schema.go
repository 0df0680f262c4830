package store

import "fmt"

// Schema defines the four ledger tables. Amounts are stored as text so they
// round-trip through decimal arithmetic exactly; cleared is an integer 0/1
// flag. Foreign keys are declared and enabled on the connection, but the
// importer resolves references before writing rather than relying on them.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_name TEXT NOT NULL UNIQUE,
    currency TEXT NOT NULL,
    currency_symbol TEXT
);

CREATE TABLE IF NOT EXISTS payees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    payee_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    account_id INTEGER NOT NULL,
    payee_id INTEGER NOT NULL,
    category_id INTEGER NOT NULL,
    amount TEXT NOT NULL,
    notes TEXT,
    cleared INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (account_id) REFERENCES accounts (id),
    FOREIGN KEY (payee_id) REFERENCES payees (id),
    FOREIGN KEY (category_id) REFERENCES categories (id)
);
`

// Init creates the schema tables. Only the explicit new-db path calls this;
// plain opens expect the schema to already exist.
func (s *Store) Init() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
