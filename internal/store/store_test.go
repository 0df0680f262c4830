package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-dev/budget/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Init())
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestCreateAccount_Idempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateAccount("Checking", "USD", "$")
	require.NoError(t, err)
	second, err := s.CreateAccount("Checking", "USD", "$")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, countRows(t, s, "accounts"))
}

func TestCreateAccount_SymbolTooLong(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateAccount("Checking", "USD", "$$")
	require.ErrorIs(t, err, ErrSymbolTooLong)
	assert.Equal(t, 0, countRows(t, s, "accounts"), "failed create must insert nothing")
}

func TestCreateAccount_MultibyteSymbol(t *testing.T) {
	s := newTestStore(t)

	// One character, several bytes.
	id, err := s.CreateAccount("Savings", "EUR", "€")
	require.NoError(t, err)

	symbol, ok, err := s.AccountCurrencySymbol(id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "€", symbol)
}

func TestResolve_Absent(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Resolve(model.KindAccount, "Nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_InvalidKind(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Resolve(model.EntityKind("wallet"), "Checking")
	require.ErrorIs(t, err, ErrInvalidKind)
}

func TestCreatePayee_Idempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreatePayee("Grocer")
	require.NoError(t, err)
	second, err := s.CreatePayee("Grocer")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, countRows(t, s, "payees"))
}

func TestCreateCategory_Idempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateCategory("Food")
	require.NoError(t, err)
	second, err := s.CreateCategory("Food")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, countRows(t, s, "categories"))
}

func TestListAccounts_SortedByName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateAccount("Savings", "GBP", "£")
	require.NoError(t, err)
	_, err = s.CreateAccount("Checking", "USD", "$")
	require.NoError(t, err)

	accounts, err := s.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.Equal(t, "Savings", accounts[1].Name)
}

func TestListAccounts_Empty(t *testing.T) {
	s := newTestStore(t)

	accounts, err := s.ListAccounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestListCategories_Sorted(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Transport", "Food", "Rent"} {
		_, err := s.CreateCategory(name)
		require.NoError(t, err)
	}

	names, err := s.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Rent", "Transport"}, names)
}

func TestAccountCurrencySymbol_Unset(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateAccount("Cash", "GBP", "")
	require.NoError(t, err)

	_, ok, err := s.AccountCurrencySymbol(id)
	require.NoError(t, err)
	assert.False(t, ok, "empty symbol reads as absent")
}

func TestAccountCurrencySymbol_MissingAccount(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.AccountCurrencySymbol(42)
	require.NoError(t, err)
	assert.False(t, ok)
}
