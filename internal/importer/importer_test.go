package importer

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-dev/budget/internal/model"
	"github.com/budget-dev/budget/internal/store"
)

const header = "DATE,ACCOUNT,PAYEE,CATEGORY,AMOUNT,NOTES,CLEARED\n"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "budget.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Init())
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestImport_InitialBalanceBootstrapsAccount(t *testing.T) {
	s := newTestStore(t)

	csv := header + "2024-01-01,Checking,Initial Balance,Equity,100.00,USD/$,1\n"
	res, err := Import(strings.NewReader(csv), s)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, 1, res.AccountsCreated)

	accounts, err := s.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.Equal(t, "USD", accounts[0].Currency)
	assert.Equal(t, "$", accounts[0].CurrencySymbol)

	balance, err := s.Balance(accounts[0].ID, true)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("100.00")), "got %s", balance)
}

func TestImport_InitialBalanceIdempotent(t *testing.T) {
	s := newTestStore(t)

	csv := header +
		"2024-01-01,Checking,Initial Balance,Equity,100.00,USD/$,1\n" +
		"2024-02-01,Checking,Initial Balance,Equity,50.00,USD/$,1\n"
	res, err := Import(strings.NewReader(csv), s)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 1, res.AccountsCreated, "second declaration reuses the account")

	accounts, err := s.ListAccounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestImport_UndeclaredAccountAborts(t *testing.T) {
	s := newTestStore(t)

	csv := header +
		"2024-01-01,Checking,Initial Balance,Equity,100.00,USD/$,1\n" +
		"2024-01-02,Savings,Grocer,Food,-10.00,,1\n" +
		"2024-01-03,Checking,Grocer,Food,-5.00,,1\n"
	res, err := Import(strings.NewReader(csv), s)
	require.ErrorIs(t, err, ErrUndeclaredAccount)
	assert.Contains(t, err.Error(), "Savings")
	assert.Equal(t, 1, res.Rows, "rows before the failure stay committed")

	// Row 1 is committed, rows 2 and 3 are not.
	id, ok, err := s.Resolve(model.KindAccount, "Checking")
	require.NoError(t, err)
	require.True(t, ok)
	balance, err := s.Balance(id, false)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("100.00")), "got %s", balance)
}

func TestImport_ResolvesPayeesAndCategories(t *testing.T) {
	s := newTestStore(t)

	csv := header +
		"2024-01-01,Checking,Initial Balance,Equity,100.00,USD/$,1\n" +
		"2024-01-02,Checking,Grocer,Food,-10.00,,1\n" +
		"2024-01-03,Checking,Grocer,Food,-5.00,,\n"
	_, err := Import(strings.NewReader(csv), s)
	require.NoError(t, err)

	_, ok, err := s.Resolve(model.KindPayee, "Grocer")
	require.NoError(t, err)
	assert.True(t, ok)

	names, err := s.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Equity", "Food"}, names)
}

func TestImport_NotesWithoutSlash(t *testing.T) {
	s := newTestStore(t)

	csv := header + "2024-01-01,Checking,Initial Balance,Equity,100.00,USD,1\n"
	_, err := Import(strings.NewReader(csv), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CURRENCY/SYMBOL")
}

func TestImport_BadAmount(t *testing.T) {
	s := newTestStore(t)

	csv := header + "2024-01-01,Checking,Initial Balance,Equity,lots,USD/$,1\n"
	_, err := Import(strings.NewReader(csv), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestReadRows_HeaderOrderIndependent(t *testing.T) {
	csv := "CLEARED,AMOUNT,DATE,ACCOUNT,PAYEE,CATEGORY,NOTES\n" +
		"y,-3.50,2024-05-01,Checking,Cafe,Food,flat white\n"
	rows, err := ReadRows(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, "Checking", rows[0].Account)
	assert.Equal(t, "Cafe", rows[0].Payee)
	assert.Equal(t, "Food", rows[0].Category)
	assert.True(t, rows[0].Amount.Equal(dec("-3.50")))
	assert.Equal(t, "flat white", rows[0].Notes)
	assert.True(t, rows[0].Cleared)
}

func TestReadRows_MissingColumn(t *testing.T) {
	csv := "DATE,ACCOUNT,PAYEE,CATEGORY,AMOUNT,NOTES\n" +
		"2024-01-01,Checking,Grocer,Food,-10.00,\n"
	_, err := ReadRows(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLEARED")
}

func TestReadRows_Empty(t *testing.T) {
	_, err := ReadRows(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseCleared(t *testing.T) {
	cleared := []string{"y", "Y", "1"}
	for _, v := range cleared {
		assert.True(t, parseCleared(v), "%q should be cleared", v)
	}

	// Only the exact single values count; "yes" and the empty string do
	// not.
	uncleared := []string{"", "n", "N", "0", "yes", "Y1", "yY", "11", "true"}
	for _, v := range uncleared {
		assert.False(t, parseCleared(v), "%q should not be cleared", v)
	}
}
