// Package importer loads budget CSV files into the ledger store. An
// "Initial Balance" row both declares an account and records its opening
// amount; every other row must reference an account declared earlier.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/budget-dev/budget/internal/model"
	"github.com/budget-dev/budget/internal/store"
)

// initialBalancePayee marks a row that declares a new account.
const initialBalancePayee = "Initial Balance"

// ErrUndeclaredAccount is returned when a row references an account with no
// prior Initial Balance row.
var ErrUndeclaredAccount = errors.New("account has not yet been declared with an initial balance")

// Result summarizes a completed import.
type Result struct {
	Rows            int
	AccountsCreated int
}

// ImportFile imports the budget CSV at path into st.
func ImportFile(path string, st *store.Store) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	res, err := Import(f, st)
	if err != nil {
		return res, fmt.Errorf("importing %s: %w", path, err)
	}
	return res, nil
}

// Import reads budget CSV rows and records them in file order. Each row
// commits on its own, so rows before a failure stay committed; the first
// undeclared account aborts the rest of the file.
func Import(r io.Reader, st *store.Store) (Result, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		if row.Payee == initialBalancePayee {
			created, err := declareAccount(st, row)
			if err != nil {
				return res, fmt.Errorf("row %d: %w", rowNum, err)
			}
			if created {
				res.AccountsCreated++
			}
		}

		accountID, ok, err := st.Resolve(model.KindAccount, row.Account)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if !ok {
			return res, fmt.Errorf("row %d: account %q: %w", rowNum, row.Account, ErrUndeclaredAccount)
		}

		payeeID, err := st.CreatePayee(row.Payee)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", rowNum, err)
		}
		categoryID, err := st.CreateCategory(row.Category)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if _, err := st.RecordTransaction(model.Transaction{
			Date:       row.Date,
			AccountID:  accountID,
			PayeeID:    payeeID,
			CategoryID: categoryID,
			Amount:     row.Amount,
			Notes:      row.Notes,
			Cleared:    row.Cleared,
		}); err != nil {
			return res, fmt.Errorf("row %d: %w", rowNum, err)
		}
		res.Rows++
	}
	return res, nil
}

// declareAccount creates the account named by an Initial Balance row. The
// row's notes carry "CURRENCY/SYMBOL". Reports whether a new account row was
// inserted.
func declareAccount(st *store.Store, row Row) (bool, error) {
	currency, symbol, found := strings.Cut(row.Notes, "/")
	if !found {
		return false, fmt.Errorf("initial balance notes %q: want CURRENCY/SYMBOL", row.Notes)
	}

	_, exists, err := st.Resolve(model.KindAccount, row.Account)
	if err != nil {
		return false, err
	}

	if _, err := st.CreateAccount(row.Account, currency, symbol); err != nil {
		return false, err
	}
	return !exists, nil
}
