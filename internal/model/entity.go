package model

// EntityKind names one of the lookup tables an entity name can resolve
// against.
type EntityKind string

const (
	KindAccount  EntityKind = "account"
	KindPayee    EntityKind = "payee"
	KindCategory EntityKind = "category"
)

// Account is a row in the accounts table. CurrencySymbol is empty when the
// account was created without one; callers fall back to a configured default
// when printing.
type Account struct {
	ID             int64
	Name           string
	Currency       string
	CurrencySymbol string
}

// Payee is a row in the payees table.
type Payee struct {
	ID   int64
	Name string
}

// Category is a row in the categories table.
type Category struct {
	ID   int64
	Name string
}
