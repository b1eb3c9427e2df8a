package model

import "github.com/shopspring/decimal"

// Direction is the canonical money direction of a normalized transaction.
type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

// NormalizedTransaction is one row of the canonical ledger.
type NormalizedTransaction struct {
	TransactionDate string // YYYY-MM-DD, or the source string if unparseable
	Description     string
	Amount          decimal.Decimal // always non-negative; direction in TransactionType
	TransactionType Direction
	BankName        string // canonical code, e.g. HDFC
	AccountNumber   string
	Balance         decimal.Decimal
}

// NormalizedStatement is the full normalized record for one statement.
type NormalizedStatement struct {
	BankName        string
	AccountNumber   string
	AccountHolder   string
	StatementPeriod string
	Transactions    []NormalizedTransaction
}
