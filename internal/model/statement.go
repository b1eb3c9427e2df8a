package model

import "github.com/shopspring/decimal"

// Display labels carried on RawTransaction.Type.
const (
	LabelCredit = "Credit"
	LabelDebit  = "Debit"
)

// Statement is one extracted bank statement: metadata plus its transactions
// in the order the extractor discovered them.
type Statement struct {
	BankName        string // as assigned by the extractor, not canonical
	AccountHolder   string
	AccountNumber   string
	StatementPeriod string
	Transactions    []RawTransaction
}

// RawTransaction is a transaction as printed on the statement.
type RawTransaction struct {
	Date        string // source format, not normalized
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Balance     decimal.Decimal
	Type        string // LabelCredit or LabelDebit
}

// Label returns the display label for a debit/credit pair.
// Ties (both zero) label as Debit.
func Label(debit, credit decimal.Decimal) string {
	if credit.IsPositive() {
		return LabelCredit
	}
	return LabelDebit
}

// NewRawTransaction builds a RawTransaction with its label set from the amounts.
func NewRawTransaction(date, desc string, debit, credit, balance decimal.Decimal) RawTransaction {
	return RawTransaction{
		Date:        date,
		Description: desc,
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
		Type:        Label(debit, credit),
	}
}

// IsEmpty reports whether neither side carries an amount.
func (t RawTransaction) IsEmpty() bool {
	return !t.Debit.IsPositive() && !t.Credit.IsPositive()
}
