// Package normalizer maps extracted statements onto the canonical ledger
// schema: ISO dates, one amount with a CREDIT/DEBIT direction, and
// canonical bank codes.
package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfusion/bankfusion/internal/dates"
	"github.com/bankfusion/bankfusion/internal/keywords"
	"github.com/bankfusion/bankfusion/internal/model"
)

// Keyword vocabularies for rows whose amounts do not settle the direction.
var (
	creditWords = keywords.New("credit", "deposit", "cr", "neft in", "imps in", "salary", "transfer in")
	debitWords  = keywords.New("debit", "withdraw", "withdrawal", "dr", "pos", "atm", "payment")
)

var bankCodes = map[string]string{
	"hdfc":          "HDFC",
	"axis":          "AXIS",
	"sbi":           "SBI",
	"union":         "UNION",
	"boi":           "BOI",
	"bank of india": "BOI",
	"central":       "CENTRAL",
}

// NormalizeDate returns s as YYYY-MM-DD, or s unchanged when no known
// layout parses it.
func NormalizeDate(s string) string {
	t, ok := dates.Parse(s)
	if !ok {
		return s
	}
	return t.Format(dates.ISO)
}

// NormalizeBankName maps a bank name to its canonical code. Unknown names
// are uppercased.
func NormalizeBankName(name string) string {
	if code, ok := bankCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return strings.ToUpper(name)
}

// Direction decides CREDIT or DEBIT. Amounts win; only a row with neither
// side set falls back to keywords in its label and description, credit
// words first. With no keyword at all the row is a debit.
func Direction(t model.RawTransaction) model.Direction {
	switch {
	case t.Credit.IsPositive():
		return model.Credit
	case t.Debit.IsPositive():
		return model.Debit
	case creditWords.ContainsAny(t.Type, t.Description):
		return model.Credit
	case debitWords.ContainsAny(t.Type, t.Description):
		return model.Debit
	default:
		return model.Debit
	}
}

// Amount collapses the debit/credit pair into one magnitude.
func Amount(t model.RawTransaction) decimal.Decimal {
	if t.Credit.IsPositive() {
		return t.Credit
	}
	return t.Debit
}

// Transaction normalizes one raw transaction.
func Transaction(t model.RawTransaction, bank, account string) model.NormalizedTransaction {
	return model.NormalizedTransaction{
		TransactionDate: NormalizeDate(t.Date),
		Description:     strings.TrimSpace(t.Description),
		Amount:          Amount(t),
		TransactionType: Direction(t),
		BankName:        bank,
		AccountNumber:   account,
		Balance:         t.Balance,
	}
}

// Normalize returns one normalized transaction per input transaction, in
// order.
func Normalize(st model.Statement) []model.NormalizedTransaction {
	bank := NormalizeBankName(st.BankName)
	out := make([]model.NormalizedTransaction, 0, len(st.Transactions))
	for _, t := range st.Transactions {
		out = append(out, Transaction(t, bank, st.AccountNumber))
	}
	return out
}

// NormalizeStatement is Normalize with the statement header carried along.
func NormalizeStatement(st model.Statement) model.NormalizedStatement {
	return model.NormalizedStatement{
		BankName:        NormalizeBankName(st.BankName),
		AccountNumber:   st.AccountNumber,
		AccountHolder:   st.AccountHolder,
		StatementPeriod: st.StatementPeriod,
		Transactions:    Normalize(st),
	}
}
