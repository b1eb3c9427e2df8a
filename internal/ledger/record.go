package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/bankfusion/bankfusion/internal/model"
)

// StatementRecord is the JSON shape of an extracted statement.
type StatementRecord struct {
	BankName        string              `json:"bank_name"`
	AccountHolder   string              `json:"account_holder"`
	AccountNumber   string              `json:"account_number"`
	StatementPeriod string              `json:"statement_period"`
	Transactions    []RawTransactionRow `json:"transactions"`
}

// RawTransactionRow is the JSON shape of an extracted transaction.
type RawTransactionRow struct {
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	Debit           float64 `json:"debit"`
	Credit          float64 `json:"credit"`
	Balance         float64 `json:"balance"`
	TransactionType string  `json:"transaction_type"`
}

// NormalizedRecord is the JSON shape of a normalized statement.
type NormalizedRecord struct {
	BankName        string          `json:"bank_name"`
	AccountNumber   string          `json:"account_number"`
	AccountHolder   string          `json:"account_holder"`
	StatementPeriod string          `json:"statement_period"`
	Transactions    []NormalizedRow `json:"transactions"`
}

// NormalizedRow is one canonical ledger row, shared by the JSON and CSV
// encodings.
type NormalizedRow struct {
	TransactionDate string  `json:"transaction_date" csv:"transaction_date"`
	Description     string  `json:"description" csv:"description"`
	Amount          float64 `json:"amount" csv:"amount"`
	TransactionType string  `json:"transaction_type" csv:"transaction_type"`
	BankName        string  `json:"bank_name" csv:"bank_name"`
	AccountNumber   string  `json:"account_number" csv:"account_number"`
	Balance         float64 `json:"balance" csv:"balance"`
}

// FromStatement converts an extracted statement to its JSON record.
func FromStatement(st model.Statement) StatementRecord {
	rec := StatementRecord{
		BankName:        st.BankName,
		AccountHolder:   st.AccountHolder,
		AccountNumber:   st.AccountNumber,
		StatementPeriod: st.StatementPeriod,
		Transactions:    make([]RawTransactionRow, 0, len(st.Transactions)),
	}
	for _, t := range st.Transactions {
		rec.Transactions = append(rec.Transactions, RawTransactionRow{
			Date:            t.Date,
			Description:     t.Description,
			Debit:           t.Debit.InexactFloat64(),
			Credit:          t.Credit.InexactFloat64(),
			Balance:         t.Balance.InexactFloat64(),
			TransactionType: t.Type,
		})
	}
	return rec
}

// FromNormalized converts a normalized statement to its JSON record.
func FromNormalized(st model.NormalizedStatement) NormalizedRecord {
	return NormalizedRecord{
		BankName:        st.BankName,
		AccountNumber:   st.AccountNumber,
		AccountHolder:   st.AccountHolder,
		StatementPeriod: st.StatementPeriod,
		Transactions:    Rows(st.Transactions),
	}
}

// Rows converts normalized transactions to ledger rows.
func Rows(txns []model.NormalizedTransaction) []NormalizedRow {
	out := make([]NormalizedRow, 0, len(txns))
	for _, t := range txns {
		out = append(out, NormalizedRow{
			TransactionDate: t.TransactionDate,
			Description:     t.Description,
			Amount:          t.Amount.InexactFloat64(),
			TransactionType: string(t.TransactionType),
			BankName:        t.BankName,
			AccountNumber:   t.AccountNumber,
			Balance:         t.Balance.InexactFloat64(),
		})
	}
	return out
}

// Transactions converts ledger rows back to normalized transactions.
func Transactions(rows []NormalizedRow) []model.NormalizedTransaction {
	out := make([]model.NormalizedTransaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.NormalizedTransaction{
			TransactionDate: r.TransactionDate,
			Description:     r.Description,
			Amount:          decimal.NewFromFloat(r.Amount),
			TransactionType: model.Direction(r.TransactionType),
			BankName:        r.BankName,
			AccountNumber:   r.AccountNumber,
			Balance:         decimal.NewFromFloat(r.Balance),
		})
	}
	return out
}

// AccountSummary totals the ledger rows of one bank account.
type AccountSummary struct {
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	Transactions  int             `json:"transactions"`
	Credits       decimal.Decimal `json:"credits"`
	Debits        decimal.Decimal `json:"debits"`
	Net           decimal.Decimal `json:"net"`
}

// Summarize totals txns per bank and account, in order of first appearance.
func Summarize(txns []model.NormalizedTransaction) []AccountSummary {
	out := []AccountSummary{}
	index := make(map[[2]string]int)
	for _, t := range txns {
		key := [2]string{t.BankName, t.AccountNumber}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, AccountSummary{
				BankName:      t.BankName,
				AccountNumber: t.AccountNumber,
				Credits:       decimal.Zero,
				Debits:        decimal.Zero,
				Net:           decimal.Zero,
			})
		}
		s := &out[i]
		s.Transactions++
		switch t.TransactionType {
		case model.Credit:
			s.Credits = s.Credits.Add(t.Amount)
			s.Net = s.Net.Add(t.Amount)
		case model.Debit:
			s.Debits = s.Debits.Add(t.Amount)
			s.Net = s.Net.Sub(t.Amount)
		}
	}
	return out
}
