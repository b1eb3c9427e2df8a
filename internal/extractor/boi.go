package extractor

import (
	"regexp"
	"strings"

	"github.com/bankfusion/bankfusion/internal/model"
)

// BOI extracts Bank of India statements. Every page repeats a fixed
// seven-column table: Sl No, Txn Date, Description, Cheque No,
// Withdrawal, Deposits, Balance.
type BOI struct{}

var boiAccountRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+No\s*:\s*(\d+)`), group(1)},
}

var boiNameRules = []rule{
	{regexp.MustCompile(`(?i)Name\s*:\s*(.+)`), firstLine(1)},
}

var boiPeriodRules = []rule{
	{regexp.MustCompile(`(?i)period\s+(.+?\d{4}\s+to\s+.+?\d{4})`), group(1)},
}

var boiTables = fixedColumns{
	date:     1,
	desc:     2,
	debit:    4,
	credit:   5,
	balance:  6,
	minCells: 6,
	isDate:   shapes(`\d{2}-\d{2}-\d{4}`),
	isHeader: func(r Row) bool {
		text := rowText(r)
		return strings.Contains(text, "txn date") || strings.Contains(text, "withdrawal") || strings.Contains(text, "sl no")
	},
	skipDesc: []string{"statement generated", "page summary"},
}

// Bank returns the extractor's bank name.
func (b *BOI) Bank() string { return "BOI" }

// ExtractMetadata reads the labelled account, name and period fields.
func (b *BOI) ExtractMetadata(text string) Metadata {
	return Metadata{
		AccountNumber: firstMatch(text, boiAccountRules),
		AccountHolder: firstMatch(text, boiNameRules),
		Period:        firstMatch(text, boiPeriodRules),
	}
}

// ExtractTransactions reads every table positionally.
func (b *BOI) ExtractTransactions(tables []Table, _ string) []model.RawTransaction {
	return boiTables.extract(tables)
}
