package extractor

import (
	"regexp"

	"github.com/bankfusion/bankfusion/internal/model"
)

// Union extracts Union Bank of India statements. Their tables carry one
// amount column whose (Dr)/(Cr) marker gives the direction.
type Union struct{}

var unionAccountRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+(?:No|Number)[:\s]+(\d+)`), group(1)},
}

var unionNameRules = []rule{
	{regexp.MustCompile(`(?i)(?:Name|Account\s+Holder)[:\s]+([A-Z\s]+)`), firstLine(1)},
}

var unionPeriodRules = []rule{
	{regexp.MustCompile(`(?i)Statement\s+Period[:\s]+(.+)`), group(1)},
}

var unionColumns = columnSpec{
	date:    []string{"tran date", "date", "transaction date"},
	desc:    []string{"remarks", "description", "particulars", "narration"},
	amount:  []string{"amount", "amount (rs.)", "amount (rs)"},
	balance: []string{"balance", "balance (rs.)", "balance (rs)"},
}

var unionDates = shapes(
	`\d{2}/\d{2}/\d{2,4}`,
	`\d{2}-\d{2}-\d{2,4}`,
	`\d{4}-\d{2}-\d{2}`,
)

// Bank returns the extractor's bank name.
func (u *Union) Bank() string { return "UNION" }

// ExtractMetadata reads the labelled account, name and period fields.
func (u *Union) ExtractMetadata(text string) Metadata {
	return Metadata{
		AccountNumber: firstMatch(text, unionAccountRules),
		AccountHolder: firstMatch(text, unionNameRules),
		Period:        firstMatch(text, unionPeriodRules),
	}
}

// ExtractTransactions reads every table through the header keywords.
func (u *Union) ExtractTransactions(tables []Table, _ string) []model.RawTransaction {
	return columnTable(tables, unionColumns, unionDates)
}
