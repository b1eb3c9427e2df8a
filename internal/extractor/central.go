package extractor

import (
	"regexp"

	"github.com/bankfusion/bankfusion/internal/model"
)

// Central extracts Central Bank of India statements. Tables are tried
// first; the line stream is only read when they yield nothing.
type Central struct{}

var centralAccountRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+No\.\s*:\s*(\d+)`), group(1)},
}

var centralNameRules = []rule{
	{salutedName, func(m []string) string {
		return m[1] + " " + collapse(m[2])
	}},
}

var centralTables = fixedColumns{
	date:     0,
	desc:     2,
	debit:    4,
	credit:   5,
	balance:  6,
	minCells: 4,
	isDate:   shapes(`\d{2}/\d{2}/\d{2}`),
	skipRow:  []string{"brought forward", "carried forward"},
	skipDesc: []string{"details"},
}

var centralLines = lineText{
	lookahead: 9,
	stops:     []string{"Central Bank", "STATEMENT OF ACCOUNT", "Page No.", "Value Post Details"},
	skip:      []string{"BROUGHT FORWARD", "CARRIED FORWARD"},
}

// Bank returns the extractor's bank name.
func (c *Central) Bank() string { return "CENTRAL" }

// ExtractMetadata reads the account number and saluted holder name.
func (c *Central) ExtractMetadata(text string) Metadata {
	return Metadata{
		AccountNumber: firstMatch(text, centralAccountRules),
		AccountHolder: firstMatch(text, centralNameRules),
		Period:        firstMatch(text, periodRangeRules),
	}
}

// ExtractTransactions prefers positional tables and falls back to the
// line stream when no table row qualifies.
func (c *Central) ExtractTransactions(tables []Table, text string) []model.RawTransaction {
	if txns := centralTables.extract(tables); len(txns) > 0 {
		return txns
	}
	return centralLines.extract(text)
}
