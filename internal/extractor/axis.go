package extractor

import (
	"regexp"
	"strings"

	"github.com/bankfusion/bankfusion/internal/model"
)

// Axis extracts Axis Bank statements from the line stream. Tables in these
// PDFs do not survive extraction.
type Axis struct{}

// salutedName captures "Mr. NAME Account" style holder lines.
var salutedName = regexp.MustCompile(`(Ms\.|Mr\.|Mrs\.)\s+([A-Z\s]+)\s+Account`)

// statementRange covers "Statement period from 01/10/25 to 31/10/25"
// and similar headers.
var statementRange = regexp.MustCompile(`(?i)period\s*(?:from)?\s*:?\s*(\d{2}[/-]\d{2}[/-]\d{2,4})\s+to\s+(\d{2}[/-]\d{2}[/-]\d{2,4})`)

var axisAccountRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+No\.\s*:\s*(\d+)`), group(1)},
}

var axisNameRules = []rule{
	{salutedName, func(m []string) string {
		return collapse(strings.Replace(m[0], "Account", "", 1))
	}},
}

var periodRangeRules = []rule{
	{statementRange, fromTo},
}

var axisLines = lineText{
	lookahead:  4,
	terminator: regexp.MustCompile(`\d[\d,]*\.\d{2}Cr$`),
}

// Bank returns the extractor's bank name.
func (a *Axis) Bank() string { return "AXIS" }

// ExtractMetadata reads the account number and saluted holder name.
func (a *Axis) ExtractMetadata(text string) Metadata {
	return Metadata{
		AccountNumber: firstMatch(text, axisAccountRules),
		AccountHolder: firstMatch(text, axisNameRules),
		Period:        firstMatch(text, periodRangeRules),
	}
}

// ExtractTransactions scans the statement text; tables are ignored.
func (a *Axis) ExtractTransactions(_ []Table, text string) []model.RawTransaction {
	return axisLines.extract(text)
}
