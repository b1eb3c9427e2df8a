package extractor

import (
	"regexp"
	"strings"

	"github.com/bankfusion/bankfusion/internal/model"
)

// HDFC extracts HDFC Bank statements. Transactions come from tables with
// a Date / Narration / Withdrawal / Deposit / Closing Balance header.
type HDFC struct{}

var hdfcAccountRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+Number[:\s]+(\d+)`), group(1)},
	{regexp.MustCompile(`(?i)Account\s+No\.?[:\s]+(\d+)`), group(1)},
	{regexp.MustCompile(`(?i)A/c\s+No\.?[:\s]+(\d+)`), group(1)},
	{regexp.MustCompile(`(?i)Account[:\s]+(\d{10,})`), group(1)},
	{regexp.MustCompile(`(?i)Savings\s+Account[:\s]+(\d+)`), group(1)},
	{regexp.MustCompile(`(?i)(?:Account|A/C)\s*[:.]?\s*(\d{10,})`), group(1)},
}

var hdfcNameRules = []rule{
	{regexp.MustCompile(`(?im)(?:Customer\s+Name|Account\s+Holder|Name\s+of\s+Account\s+Holder|Account\s+Name)[:\s]+([A-Z][A-Z\s.&]{2,50})(?:\s+Account|\s+Address|\s+Branch|\s+IFSC|\s*\n|$)`), holderName},
	{regexp.MustCompile(`(?im)^([A-Z][A-Z\s.&]{2,50})\s+(?:Address|Home|Office|Branch)`), holderName},
	{regexp.MustCompile(`(?im)([A-Z][A-Z\s.&]{2,50})\s+Account\s+(?:Number|No)`), holderName},
	{regexp.MustCompile(`(?im)Dear\s+(?:Mr\.|Ms\.|Mrs\.|Dr\.)\s+([A-Z][A-Z\s.&]{2,50})`), holderName},
	{regexp.MustCompile(`(?im)Dear\s+([A-Z][A-Z\s.&]{2,50})`), holderName},
	{regexp.MustCompile(`(?im)\n([A-Z][A-Z\s.&]{2,50})\s*\n.*?(?:Account|Statement|Branch)`), holderName},
	{regexp.MustCompile(`(?im)(?:Statement\s+for|Statement\s+of)[:\s]+([A-Z][A-Z\s.&]{2,50})`), holderName},
	{regexp.MustCompile(`(?im)^.*?\b([A-Z][A-Z\s.]{10,50})\b`), holderName},
}

var hdfcPeriodRules = []rule{
	{regexp.MustCompile(`(?i)Statement\s+Period[:\s]+([0-9/\-\s]+(?:to|To|TO)[0-9/\-\s]+)`), firstLine(1)},
	{regexp.MustCompile(`(?i)Statement\s+from[:\s]+([0-9/\-\s]+(?:to|To|TO)[0-9/\-\s]+)`), firstLine(1)},
	{regexp.MustCompile(`(?i)Period[:\s]+([0-9/\-\s]+(?:to|To|TO)[0-9/\-\s]+)`), firstLine(1)},
	{regexp.MustCompile(`(?i)From[:\s]+([0-9/\-]+)[:\s]+To[:\s]+([0-9/\-]+)`), fromTo},
	{regexp.MustCompile(`(?i)Statement\s+for\s+the\s+period[:\s]+([0-9/\-\s]+(?:to|To|TO)[0-9/\-\s]+)`), firstLine(1)},
}

// notNameWords rule out header text captured by the name cascade.
var notNameWords = []string{
	"STATEMENT", "ACCOUNT", "BANK", "BRANCH", "ADDRESS", "SAVINGS",
	"CURRENT", "DEPOSIT", "INDIA", "LIMITED", "DETAILS", "PERIOD",
	"BALANCE", "CREDIT", "DEBIT", "TRANSACTION", "DATE", "DESCRIPTION",
	"AMOUNT", "IFSC", "MICR", "CODE", "CUSTOMER", "HOLDER", "NUMBER",
	"MOBILE", "EMAIL", "PHONE", "CITY", "STATE", "PINCODE", "COUNTRY",
}

var (
	hasDigit       = regexp.MustCompile(`\d`)
	upperNameLine  = regexp.MustCompile(`^[A-Z][A-Z\s.&]{10,50}$`)
	notHeaderWords = []string{"STATEMENT", "BANK", "ACCOUNT", "HDFC"}
)

// holderName accepts a captured name only if it looks like a person:
// two or more words, 4 to 50 characters, no digits, no header vocabulary.
func holderName(m []string) string {
	name := collapse(m[1])
	if len(name) <= 3 || len(name) > 50 || hasDigit.MatchString(name) {
		return ""
	}
	if len(strings.Fields(name)) < 2 {
		return ""
	}
	if containsAny(strings.ToUpper(name), notNameWords) {
		return ""
	}
	return name
}

// headerName scans the first 500 bytes for an all-caps line.
func headerName(text string) string {
	if len(text) > 500 {
		text = text[:500]
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if upperNameLine.MatchString(line) && !containsAny(line, notHeaderWords) {
			return line
		}
	}
	return ""
}

var hdfcColumns = columnSpec{
	date:    []string{"date", "transaction date", "txn date", "value date"},
	desc:    []string{"description", "narration", "particulars", "transaction details"},
	debit:   []string{"debit", "withdrawal", "withdraw", "debit amount"},
	credit:  []string{"credit", "deposit", "credit amount"},
	balance: []string{"balance", "closing balance", "available balance"},
}

var hdfcDates = shapes(
	`\d{2}/\d{2}/\d{2,4}`,
	`\d{2}-\d{2}-\d{2,4}`,
	`\d{4}-\d{2}-\d{2}`,
	`\d{1,2}\s+[A-Za-z]{3}\s+\d{2,4}`,
)

// Bank returns the extractor's bank name.
func (h *HDFC) Bank() string { return "HDFC" }

// ExtractMetadata runs the account, holder and period cascades.
func (h *HDFC) ExtractMetadata(text string) Metadata {
	holder := firstMatch(text, hdfcNameRules)
	if holder == "" {
		holder = headerName(text)
	}
	return Metadata{
		AccountNumber: firstMatch(text, hdfcAccountRules),
		AccountHolder: holder,
		Period:        firstMatch(text, hdfcPeriodRules),
	}
}

// ExtractTransactions reads every table through the header keywords.
func (h *HDFC) ExtractTransactions(tables []Table, _ string) []model.RawTransaction {
	return columnTable(tables, hdfcColumns, hdfcDates)
}
