package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfusion/bankfusion/internal/keywords"
	"github.com/bankfusion/bankfusion/internal/model"
)

// SBI extracts State Bank of India statements. Text lines of the form
// "23-Nov-25 (23-Nov-2025) NARRATION REF AMOUNT BALANCE" are read first;
// tables are the fallback.
type SBI struct{}

var sbiAccountRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+Number\s+(\d+)`), group(1)},
}

var sbiNameRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+Name\s+(.+)`), firstLine(1)},
}

var sbiPeriodRules = []rule{
	{regexp.MustCompile(`(?i)Account\s+Statement\s+for\s+the\s+period\s+(.+)`), firstLine(1)},
}

var sbiLine = regexp.MustCompile(`(\d{2}-[A-Za-z]{3}-\d{2})\s*\([\w-]+\)\s*(.+?)\s+(\d+)\s+(\d[\d,]*\.\d{2})?\s*(\d[\d,]*\.\d{2})?\s+(\d[\d,]*\.\d{2})`)

var sbiDates = shapes(
	`\d{2}-[A-Za-z]{3}-\d{2}`,
	`\d{2}/\d{2}/\d{2,4}`,
	`\d{2}-\d{2}-\d{2,4}`,
)

// sbiCredit marks single-amount rows as incoming.
var sbiCredit = keywords.New("SALARY", "CREDIT", "NEFT CR", "IMPS CR", "RTGS")

var sbiColumns = columnSpec{
	date:     []string{"date"},
	desc:     []string{"narration", "description", "particulars"},
	debit:    []string{"debit", "withdrawal"},
	credit:   []string{"credit", "deposit"},
	balance:  []string{"balance"},
	dateCell: firstToken,
}

// firstToken keeps "23-Nov-25" from a "23-Nov-25\n(23-Nov-2025)" cell.
func firstToken(cell string) string {
	f := strings.Fields(cell)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// Bank returns the extractor's bank name.
func (s *SBI) Bank() string { return "SBI" }

// ExtractMetadata reads the labelled account, name and period fields.
func (s *SBI) ExtractMetadata(text string) Metadata {
	return Metadata{
		AccountNumber: firstMatch(text, sbiAccountRules),
		AccountHolder: firstMatch(text, sbiNameRules),
		Period:        firstMatch(text, sbiPeriodRules),
	}
}

// ExtractTransactions reads text lines, then tables when no line matched.
func (s *SBI) ExtractTransactions(tables []Table, text string) []model.RawTransaction {
	if txns := sbiFromText(text); len(txns) > 0 {
		return txns
	}
	var out []model.RawTransaction
	for _, t := range tables {
		if len(t) < 2 {
			continue
		}
		cols := sbiColumns.locate(t[0])
		if cols.debit != absent && cols.credit != absent && cols.balance != absent {
			out = append(out, columnTable([]Table{t}, sbiColumns, sbiDates)...)
			continue
		}
		out = append(out, sbiPositional(t)...)
	}
	return out
}

func sbiFromText(text string) []model.RawTransaction {
	var out []model.RawTransaction
	for _, line := range strings.Split(text, "\n") {
		m := sbiLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		desc := strings.TrimSpace(m[2])
		if strings.Contains(desc, "Narration") || strings.Contains(desc, "Date") {
			continue
		}
		debit, credit := ParseAmount(m[4]), ParseAmount(m[5])
		// A lone amount could sit in either column; the narration decides.
		if m[5] == "" && sbiCredit.ContainsAny(desc) {
			debit, credit = decimal.Zero, debit
		}
		if txn, ok := newTransaction(m[1], desc, debit, credit, ParseAmount(m[6])); ok {
			out = append(out, txn)
		}
	}
	return out
}

// sbiPositional reads headerless tables: date first, narration second,
// then amount-shaped cells of which the last is the balance.
func sbiPositional(t Table) []model.RawTransaction {
	var out []model.RawTransaction
	for _, row := range t {
		if len(row) < 4 {
			continue
		}
		date := firstToken(cellAt(row, 0))
		if !sbiDates.match(date) {
			continue
		}
		desc := cellAt(row, 1)
		if isPlaceholder(desc) || strings.Contains(desc, "Narration") {
			continue
		}

		var values []decimal.Decimal
		for _, cell := range row[2:] {
			if !amountToken.MatchString(cell) {
				continue
			}
			if v := ParseAmount(cell); v.IsPositive() {
				values = append(values, v)
			}
		}
		if len(values) < 2 {
			continue
		}

		balance := values[len(values)-1]
		debit, credit := values[0], decimal.Zero
		switch {
		case len(values) == 2 && sbiCredit.ContainsAny(desc):
			debit, credit = decimal.Zero, values[0]
		case len(values) > 2:
			credit = values[1]
		}
		if txn, ok := newTransaction(date, desc, debit, credit, balance); ok {
			out = append(out, txn)
		}
	}
	return out
}
