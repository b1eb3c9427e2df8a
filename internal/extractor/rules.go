package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfusion/bankfusion/internal/model"
)

// rule is one step of a metadata cascade. extract may return "" to reject
// the match and let the cascade continue.
type rule struct {
	pattern *regexp.Regexp
	extract func(m []string) string
}

// firstMatch evaluates rules in order and returns the first accepted value.
func firstMatch(text string, rules []rule) string {
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := r.extract(m); v != "" {
			return v
		}
	}
	return ""
}

// group extracts capture group n, trimmed.
func group(n int) func([]string) string {
	return func(m []string) string {
		return strings.TrimSpace(m[n])
	}
}

// firstLine extracts capture group n up to the first line break.
func firstLine(n int) func([]string) string {
	return func(m []string) string {
		v, _, _ := strings.Cut(m[n], "\n")
		return strings.TrimSpace(v)
	}
}

// fromTo formats a two-group period match.
func fromTo(m []string) string {
	return "From " + strings.TrimSpace(m[1]) + " To " + strings.TrimSpace(m[2])
}

// dateShapes tests whether a cell starts with a date-shaped token. Shape
// only: 32/13/99 passes.
type dateShapes []*regexp.Regexp

func (s dateShapes) match(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, p := range s {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

func shapes(patterns ...string) dateShapes {
	out := make(dateShapes, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`^` + p)
	}
	return out
}

var spaces = regexp.MustCompile(`\s+`)

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// isPlaceholder reports descriptions that carry no narration.
func isPlaceholder(desc string) bool {
	switch strings.ToLower(strings.TrimSpace(desc)) {
	case "", "none", "nan", "null":
		return true
	}
	return false
}

// newTransaction builds a RawTransaction, dropping rows with no amount on
// either side. A row with both sides set keeps the credit.
func newTransaction(date, desc string, debit, credit, balance decimal.Decimal) (model.RawTransaction, bool) {
	if credit.IsPositive() {
		debit = decimal.Zero
	}
	txn := model.NewRawTransaction(strings.TrimSpace(date), collapse(desc), debit, credit, balance)
	return txn, !txn.IsEmpty()
}
