package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfusion/bankfusion/internal/keywords"
	"github.com/bankfusion/bankfusion/internal/model"
)

// transferIn marks narrations of incoming money in line-text statements.
var transferIn = keywords.New("BY TRF", "SALARY", "REFUND", "TRF FROM")

// twoDates opens a line-text transaction: value date then post date.
var twoDates = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(\d{2}/\d{2}/\d{2})\b`)

// startsWithDate ends a continuation run.
var startsWithDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}`)

var (
	trailingDash = regexp.MustCompile(`\s*-\s*$`)
	trailingDot  = regexp.MustCompile(`\s*\.\s*$`)
	spacedDot    = regexp.MustCompile(`\s*\.\s*`)
)

// lineText is the line-scanning strategy for statements whose tables do
// not survive extraction.
type lineText struct {
	// lookahead is the most continuation lines appended to one transaction.
	lookahead int
	// stops end a continuation run when a line contains one of them.
	stops []string
	// skip drops transactions whose opening line contains one of them.
	skip []string
	// terminator, when set, is included and then ends the run.
	terminator *regexp.Regexp
}

// extract scans text line by line. The last amount of a block is the
// balance; the amount is the only other one, or the second-to-last when
// more are printed. Blocks without an amount besides the balance are dropped.
func (lt lineText) extract(text string) []model.RawTransaction {
	lines := strings.Split(text, "\n")
	var out []model.RawTransaction
	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		m := twoDates.FindStringSubmatchIndex(line)
		if m == nil {
			i++
			continue
		}
		valueDate := line[m[2]:m[3]]
		rest := strings.TrimSpace(line[m[1]:])
		if containsAny(rest, lt.skip) {
			i++
			continue
		}

		parts := []string{rest}
		j := i + 1
		for ; j < len(lines) && j <= i+lt.lookahead; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || startsWithDate.MatchString(next) || containsAny(next, lt.stops) {
				break
			}
			parts = append(parts, next)
			if lt.terminator != nil && lt.terminator.MatchString(next) {
				j++
				break
			}
		}
		i = j

		if txn, ok := lineTransaction(valueDate, strings.Join(parts, " ")); ok {
			out = append(out, txn)
		}
	}
	return out
}

func lineTransaction(date, block string) (model.RawTransaction, bool) {
	block = stripDrCr(block)
	amounts := findAmounts(block)
	if len(amounts) < 2 {
		return model.RawTransaction{}, false
	}

	balance := ParseAmount(amounts[len(amounts)-1])
	amount := ParseAmount(amounts[0])
	if len(amounts) > 2 {
		amount = ParseAmount(amounts[len(amounts)-2])
	}

	desc := cleanNarration(amountToken.ReplaceAllString(block, " "))
	if transferIn.ContainsAny(desc) {
		return newTransaction(date, desc, decimal.Zero, amount, balance)
	}
	return newTransaction(date, desc, amount, decimal.Zero, balance)
}

// cleanNarration collapses whitespace, drops a trailing dash or dot and
// tightens spacing around dots.
func cleanNarration(s string) string {
	s = collapse(s)
	s = trailingDash.ReplaceAllString(s, "")
	s = trailingDot.ReplaceAllString(s, "")
	s = spacedDot.ReplaceAllString(s, ".")
	return strings.TrimSpace(s)
}
