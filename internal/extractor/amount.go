package extractor

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonAmountChars = regexp.MustCompile(`[^\d.,\-]`)

	// amountToken is a printed decimal amount such as 1,813.63.
	amountToken = regexp.MustCompile(`\d[\d,]*\.\d{2}`)

	// drCrSuffix is a Cr/Dr marker glued to an amount, as in 335,281.72Cr.
	drCrSuffix = regexp.MustCompile(`(\d\.\d{2})\s?(?:Cr|CR|Dr|DR)\b`)
)

// ParseAmount converts a printed amount into a non-negative decimal.
// Everything except digits, commas, dots and minus signs is dropped,
// commas are removed, and the magnitude is returned. Empty, lone-minus
// and unparseable input all yield zero.
func ParseAmount(s string) decimal.Decimal {
	v := nonAmountChars.ReplaceAllString(strings.TrimSpace(s), "")
	v = strings.ReplaceAll(v, ",", "")
	if v == "" || v == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d.Abs()
}

// AmountOf is ParseAmount for values that may already be numeric. NaN and
// infinities yield zero.
func AmountOf(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case string:
		return ParseAmount(x)
	case decimal.Decimal:
		return x.Abs()
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x).Abs()
	case float32:
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(x).Abs()
	case int:
		return decimal.NewFromInt(int64(x)).Abs()
	case int64:
		return decimal.NewFromInt(x).Abs()
	default:
		return ParseAmount(fmt.Sprint(x))
	}
}

// findAmounts returns every amount token in s, Cr/Dr suffixes ignored.
func findAmounts(s string) []string {
	return amountToken.FindAllString(s, -1)
}

func stripDrCr(s string) string {
	return drCrSuffix.ReplaceAllString(s, "$1")
}
