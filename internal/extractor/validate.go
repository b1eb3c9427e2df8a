package extractor

import (
	"fmt"

	"github.com/bankfusion/bankfusion/internal/model"
)

// ValidationError describes a single transaction invariant violation.
type ValidationError struct {
	Rule        string
	Index       int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [transaction %d]: %s", e.Rule, e.Index, e.Description)
}

// Rule names reported by ValidateStatement.
const (
	RuleNonNegative = "non-negative"
	RuleOneSided    = "one-sided"
	RuleLabel       = "label"
)

// ValidateStatement checks the transaction invariants every extractor
// guarantees by construction.
func ValidateStatement(st model.Statement) []ValidationError {
	var errs []ValidationError
	for i, t := range st.Transactions {
		// Amounts are magnitudes.
		if t.Debit.IsNegative() || t.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:        RuleNonNegative,
				Index:       i,
				Description: fmt.Sprintf("debit %s / credit %s must not be negative", t.Debit, t.Credit),
			})
		}

		// At most one side carries an amount.
		if t.Debit.IsPositive() && t.Credit.IsPositive() {
			errs = append(errs, ValidationError{
				Rule:        RuleOneSided,
				Index:       i,
				Description: fmt.Sprintf("both debit (%s) and credit (%s) set", t.Debit.StringFixed(2), t.Credit.StringFixed(2)),
			})
		}

		if want := model.Label(t.Debit, t.Credit); t.Type != want {
			errs = append(errs, ValidationError{
				Rule:        RuleLabel,
				Index:       i,
				Description: fmt.Sprintf("label %q, amounts say %q", t.Type, want),
			})
		}
	}
	return errs
}
