package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		debit, credit string
		want          string
	}{
		{"500.00", "0", LabelDebit},
		{"0", "100", LabelCredit},
		{"0", "0", LabelDebit},
	}
	for _, tt := range tests {
		got := Label(decimal.RequireFromString(tt.debit), decimal.RequireFromString(tt.credit))
		assert.Equal(t, tt.want, got, "Label(%s, %s)", tt.debit, tt.credit)
	}
}

func TestNewRawTransaction(t *testing.T) {
	txn := NewRawTransaction("01/01/24", "ATM WDL", decimal.NewFromInt(500), decimal.Zero, decimal.NewFromInt(1000))
	assert.Equal(t, LabelDebit, txn.Type)
	assert.False(t, txn.IsEmpty())

	empty := NewRawTransaction("01/01/24", "NOTHING", decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, empty.IsEmpty())
}
