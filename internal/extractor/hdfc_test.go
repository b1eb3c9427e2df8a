package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfusion/bankfusion/internal/model"
)

const hdfcHeaderText = `HDFC BANK Ltd.
MR. RAHUL KUMAR SHARMA
FLAT 12, MG ROAD
MUMBAI 400001
Account No : 50100123456789
Period : 01/10/2025 To 31/10/2025
`

func TestHDFC_Metadata(t *testing.T) {
	meta := (&HDFC{}).ExtractMetadata(hdfcHeaderText)
	assert.Equal(t, "50100123456789", meta.AccountNumber)
	assert.Equal(t, "MR. RAHUL KUMAR SHARMA", meta.AccountHolder)
	assert.Equal(t, "01/10/2025 To 31/10/2025", meta.Period)
}

func TestHDFC_MetadataLabelledFields(t *testing.T) {
	text := "Customer Name: PRIYA NAIR\nAccount Number: 12345678901\nStatement From: 01-09-2025 To: 30-09-2025\n"

	meta := (&HDFC{}).ExtractMetadata(text)
	assert.Equal(t, "12345678901", meta.AccountNumber)
	assert.Equal(t, "PRIYA NAIR", meta.AccountHolder)
	assert.Equal(t, "From 01-09-2025 To 30-09-2025", meta.Period)
}

func TestHDFC_MetadataMissing(t *testing.T) {
	meta := (&HDFC{}).ExtractMetadata("Page 1 of 2\n")
	assert.Equal(t, Metadata{}, meta)
}

func TestHolderName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PRIYA  NAIR", "PRIYA NAIR"},
		{"SAVINGS ACCOUNT", ""},
		{"RAVI", ""},
		{"FLAT 12 ROAD", ""},
		{"HDFC BANK LIMITED", ""},
		{"A B", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, holderName([]string{"", tt.in}), "holderName(%q)", tt.in)
	}
}

func TestHDFC_Transactions(t *testing.T) {
	tables := []Table{{
		{"Date", "Narration", "Chq./Ref.No.", "Value Dt", "Withdrawal Amt.", "Deposit Amt.", "Closing Balance"},
		{"01/10/25", "UPI-SWIGGY-ORDER", "0000123", "01/10/25", "450.00", "", "24,550.00"},
		{"", "CONTINUED NARRATION", "", "", "", "", ""},
		{"05/10/25", "NEFT CR-ACME CORP-SALARY", "N123", "05/10/25", "", "85,000.00", "1,09,550.00"},
		{"7 Oct 2025", "ATM WDL", "", "", "2,000.00", "", "1,07,550.00"},
	}}

	txns := (&HDFC{}).ExtractTransactions(tables, "")
	require.Len(t, txns, 3)

	assertAmount(t, "450.00", txns[0].Debit)
	assertAmount(t, "24550.00", txns[0].Balance)
	assert.Equal(t, model.LabelCredit, txns[1].Type)
	assertAmount(t, "85000.00", txns[1].Credit)
	assertAmount(t, "109550.00", txns[1].Balance)
	assert.Equal(t, "7 Oct 2025", txns[2].Date)
}
