package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfusion/bankfusion/internal/model"
)

const axisText = `AXIS BANK
Mr. ANIL KUMAR Account Statement
Customer ID : 123456
Account No. : 918010012345678
Statement period from 01/10/2025 to 31/10/2025
Tran Date Value Date Particulars Debit Credit Balance
01/10/25 01/10/25 OPENING BALANCE 62,541.51Cr
02/10/25 03/10/25 UPI/P2M/5123/SWIGGY
268.65 62,272.86Cr
05/10/25 05/10/25 BY TRF SALARY ACME
50,000.00 1,12,272.86Cr
`

func TestAxis_Metadata(t *testing.T) {
	meta := (&Axis{}).ExtractMetadata(axisText)
	assert.Equal(t, "918010012345678", meta.AccountNumber)
	assert.Equal(t, "Mr. ANIL KUMAR", meta.AccountHolder)
	assert.Equal(t, "From 01/10/2025 To 31/10/2025", meta.Period)
}

func TestAxis_Transactions(t *testing.T) {
	txns := (&Axis{}).ExtractTransactions(nil, axisText)
	require.Len(t, txns, 2)

	assert.Equal(t, "02/10/25", txns[0].Date, "value date is the transaction date")
	assert.Equal(t, "UPI/P2M/5123/SWIGGY", txns[0].Description)
	assertAmount(t, "268.65", txns[0].Debit)
	assertAmount(t, "62272.86", txns[0].Balance)

	assert.Equal(t, model.LabelCredit, txns[1].Type)
	assertAmount(t, "50000.00", txns[1].Credit)
	assertAmount(t, "112272.86", txns[1].Balance)
}

func TestAxis_IgnoresTables(t *testing.T) {
	tables := []Table{{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"01/01/24", "ATM WDL", "500.00", "", "1000.00"},
	}}
	assert.Empty(t, (&Axis{}).ExtractTransactions(tables, ""))
}
