package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfusion/bankfusion/internal/model"
)

func TestBOI_Metadata(t *testing.T) {
	text := "BANK OF INDIA\nName : KIRAN PATEL\nAccount No : 012345678901234\nFor the period October 25, 2025 to November 24, 2025\n"

	meta := (&BOI{}).ExtractMetadata(text)
	assert.Equal(t, "012345678901234", meta.AccountNumber)
	assert.Equal(t, "KIRAN PATEL", meta.AccountHolder)
	assert.Equal(t, "October 25, 2025 to November 24, 2025", meta.Period)
}

func TestBOI_Transactions(t *testing.T) {
	tables := []Table{
		{
			{"Sl No", "Txn Date", "Description", "Cheque No", "Withdrawal (in Rs.)", "Deposits (in Rs.)", "Balance (in Rs.)"},
			{"1", "25-10-2025", "UPI/DR/ZOMATO", "", "350.00", "", "20,650.00"},
			{"2", "26-10-2025", "NEFT/CR/ACME", "", "", "30,000.00", "50,650.00"},
		},
		{
			// continuation page without a header
			{"3", "27-10-2025", "ATM/CASH", "", "5,000.00", "", "45,650.00"},
			{"4", "27-10-2025", "Page Summary", "", "5,350.00", "30,000.00", ""},
			{"5", "28-10-25", "SHORT YEAR", "", "1.00", "", ""},
			{"", "Statement generated on 24-11-2025", "", "", "", "", ""},
			{"6", "29-10-2025", "TOO FEW"},
		},
	}

	txns := (&BOI{}).ExtractTransactions(tables, "")
	require.Len(t, txns, 3)

	assert.Equal(t, "25-10-2025", txns[0].Date)
	assertAmount(t, "350.00", txns[0].Debit)
	assert.Equal(t, model.LabelCredit, txns[1].Type)
	assertAmount(t, "30000.00", txns[1].Credit)
	assert.Equal(t, "ATM/CASH", txns[2].Description)
}
