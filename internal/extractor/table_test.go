package extractor

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfusion/bankfusion/internal/model"
)

func TestNewTransaction(t *testing.T) {
	_, ok := newTransaction("01/10/25", "OPENING", decimal.Zero, decimal.Zero, decimal.NewFromInt(100))
	assert.False(t, ok)

	_, ok = newTransaction("01/10/25", "REVERSAL", decimal.NewFromInt(-5), decimal.Zero, decimal.NewFromInt(100))
	assert.False(t, ok)

	txn, ok := newTransaction(" 02/10/25 ", "NEFT   IN", decimal.NewFromInt(5), decimal.NewFromInt(7), decimal.NewFromInt(107))
	require.True(t, ok)
	assert.Equal(t, "02/10/25", txn.Date)
	assert.Equal(t, "NEFT IN", txn.Description)
	assertAmount(t, "0.00", txn.Debit)
	assertAmount(t, "7.00", txn.Credit)
	assert.Equal(t, model.LabelCredit, txn.Type)
}

func TestFindColumn(t *testing.T) {
	header := []string{"sl no", "txn date", "value date", "narration", "withdrawal amt.", "closing balance"}

	assert.Equal(t, 1, findColumn(header, []string{"date", "value date"}), "first column wins, not first keyword")
	assert.Equal(t, 2, findColumn(header, []string{"value date"}))
	assert.Equal(t, 4, findColumn(header, []string{"debit", "withdrawal"}))
	assert.Equal(t, absent, findColumn(header, []string{"credit", "deposit"}))
	assert.Equal(t, absent, findColumn(header, nil))
}

func TestCellAt(t *testing.T) {
	row := Row{" a ", "b"}
	assert.Equal(t, "a", cellAt(row, 0))
	assert.Equal(t, "", cellAt(row, 5))
	assert.Equal(t, "", cellAt(row, absent))
}

func TestIsPlaceholder(t *testing.T) {
	for _, v := range []string{"", "  ", "None", "nan", "NaN"} {
		assert.True(t, isPlaceholder(v), v)
	}
	assert.False(t, isPlaceholder("ATM WDL"))
}

func TestColumnTable_EndToEnd(t *testing.T) {
	tables := []Table{{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"01/01/24", "ATM WDL", "500.00", "", "1000.00"},
	}}

	txns := columnTable(tables, hdfcColumns, hdfcDates)
	require.Len(t, txns, 1)
	txn := txns[0]
	assert.Equal(t, "01/01/24", txn.Date)
	assert.Equal(t, "ATM WDL", txn.Description)
	assertAmount(t, "500.00", txn.Debit)
	assertAmount(t, "0.00", txn.Credit)
	assertAmount(t, "1000.00", txn.Balance)
	assert.Equal(t, model.LabelDebit, txn.Type)
}

func TestColumnTable_RowFilters(t *testing.T) {
	tables := []Table{
		{{"Date", "Narration"}}, // header only
		{
			{"Date", "Narration", "Withdrawal", "Deposit", "Balance"},
			{"Opening Balance", "", "", "", "100.00"},
			{"02/01/24", "None", "10.00", "", "90.00"},
			{"02/01/24", "nan", "10.00", "", "90.00"},
			{"02/01/24"},
			{"03/01/24", "ZERO ROW", "", "", "90.00"},
			{"04/01/24", "SALARY\nOCT", "", "25,000.00", "25,090.00"},
			{"05/01/24", "BOTH", "5.00", "7.00", "25,092.00"},
			{"32/13/99", "SHAPE ONLY", "1.00", "", "25,091.00"},
		},
	}

	txns := columnTable(tables, hdfcColumns, hdfcDates)
	require.Len(t, txns, 3)

	assert.Equal(t, "SALARY OCT", txns[0].Description)
	assert.Equal(t, model.LabelCredit, txns[0].Type)
	assertAmount(t, "25000.00", txns[0].Credit)

	assertAmount(t, "0.00", txns[1].Debit, "credit wins when both are printed")
	assertAmount(t, "7.00", txns[1].Credit)

	assert.Equal(t, "32/13/99", txns[2].Date)
}

func TestColumnTable_AbsentColumnsReadZero(t *testing.T) {
	tables := []Table{{
		{"Date", "Particulars", "Withdrawal"},
		{"01/02/24", "POS AMAZON", "799.00"},
	}}

	txns := columnTable(tables, hdfcColumns, hdfcDates)
	require.Len(t, txns, 1)
	assertAmount(t, "0.00", txns[0].Credit)
	assertAmount(t, "0.00", txns[0].Balance)
}

func TestFixedColumns_HeaderAndSkips(t *testing.T) {
	fc := fixedColumns{
		date: 0, desc: 1, debit: 2, credit: 3, balance: 4,
		minCells: 4,
		isDate:   shapes(`\d{2}/\d{2}/\d{2}`),
		isHeader: func(r Row) bool { return rowText(r) == "date desc dr cr bal" },
		skipRow:  []string{"brought forward"},
		skipDesc: []string{"details"},
	}
	tables := []Table{{
		{"Date", "Desc", "Dr", "Cr", "Bal"},
		{"01/10/25", "BROUGHT FORWARD", "", "", "100.00"},
		{"01/10/25", "Value Post Details", "1.00", "", "99.00"},
		{"02/10/25", "UPI PAYMENT", "20.00", "", "79.00"},
		{"03/10/25", "SHORT"},
	}}

	txns := fc.extract(tables)
	require.Len(t, txns, 1)
	assert.Equal(t, "UPI PAYMENT", txns[0].Description)
}
