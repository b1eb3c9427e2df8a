package extractor

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfusion/bankfusion/internal/model"
)

// absent marks a column that no header keyword located.
const absent = -1

// columnSpec lists header keywords per field. Order matters: the first
// column whose header contains any keyword wins.
type columnSpec struct {
	date    []string
	desc    []string
	debit   []string
	credit  []string
	balance []string
	// amount, when set, locates a single signed amount column used in
	// place of debit/credit.
	amount []string
	// dateCell, when set, cleans the raw date cell before shape checks.
	dateCell func(string) string
}

type columns struct {
	date, desc, debit, credit, balance, amount int
}

func (s columnSpec) locate(header Row) columns {
	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return columns{
		date:    findColumn(lower, s.date),
		desc:    findColumn(lower, s.desc),
		debit:   findColumn(lower, s.debit),
		credit:  findColumn(lower, s.credit),
		balance: findColumn(lower, s.balance),
		amount:  findColumn(lower, s.amount),
	}
}

// findColumn returns the first column whose lowercased header contains any
// keyword, or absent.
func findColumn(header []string, keywords []string) int {
	if len(keywords) == 0 {
		return absent
	}
	for i, col := range header {
		for _, k := range keywords {
			if strings.Contains(col, k) {
				return i
			}
		}
	}
	return absent
}

// cellAt reads a cell, treating absent columns and short rows as empty.
func cellAt(row Row, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnTable is the keyword-located column-table strategy. Each table's
// first row is its header; data rows need a date-shaped date cell and a
// real description.
func columnTable(tables []Table, spec columnSpec, isDate dateShapes) []model.RawTransaction {
	var out []model.RawTransaction
	for _, table := range tables {
		if len(table) < 2 {
			continue
		}
		cols := spec.locate(table[0])
		for _, row := range table[1:] {
			if len(row) < 2 {
				continue
			}
			date := cellAt(row, cols.date)
			if spec.dateCell != nil {
				date = spec.dateCell(date)
			}
			if !isDate.match(date) {
				continue
			}
			desc := cellAt(row, cols.desc)
			if isPlaceholder(desc) {
				continue
			}

			var debit, credit decimal.Decimal
			if cols.amount != absent {
				debit, credit = signedAmount(cellAt(row, cols.amount))
			} else {
				debit = ParseAmount(cellAt(row, cols.debit))
				credit = ParseAmount(cellAt(row, cols.credit))
			}
			balance := ParseAmount(stripMarker(cellAt(row, cols.balance)))

			if txn, ok := newTransaction(date, desc, debit, credit, balance); ok {
				out = append(out, txn)
			}
		}
	}
	return out
}

// signedAmount splits a single amount cell by its (Dr)/(Cr) marker.
// Unmarked amounts are debits.
func signedAmount(cell string) (debit, credit decimal.Decimal) {
	lower := strings.ToLower(cell)
	switch {
	case strings.Contains(lower, "(cr)"):
		return decimal.Zero, ParseAmount(stripMarker(cell))
	default:
		return ParseAmount(stripMarker(cell)), decimal.Zero
	}
}

var markers = strings.NewReplacer("(Dr)", "", "(dr)", "", "(DR)", "", "(Cr)", "", "(cr)", "", "(CR)", "")

func stripMarker(cell string) string {
	return markers.Replace(cell)
}

// fixedColumns is the positional column-table strategy for layouts whose
// tables repeat without a reliable header on every page.
type fixedColumns struct {
	date, desc, debit, credit, balance int
	minCells                           int
	isDate                             dateShapes
	// isHeader, when set, drops a table's first row if it matches.
	isHeader func(Row) bool
	// skipRow drops rows whose text contains any marker; skipDesc checks
	// the description cell only. Markers are lowercase.
	skipRow  []string
	skipDesc []string
}

func (f fixedColumns) extract(tables []Table) []model.RawTransaction {
	var out []model.RawTransaction
	for _, table := range tables {
		if len(table) < 2 {
			continue
		}
		rows := []Row(table)
		if f.isHeader != nil && f.isHeader(rows[0]) {
			rows = rows[1:]
		}
		for _, row := range rows {
			if len(row) < f.minCells {
				continue
			}
			date := cellAt(row, f.date)
			if !f.isDate.match(date) {
				continue
			}
			desc := cellAt(row, f.desc)
			if isPlaceholder(desc) || containsAny(rowText(row), f.skipRow) ||
				containsAny(strings.ToLower(desc), f.skipDesc) {
				continue
			}
			txn, ok := newTransaction(date, desc,
				ParseAmount(cellAt(row, f.debit)),
				ParseAmount(cellAt(row, f.credit)),
				ParseAmount(cellAt(row, f.balance)))
			if ok {
				out = append(out, txn)
			}
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// rowText joins a row's cells, lowercased.
func rowText(row Row) string {
	return strings.ToLower(strings.Join(row, " "))
}
