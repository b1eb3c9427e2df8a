// Package extractor recovers statements from the text and tables of
// bank-statement PDFs. Each bank gets its own Extractor; the shared
// column-table and line-text strategies live alongside.
package extractor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bankfusion/bankfusion/internal/dates"
	"github.com/bankfusion/bankfusion/internal/model"
)

// ErrUnknownBank is returned when no extractor is registered for a bank name.
var ErrUnknownBank = errors.New("unknown bank")

// Row is one table row. Absent cells are empty strings.
type Row []string

// Table is an extracted table, header row first when the PDF has one.
type Table []Row

// Page is the extracted content of one PDF page.
type Page struct {
	Text   string
	Tables []Table
}

// Document is the extracted content of one PDF.
type Document struct {
	Pages []Page
}

// Text concatenates page text, each page terminated by a newline.
func (d Document) Text() string {
	var b strings.Builder
	for _, p := range d.Pages {
		b.WriteString(p.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Tables concatenates every page's tables in page order.
func (d Document) Tables() []Table {
	var out []Table
	for _, p := range d.Pages {
		out = append(out, p.Tables...)
	}
	return out
}

// Metadata is the best-effort header information of a statement.
// Unrecovered fields are empty.
type Metadata struct {
	AccountHolder string
	AccountNumber string
	Period        string
}

// Extractor recognizes one bank's statement layout.
type Extractor interface {
	Bank() string
	ExtractMetadata(text string) Metadata
	ExtractTransactions(tables []Table, text string) []model.RawTransaction
}

// Extract runs both hooks of e over doc and assembles the Statement.
// An empty period is inferred from the transaction date range.
func Extract(e Extractor, doc Document) model.Statement {
	text := doc.Text()
	meta := e.ExtractMetadata(text)
	txns := e.ExtractTransactions(doc.Tables(), text)

	period := meta.Period
	if period == "" {
		period = InferPeriod(txns)
	}

	return model.Statement{
		BankName:        e.Bank(),
		AccountHolder:   meta.AccountHolder,
		AccountNumber:   meta.AccountNumber,
		StatementPeriod: period,
		Transactions:    txns,
	}
}

// InferPeriod returns "<earliest> To <latest>" over the transaction dates,
// ordered chronologically and printed in their source format. Dates that
// cannot be parsed are ignored; with none parseable the result is empty.
func InferPeriod(txns []model.RawTransaction) string {
	var first, last string
	var lo, hi time.Time
	for _, t := range txns {
		d, ok := dates.ParseAny(t.Date)
		if !ok {
			continue
		}
		if first == "" || d.Before(lo) {
			lo, first = d, t.Date
		}
		if last == "" || d.After(hi) {
			hi, last = d, t.Date
		}
	}
	if first == "" {
		return ""
	}
	return first + " To " + last
}

// Registry maps lowercase bank aliases to extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor under alias. Panics on duplicate alias.
func (r *Registry) Register(alias string, e Extractor) {
	key := strings.ToLower(strings.TrimSpace(alias))
	if _, ok := r.extractors[key]; ok {
		panic("duplicate extractor alias: " + key)
	}
	r.extractors[key] = e
}

// Get returns the extractor for alias, or nil.
func (r *Registry) Get(alias string) Extractor {
	return r.extractors[strings.ToLower(strings.TrimSpace(alias))]
}

// Lookup is Get with an ErrUnknownBank error for unregistered aliases.
func (r *Registry) Lookup(alias string) (Extractor, error) {
	e := r.Get(alias)
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, alias)
	}
	return e, nil
}

// Aliases returns the registered aliases, sorted.
func (r *Registry) Aliases() []string {
	out := make([]string, 0, len(r.extractors))
	for k := range r.extractors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Folders returns one alias per distinct extractor, the first in sorted
// order. An extractor registered under several aliases gets one folder.
func (r *Registry) Folders() []string {
	var out []string
	seen := make(map[Extractor]bool)
	for _, alias := range r.Aliases() {
		e := r.extractors[alias]
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, alias)
	}
	return out
}

// DefaultRegistry returns a registry with every built-in bank under its
// folder aliases.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("hdfc", &HDFC{})
	r.Register("axis", &Axis{})
	r.Register("sbi", &SBI{})
	r.Register("union", &Union{})
	r.Register("bank_of_india", &BOI{})
	central := &Central{}
	r.Register("central", central)
	r.Register("central_bank", central)
	return r
}
