// Package ledger persists extracted and normalized statements as JSON and
// exports the combined normalized ledger as CSV.
package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/bankfusion/bankfusion/internal/model"
)

// normalizedSuffix names persisted normalized statements:
// <bank>_<stem>_normalized.json.
const normalizedSuffix = "_normalized.json"

// ExtractedPath returns <dir>/<bank>/<stem>.json.
func ExtractedPath(dir, bank, stem string) string {
	return filepath.Join(dir, strings.ToLower(bank), stem+".json")
}

// NormalizedPath returns <dir>/<bank>_<stem>_normalized.json. The bank
// keeps same-named statements from different banks apart.
func NormalizedPath(dir, bank, stem string) string {
	return filepath.Join(dir, strings.ToLower(bank)+"_"+stem+normalizedSuffix)
}

// WriteExtracted writes the extracted statement for one PDF.
func WriteExtracted(dir, bank, stem string, st model.Statement) (string, error) {
	path := ExtractedPath(dir, bank, stem)
	if err := writeJSON(path, FromStatement(st)); err != nil {
		return "", fmt.Errorf("writing extracted %s: %w", stem, err)
	}
	return path, nil
}

// WriteNormalized writes the normalized statement for one PDF.
func WriteNormalized(dir, bank, stem string, st model.NormalizedStatement) (string, error) {
	path := NormalizedPath(dir, bank, stem)
	if err := writeJSON(path, FromNormalized(st)); err != nil {
		return "", fmt.Errorf("writing normalized %s: %w", stem, err)
	}
	return path, nil
}

// ReadNormalized reads a file written by WriteNormalized.
func ReadNormalized(path string) (NormalizedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NormalizedRecord{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var rec NormalizedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return NormalizedRecord{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// WriteCSV writes ledger rows with a header line.
func WriteCSV(w io.Writer, rows []NormalizedRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing ledger CSV: %w", err)
	}
	return nil
}

// ReadCSV reads rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]NormalizedRow, error) {
	var rows []NormalizedRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	return rows, nil
}

// ExportCSV merges every persisted normalized statement under dir into one
// CSV ledger, files in name order. Returns the number of rows written.
func ExportCSV(dir string, w io.Writer) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+normalizedSuffix))
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(paths)

	var rows []NormalizedRow
	for _, p := range paths {
		rec, err := ReadNormalized(p)
		if err != nil {
			return 0, err
		}
		rows = append(rows, rec.Transactions...)
	}
	if err := WriteCSV(w, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
