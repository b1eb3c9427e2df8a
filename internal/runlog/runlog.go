// Package runlog keeps an append-only CSV audit of batch runs, one row per
// processed file.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Outcomes recorded in the status column.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp    time.Time
	RunID        string
	Bank         string
	File         string
	Transactions int
	Status       string
	Error        string
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,bank,file,transactions,status,error"

// FileName is the log file name inside the log directory.
const FileName = "run-log.csv"

const (
	numFields       = 7
	colTimestamp    = 0
	colRunID        = 1
	colBank         = 2
	colFile         = 3
	colTransactions = 4
	colStatus       = 5
	colError        = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colBank] = e.Bank
	row[colFile] = e.File
	row[colTransactions] = strconv.Itoa(e.Transactions)
	row[colStatus] = e.Status
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	n, err := strconv.Atoi(record[colTransactions])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing transactions %q: %w", record[colTransactions], err)
	}

	return Entry{
		Timestamp:    ts,
		RunID:        record[colRunID],
		Bank:         record[colBank],
		File:         record[colFile],
		Transactions: n,
		Status:       record[colStatus],
		Error:        record[colError],
	}, nil
}

// Append writes entries to <dir>/run-log.csv, creating the directory, file
// and header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dir>/run-log.csv.
// Returns nil if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ByRun groups entries by run ID, preserving file order within a run.
func ByRun(entries []Entry) map[string][]Entry {
	out := make(map[string][]Entry)
	for _, e := range entries {
		out[e.RunID] = append(out[e.RunID], e)
	}
	return out
}

// RunSummary totals one run's entries.
type RunSummary struct {
	RunID        string    `json:"run_id"`
	Started      time.Time `json:"started"`
	Files        int       `json:"files"`
	Failed       int       `json:"failed"`
	Transactions int       `json:"transactions"`
}

// Summarize totals entries per run, in order of each run's first entry.
func Summarize(entries []Entry) []RunSummary {
	groups := ByRun(entries)
	out := []RunSummary{}
	done := make(map[string]bool, len(groups))
	for _, e := range entries {
		if done[e.RunID] {
			continue
		}
		done[e.RunID] = true

		s := RunSummary{RunID: e.RunID, Started: e.Timestamp}
		for _, g := range groups[e.RunID] {
			s.Files++
			s.Transactions += g.Transactions
			if g.Status == StatusError {
				s.Failed++
			}
		}
		out = append(out, s)
	}
	return out
}
