package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:    testTime,
		RunID:        "run-1",
		Bank:         "hdfc",
		File:         "oct.pdf",
		Transactions: 12,
		Status:       StatusOK,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hdfc", entries[0].Bank)
	assert.Equal(t, 12, entries[0].Transactions)
}

func TestAppend_ExistingFileKeepsOneHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.RunID = "run-2"
	e2.Bank = "sbi"
	e2.Transactions = 0
	e2.Status = StatusError
	e2.Error = "extraction timed out"
	require.NoError(t, Append(dir, []Entry{e2}))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusOK, entries[0].Status)
	assert.Equal(t, "extraction timed out", entries[1].Error)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalUnmarshal(t *testing.T) {
	e := testEntry()
	row := MarshalEntry(e)
	assert.Len(t, row, 7)
	assert.Equal(t, "2025-10-15T10:30:00Z", row[0])
	assert.Equal(t, "12", row[4])

	got, err := UnmarshalEntry(row)
	require.NoError(t, err)
	assert.True(t, e.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, e.RunID, got.RunID)
	assert.Equal(t, e.File, got.File)
	assert.Equal(t, e.Transactions, got.Transactions)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 7 fields")

	row := MarshalEntry(testEntry())
	row[4] = "many"
	_, err = UnmarshalEntry(row)
	assert.Error(t, err)
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestByRun(t *testing.T) {
	a := testEntry()
	b := testEntry()
	b.File = "nov.pdf"
	c := testEntry()
	c.RunID = "run-2"

	groups := ByRun([]Entry{a, c, b})
	require.Len(t, groups, 2)
	require.Len(t, groups["run-1"], 2)
	assert.Equal(t, "oct.pdf", groups["run-1"][0].File)
	assert.Equal(t, "nov.pdf", groups["run-1"][1].File)
}

func TestSummarize(t *testing.T) {
	a := testEntry()
	b := testEntry()
	b.File = "bad.pdf"
	b.Transactions = 0
	b.Status = StatusError
	b.Error = "truncated"
	c := testEntry()
	c.RunID = "run-2"
	c.Timestamp = testTime.Add(time.Hour)
	c.Transactions = 3

	got := Summarize([]Entry{a, b, c})
	assert.Equal(t, []RunSummary{
		{RunID: "run-1", Started: testTime, Files: 2, Failed: 1, Transactions: 12},
		{RunID: "run-2", Started: testTime.Add(time.Hour), Files: 1, Transactions: 3},
	}, got)

	assert.Empty(t, Summarize(nil))
}
