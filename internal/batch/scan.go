package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bankfusion/bankfusion/internal/extractor"
)

// ErrRootNotFound is returned when the input root directory does not exist.
var ErrRootNotFound = errors.New("input root not found")

// Job is one candidate statement PDF.
type Job struct {
	Bank string // lowercase folder alias
	File string // base name
	Path string
}

// Stem is the file name without its extension.
func (j Job) Stem() string {
	return strings.TrimSuffix(j.File, filepath.Ext(j.File))
}

// Scan returns the PDFs directly inside root's bank folders. Folders that
// no extractor is registered for are skipped. Jobs are sorted by bank, then
// file.
func Scan(root string, reg *extractor.Registry) ([]Job, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("reading input root: %w", err)
	}

	var jobs []Job
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		bank := strings.ToLower(e.Name())
		if reg.Get(bank) == nil {
			continue
		}

		dir := filepath.Join(root, e.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), ".pdf") {
				continue
			}
			jobs = append(jobs, Job{
				Bank: bank,
				File: f.Name(),
				Path: filepath.Join(dir, f.Name()),
			})
		}
	}

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Bank != jobs[j].Bank {
			return jobs[i].Bank < jobs[j].Bank
		}
		return jobs[i].File < jobs[j].File
	})
	return jobs, nil
}
