// Package batch walks the statement tree and runs every PDF through
// extraction and normalization, one file at a time.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bankfusion/bankfusion/internal/extractor"
	"github.com/bankfusion/bankfusion/internal/ledger"
	"github.com/bankfusion/bankfusion/internal/logger"
	"github.com/bankfusion/bankfusion/internal/metrics"
	"github.com/bankfusion/bankfusion/internal/model"
	"github.com/bankfusion/bankfusion/internal/normalizer"
	"github.com/bankfusion/bankfusion/internal/pdftext"
	"github.com/bankfusion/bankfusion/internal/runlog"
)

// FileResult is the per-file summary of a run.
type FileResult struct {
	Bank         string `json:"bank"`
	File         string `json:"file"`
	Transactions int    `json:"transactions"`
	Error        string `json:"error,omitempty"`
}

// Failed reports whether the file did not make it through the pipeline.
func (r FileResult) Failed() bool { return r.Error != "" }

// FileError is a per-file failure. It never stops the batch.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Run is the outcome of one batch.
type Run struct {
	ID       string
	Started  time.Time
	Finished time.Time
	Results  []FileResult
}

// Failures counts files that ended in error.
func (r Run) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// Outputs names where persisted results go.
type Outputs struct {
	ExtractedDir  string
	NormalizedDir string
	LogDir        string
}

// Orchestrator runs batches. The zero Timeout disables the per-file
// deadline. Metrics may be nil.
type Orchestrator struct {
	Registry *extractor.Registry
	Reader   pdftext.Reader
	Timeout  time.Duration
	Persist  bool
	Outputs  Outputs
	Metrics  *metrics.Pipeline
	Log      zerolog.Logger
}

// Run processes every PDF under root sequentially. A file that fails,
// panics or overruns Timeout is reported in its FileResult and the batch
// moves on. Only a missing root or a cancelled ctx end the run early.
func (o *Orchestrator) Run(ctx context.Context, root string) (Run, error) {
	run := Run{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Results: []FileResult{},
	}
	log := o.Log.With().Str("run_id", run.ID).Logger()
	ctx = logger.WithContext(ctx, log)

	jobs, err := Scan(root, o.Registry)
	if err != nil {
		return run, err
	}
	o.Metrics.RunStarted()
	log.Info().Str("root", root).Int("files", len(jobs)).Msg("batch started")

	var entries []runlog.Entry
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			run.Finished = time.Now()
			return run, fmt.Errorf("batch cancelled: %w", err)
		}

		start := time.Now()
		res := o.processJob(ctx, job)
		elapsed := time.Since(start)
		run.Results = append(run.Results, res)

		var fileErr error
		if res.Failed() {
			fileErr = errors.New(res.Error)
			log.Error().
				Str("bank", job.Bank).
				Str("file", job.File).
				Str("error", res.Error).
				Dur("duration", elapsed).
				Msg("file failed")
		} else {
			log.Info().
				Str("bank", job.Bank).
				Str("file", job.File).
				Int("transactions", res.Transactions).
				Dur("duration", elapsed).
				Msg("file processed")
		}
		o.Metrics.FileDone(job.Bank, res.Transactions, elapsed, fileErr)

		entries = append(entries, logEntry(run.ID, start, res))
	}
	run.Finished = time.Now()

	if o.Persist && len(entries) > 0 {
		if err := runlog.Append(o.Outputs.LogDir, entries); err != nil {
			return run, fmt.Errorf("writing run log: %w", err)
		}
	}

	log.Info().
		Int("files", len(run.Results)).
		Int("failed", run.Failures()).
		Dur("duration", run.Finished.Sub(run.Started)).
		Msg("batch finished")
	return run, nil
}

func (o *Orchestrator) processJob(ctx context.Context, job Job) FileResult {
	res := FileResult{Bank: job.Bank, File: job.File}

	st, norm, err := o.guarded(ctx, job)
	if err == nil && o.Persist {
		err = o.persist(job, st, norm)
	}
	if err != nil {
		res.Error = (&FileError{File: job.File, Err: err}).Error()
		return res
	}
	res.Transactions = len(st.Transactions)
	return res
}

type outcome struct {
	st   model.Statement
	norm model.NormalizedStatement
	err  error
}

// guarded runs ProcessFile inside a failure boundary: a panic becomes an
// error, and a file that overruns Timeout is abandoned.
func (o *Orchestrator) guarded(ctx context.Context, job Job) (model.Statement, model.NormalizedStatement, error) {
	ctx = logger.WithContext(ctx, logger.WithFields(logger.FromContext(ctx), map[string]any{
		"bank": job.Bank,
		"file": job.File,
	}))
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("extractor panic: %v", r)}
			}
		}()
		st, norm, err := o.ProcessFile(ctx, job.Path, job.Bank)
		done <- outcome{st: st, norm: norm, err: err}
	}()

	select {
	case out := <-done:
		return out.st, out.norm, out.err
	case <-ctx.Done():
		return model.Statement{}, model.NormalizedStatement{}, fmt.Errorf("extraction abandoned: %w", ctx.Err())
	}
}

// ProcessFile extracts and normalizes one PDF with the extractor registered
// for bank. It logs through the logger carried on ctx, if any.
func (o *Orchestrator) ProcessFile(ctx context.Context, path, bank string) (model.Statement, model.NormalizedStatement, error) {
	log := logger.FromContext(ctx)

	ext, err := o.Registry.Lookup(bank)
	if err != nil {
		return model.Statement{}, model.NormalizedStatement{}, err
	}

	doc, err := o.Reader.Read(ctx, path)
	if err != nil {
		return model.Statement{}, model.NormalizedStatement{}, fmt.Errorf("reading pdf: %w", err)
	}
	log.Debug().Str("extractor", ext.Bank()).Int("pages", len(doc.Pages)).Msg("pdf read")

	st := extractor.Extract(ext, doc)
	log.Debug().
		Str("account", st.AccountNumber).
		Str("period", st.StatementPeriod).
		Int("transactions", len(st.Transactions)).
		Msg("statement extracted")
	if verrs := extractor.ValidateStatement(st); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return st, model.NormalizedStatement{}, fmt.Errorf("invalid %s statement: %w", st.BankName, errors.Join(errs...))
	}
	return st, normalizer.NormalizeStatement(st), nil
}

func (o *Orchestrator) persist(job Job, st model.Statement, norm model.NormalizedStatement) error {
	if _, err := ledger.WriteExtracted(o.Outputs.ExtractedDir, job.Bank, job.Stem(), st); err != nil {
		return err
	}
	if _, err := ledger.WriteNormalized(o.Outputs.NormalizedDir, job.Bank, job.Stem(), norm); err != nil {
		return err
	}
	return nil
}

func logEntry(runID string, at time.Time, res FileResult) runlog.Entry {
	e := runlog.Entry{
		Timestamp:    at,
		RunID:        runID,
		Bank:         res.Bank,
		File:         res.File,
		Transactions: res.Transactions,
		Status:       runlog.StatusOK,
	}
	if res.Failed() {
		e.Status = runlog.StatusError
		e.Error = res.Error
	}
	return e
}
