// Package fix orchestrates fixing a tree of generated documentation pages.
// It coordinates loading, generator detection, the DOM pass and atomic
// saving, and keeps the manifest current so pages are fixed only once.
package fix

import (
	"context"

	"github.com/fwojciec/doxfix"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Runner applies a Fixer to pages from a PageStore.
type Runner struct {
	Store    doxfix.PageStore
	Fixer    doxfix.Fixer
	Detector doxfix.GeneratorDetector
	Manifest doxfix.Manifest

	Concurrency int

	// Force re-fixes pages the manifest marks as already fixed.
	Force bool

	// All fixes pages the Detector does not recognize as Doxygen output.
	All bool

	// DryRun computes results without saving pages or flushing the manifest.
	DryRun bool
}

// Outcome describes what happened to a single page.
type Outcome int

const (
	// OutcomeFixed means the page changed (and was saved unless dry-run).
	OutcomeFixed Outcome = iota
	// OutcomeUnchanged means no rule matched anything.
	OutcomeUnchanged
	// OutcomeCurrent means the manifest shows the page was already fixed.
	OutcomeCurrent
	// OutcomeForeign means the page was not generated by Doxygen.
	OutcomeForeign
	// OutcomeFailed means loading, fixing or saving returned an error.
	OutcomeFailed
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFixed:
		return "fixed"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeCurrent:
		return "current"
	case OutcomeForeign:
		return "foreign"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result holds the outcome of a run.
type Result struct {
	Fixed     int
	Unchanged int
	Skipped   int
	Failed    int
	Stats     doxfix.FixStats
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Outcome   Outcome
	Stats     doxfix.FixStats
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPage
	ProgressFinished
)

// ProgressFunc is called as pages are processed.
// Calls are serialized.
type ProgressFunc func(ProgressEvent)

type pageResult struct {
	path    string
	outcome Outcome
	stats   doxfix.FixStats
	err     error
}

// Run processes the given pages. Per-page failures are counted and reported
// through progress; the returned error is reserved for cancellation and
// manifest persistence.
func (r *Runner) Run(ctx context.Context, paths []string, progress ProgressFunc) (*Result, error) {
	total := len(paths)
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, path := range paths {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- r.processPage(gctx, path)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{}
	completed := 0
	for pr := range resultCh {
		completed++
		switch pr.outcome {
		case OutcomeFixed:
			result.Fixed++
		case OutcomeUnchanged:
			result.Unchanged++
		case OutcomeCurrent, OutcomeForeign:
			result.Skipped++
		case OutcomeFailed:
			result.Failed++
		}
		result.Stats = result.Stats.Add(pr.stats)

		progress(ProgressEvent{
			Type:      ProgressPage,
			Completed: completed,
			Total:     total,
			Path:      pr.path,
			Outcome:   pr.outcome,
			Stats:     pr.stats,
			Error:     pr.err,
		})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if !r.DryRun && r.Manifest != nil {
		if err := r.Manifest.Flush(); err != nil {
			return result, err
		}
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	return result, nil
}

func (r *Runner) processPage(ctx context.Context, path string) pageResult {
	if err := ctx.Err(); err != nil {
		return pageResult{path: path, outcome: OutcomeFailed, err: err}
	}

	page, err := r.Store.Load(ctx, path)
	if err != nil {
		return pageResult{path: path, outcome: OutcomeFailed, err: err}
	}

	hash := ComputeHash(page.HTML)
	if !r.Force && r.Manifest != nil && r.Manifest.Fixed(path, hash) {
		return pageResult{path: path, outcome: OutcomeCurrent}
	}

	if !r.All && r.Detector != nil && r.Detector.Detect(page.HTML) != doxfix.GeneratorDoxygen {
		return pageResult{path: path, outcome: OutcomeForeign}
	}

	fixed, err := r.Fixer.Fix(page.HTML)
	if err != nil {
		return pageResult{path: path, outcome: OutcomeFailed, err: err}
	}

	// Rendering normalizes markup, so only rule changes justify a rewrite.
	if fixed.Stats.Total() == 0 {
		r.record(path, hash)
		return pageResult{path: path, outcome: OutcomeUnchanged, stats: fixed.Stats}
	}

	if !r.DryRun {
		if err := r.Store.Save(ctx, &doxfix.Page{Path: path, HTML: fixed.HTML}); err != nil {
			return pageResult{path: path, outcome: OutcomeFailed, err: err}
		}
	}
	r.record(path, ComputeHash(fixed.HTML))

	return pageResult{path: path, outcome: OutcomeFixed, stats: fixed.Stats}
}

func (r *Runner) record(path, hash string) {
	if r.DryRun || r.Manifest == nil {
		return
	}
	r.Manifest.Record(path, hash)
}
