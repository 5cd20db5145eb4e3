package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/doxfix"
	"github.com/fwojciec/doxfix/fix"
)

// Run executes the fix command.
func (c *FixCmd) Run(deps *Dependencies) error {
	deps.Runner.DryRun = c.DryRun

	result, err := fixTree(deps, c.DryRun)
	if err != nil {
		return err
	}

	printSummary(deps, result, c.DryRun)
	if result.Failed > 0 {
		return fmt.Errorf("%d pages failed", result.Failed)
	}
	return nil
}

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	deps.Runner.DryRun = true

	result, err := fixTree(deps, true)
	if err != nil {
		return err
	}

	printSummary(deps, result, true)
	if result.Failed > 0 {
		return fmt.Errorf("%d pages failed", result.Failed)
	}
	if result.Fixed > 0 {
		return fmt.Errorf("%d pages need fixing. Run 'doxfix fix %s'", result.Fixed, c.Dir)
	}
	return nil
}

// fixTree lists every page and runs the fixer over them.
func fixTree(deps *Dependencies, dryRun bool) (*fix.Result, error) {
	paths, err := deps.Store.List(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", doxfix.ErrorMessage(err))
		return nil, err
	}

	if len(paths) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found")
		return &fix.Result{}, nil
	}

	return deps.Runner.Run(deps.Ctx, paths, reportProgress(deps, dryRun))
}

// reportProgress prints one line per changed or failed page.
func reportProgress(deps *Dependencies, dryRun bool) fix.ProgressFunc {
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	return func(e fix.ProgressEvent) {
		if e.Type != fix.ProgressPage {
			return
		}
		switch e.Outcome {
		case fix.OutcomeFixed:
			fmt.Fprintf(deps.Stdout, "%s %s (%s)\n", verb, e.Path, FormatStats(e.Stats))
		case fix.OutcomeFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", e.Path, e.Error)
		}
	}
}

func printSummary(deps *Dependencies, r *fix.Result, dryRun bool) {
	label := "Fixed"
	if dryRun {
		label = "Would fix"
	}
	fmt.Fprintf(deps.Stdout, "%s %d, unchanged %d, skipped %d, failed %d\n",
		label, r.Fixed, r.Unchanged, r.Skipped, r.Failed)
}

// FormatStats describes the non-zero counters of s, e.g. "2 links, 1 class index".
func FormatStats(s doxfix.FixStats) string {
	var parts []string
	add := func(n int, one, many string) {
		switch {
		case n == 1:
			parts = append(parts, "1 "+one)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, many))
		}
	}
	add(s.Links, "link", "links")
	add(s.TemplateParams, "template", "templates")
	add(s.MemberTexts, "member", "members")
	add(s.ClassIndexes, "class index", "class indexes")
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
