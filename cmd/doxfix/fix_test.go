package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/doxfix"
	main "github.com/fwojciec/doxfix/cmd/doxfix"
	"github.com/fwojciec/doxfix/fix"
	"github.com/fwojciec/doxfix/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(store doxfix.PageStore, fixer doxfix.Fixer) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
		Store:  store,
		Runner: &fix.Runner{
			Store: store,
			Fixer: fixer,
			Detector: &mock.GeneratorDetector{
				DetectFn: func(string) doxfix.Generator { return doxfix.GeneratorDoxygen },
			},
		},
	}, stdout, stderr
}

func linkFixer() *mock.Fixer {
	return &mock.Fixer{
		FixFn: func(html string) (*doxfix.FixResult, error) {
			return &doxfix.FixResult{HTML: html + "!", Stats: doxfix.FixStats{Links: 2, ClassIndexes: 1}}, nil
		},
	}
}

func TestFixCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports list errors", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			ListFn: func(ctx context.Context) ([]string, error) {
				return nil, doxfix.Errorf(doxfix.ENOTFOUND, "documentation directory %q not found", "/docs")
			},
		}
		deps, _, stderr := newDeps(store, linkFixer())

		err := (&main.FixCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: documentation directory \"/docs\" not found")
	})

	t.Run("reports empty directory", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			ListFn: func(ctx context.Context) ([]string, error) { return nil, nil },
		}
		deps, stdout, _ := newDeps(store, linkFixer())

		err := (&main.FixCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No pages found")
	})

	t.Run("prints each fixed page with its changes", func(t *testing.T) {
		t.Parallel()

		var saved []string
		store := &mock.PageStore{
			ListFn: func(ctx context.Context) ([]string, error) { return []string{"a.html"}, nil },
			LoadFn: func(ctx context.Context, path string) (*doxfix.Page, error) {
				return &doxfix.Page{Path: path, HTML: "<html></html>"}, nil
			},
			SaveFn: func(ctx context.Context, page *doxfix.Page) error {
				saved = append(saved, page.HTML)
				return nil
			},
		}
		deps, stdout, _ := newDeps(store, linkFixer())

		err := (&main.FixCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "fixed a.html (2 links, 1 class index)")
		assert.Contains(t, stdout.String(), "Fixed 1, unchanged 0, skipped 0, failed 0")
		assert.Equal(t, []string{"<html></html>!"}, saved)
	})

	t.Run("returns error when pages fail", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			ListFn: func(ctx context.Context) ([]string, error) { return []string{"a.html"}, nil },
			LoadFn: func(ctx context.Context, path string) (*doxfix.Page, error) {
				return nil, errors.New("permission denied")
			},
		}
		deps, _, stderr := newDeps(store, linkFixer())

		err := (&main.FixCmd{}).Run(deps)

		require.EqualError(t, err, "1 pages failed")
		assert.Contains(t, stderr.String(), "skip a.html: permission denied")
	})
}

func TestWatchCmd_Run(t *testing.T) {
	t.Parallel()

	store := &mock.PageStore{
		ListFn: func(ctx context.Context) ([]string, error) { return nil, nil },
		LoadFn: func(ctx context.Context, path string) (*doxfix.Page, error) {
			return &doxfix.Page{Path: path, HTML: "<html></html>"}, nil
		},
		SaveFn: func(ctx context.Context, page *doxfix.Page) error { return nil },
	}
	deps, stdout, _ := newDeps(store, linkFixer())
	deps.Watcher = &mock.Watcher{
		WatchFn: func(ctx context.Context, fn func(paths []string)) error {
			fn([]string{"regenerated.html"})
			return nil
		},
	}

	err := (&main.WatchCmd{TreeFlags: main.TreeFlags{Dir: "/docs"}}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Watching /docs")
	assert.Contains(t, stdout.String(), "fixed regenerated.html")
}

func TestWatchCmd_RunWatchError(t *testing.T) {
	t.Parallel()

	store := &mock.PageStore{
		ListFn: func(ctx context.Context) ([]string, error) { return nil, nil },
	}
	deps, _, _ := newDeps(store, linkFixer())
	deps.Watcher = &mock.Watcher{
		WatchFn: func(ctx context.Context, fn func(paths []string)) error {
			return errors.New("too many open files")
		},
	}

	err := (&main.WatchCmd{TreeFlags: main.TreeFlags{Dir: "/docs"}}).Run(deps)

	require.EqualError(t, err, "watch /docs: too many open files")
}

func TestFormatStats(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no changes", main.FormatStats(doxfix.FixStats{}))
	assert.Equal(t, "1 link", main.FormatStats(doxfix.FixStats{Links: 1}))
	assert.Equal(t, "2 templates, 3 members", main.FormatStats(doxfix.FixStats{TemplateParams: 2, MemberTexts: 3}))
	assert.Equal(t, "1 link, 1 template, 1 member, 2 class indexes",
		main.FormatStats(doxfix.FixStats{Links: 1, TemplateParams: 1, MemberTexts: 1, ClassIndexes: 2}))
}
