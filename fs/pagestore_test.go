package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/doxfix"
	"github.com/fwojciec/doxfix/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

// Story: Listing pages
// The store finds generated pages and ignores everything else

func TestPageStore_ListFindsPagesSorted(t *testing.T) {
	t.Parallel()

	// Given a Doxygen output directory
	root := t.TempDir()
	writeFile(t, root, "index.html", "<html></html>")
	writeFile(t, root, "classes.html", "<html></html>")
	writeFile(t, root, "sub/dir/class_foo.html", "<html></html>")
	writeFile(t, root, "doxygen.css", "body{}")
	writeFile(t, root, "jquery.js", "")
	writeFile(t, root, "search/all_0.html", "<html></html>")

	store := fs.NewPageStore(root)

	// When I list pages
	paths, err := store.List(context.Background())

	// Then only HTML pages outside skipped directories are returned, sorted
	require.NoError(t, err)
	assert.Equal(t, []string{"classes.html", "index.html", "sub/dir/class_foo.html"}, paths)
}

func TestPageStore_ListHonorsOptions(t *testing.T) {
	t.Parallel()

	// Given pages with custom extensions and a search directory
	root := t.TempDir()
	writeFile(t, root, "a.xhtml", "")
	writeFile(t, root, "b.HTML", "")
	writeFile(t, root, "c.html", "")
	writeFile(t, root, "search/d.xhtml", "")

	// When extensions and skip dirs are overridden
	store := fs.NewPageStore(root, fs.WithExtensions("xhtml", ".Html"), fs.WithSkipDirs())
	paths, err := store.List(context.Background())

	// Then matching is case-insensitive and search is no longer skipped
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xhtml", "b.HTML", "c.html", "search/d.xhtml"}, paths)
}

func TestPageStore_ListMissingRoot(t *testing.T) {
	t.Parallel()

	store := fs.NewPageStore(filepath.Join(t.TempDir(), "missing"))

	_, err := store.List(context.Background())

	require.Error(t, err)
	assert.Equal(t, doxfix.ENOTFOUND, doxfix.ErrorCode(err))
}

func TestPageStore_ListCancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "index.html", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.NewPageStore(root).List(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

// Story: Loading and saving pages

func TestPageStore_LoadReadsPage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "sub/a.html", "<p>hello</p>")
	store := fs.NewPageStore(root)

	page, err := store.Load(context.Background(), "sub/a.html")

	require.NoError(t, err)
	assert.Equal(t, "sub/a.html", page.Path)
	assert.Equal(t, "<p>hello</p>", page.HTML)
}

func TestPageStore_LoadMissingPage(t *testing.T) {
	t.Parallel()

	store := fs.NewPageStore(t.TempDir())

	_, err := store.Load(context.Background(), "nope.html")

	require.Error(t, err)
	assert.Equal(t, doxfix.ENOTFOUND, doxfix.ErrorCode(err))
}

func TestPageStore_RejectsPathsOutsideRoot(t *testing.T) {
	t.Parallel()

	store := fs.NewPageStore(t.TempDir())

	for _, path := range []string{"../escape.html", "/etc/passwd", "a/../../b.html", ""} {
		_, err := store.Load(context.Background(), path)
		assert.Equal(t, doxfix.EINVALID, doxfix.ErrorCode(err), "load %q", path)

		err = store.Save(context.Background(), &doxfix.Page{Path: path, HTML: "x"})
		assert.Equal(t, doxfix.EINVALID, doxfix.ErrorCode(err), "save %q", path)
	}
}

func TestPageStore_SaveReplacesContent(t *testing.T) {
	t.Parallel()

	// Given an existing page
	root := t.TempDir()
	writeFile(t, root, "a.html", "old")
	store := fs.NewPageStore(root)

	// When I save new content
	err := store.Save(context.Background(), &doxfix.Page{Path: "a.html", HTML: "new"})

	// Then the file holds the new content
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// And no temporary files are left behind
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPageStore_SaveCreatesDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := fs.NewPageStore(root)

	err := store.Save(context.Background(), &doxfix.Page{Path: "x/y/z.html", HTML: "z"})

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "x", "y", "z.html"))
	require.NoError(t, err)
	assert.Equal(t, "z", string(data))
}

func TestPageStore_IsPage(t *testing.T) {
	t.Parallel()

	store := fs.NewPageStore(t.TempDir())

	assert.True(t, store.IsPage("a/b.html"))
	assert.True(t, store.IsPage("B.HTML"))
	assert.False(t, store.IsPage("style.css"))
	assert.False(t, store.IsPage("html"))
}
