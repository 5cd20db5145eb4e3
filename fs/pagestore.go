// Package fs provides file-based storage for generated documentation.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/doxfix"
	"github.com/natefinch/atomic"
)

// Defaults used by NewPageStore.
var (
	DefaultExtensions = []string{".html"}
	DefaultSkipDirs   = []string{"search"}
)

// Ensure PageStore implements doxfix.PageStore at compile time.
var _ doxfix.PageStore = (*PageStore)(nil)

// PageStore implements doxfix.PageStore over a documentation directory.
// Pages are replaced atomically: content goes to a temporary file in the same
// directory which is then renamed over the original.
type PageStore struct {
	root     string
	exts     map[string]bool
	skipDirs map[string]bool
}

// Option configures a PageStore.
type Option func(*PageStore)

// WithExtensions sets the file extensions treated as pages.
// Extensions are matched case-insensitively and may omit the leading dot.
func WithExtensions(exts ...string) Option {
	return func(s *PageStore) {
		s.exts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			s.exts[ext] = true
		}
	}
}

// WithSkipDirs sets directory names that List does not descend into.
func WithSkipDirs(dirs ...string) Option {
	return func(s *PageStore) {
		s.skipDirs = make(map[string]bool, len(dirs))
		for _, dir := range dirs {
			s.skipDirs[dir] = true
		}
	}
}

// NewPageStore creates a new PageStore rooted at root.
func NewPageStore(root string, opts ...Option) *PageStore {
	s := &PageStore{root: root}
	WithExtensions(DefaultExtensions...)(s)
	WithSkipDirs(DefaultSkipDirs...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the documentation directory.
func (s *PageStore) Root() string {
	return s.root
}

// IsPage reports whether a path has one of the configured extensions.
func (s *PageStore) IsPage(path string) bool {
	return s.exts[strings.ToLower(filepath.Ext(path))]
}

// List walks the root and returns the slash-separated relative paths of all
// pages, sorted.
func (s *PageStore) List(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !s.IsPage(path) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, doxfix.Errorf(doxfix.ENOTFOUND, "documentation directory %q not found", s.root)
	}
	if err != nil {
		return nil, err
	}

	slices.Sort(paths)
	return paths, nil
}

// Load reads a page.
func (s *PageStore) Load(ctx context.Context, path string) (*doxfix.Page, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, doxfix.Errorf(doxfix.ENOTFOUND, "page %q not found", path)
	}
	if err != nil {
		return nil, err
	}

	return &doxfix.Page{Path: path, HTML: string(data)}, nil
}

// Save replaces a page atomically. The mode of an existing file is kept.
func (s *PageStore) Save(ctx context.Context, page *doxfix.Page) error {
	full, err := s.resolve(page.Path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}

	return atomic.WriteFile(full, strings.NewReader(page.HTML))
}

// resolve maps a slash-separated page path to a path under the root.
func (s *PageStore) resolve(path string) (string, error) {
	if path == "" {
		return "", doxfix.Errorf(doxfix.EINVALID, "page path required")
	}
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", doxfix.Errorf(doxfix.EINVALID, "page path %q escapes documentation root", path)
	}
	return filepath.Join(s.root, local), nil
}
