package doxfix

import "context"

// Page represents one generated HTML file.
type Page struct {
	// Path is slash-separated and relative to the documentation root.
	Path string
	HTML string
}

// PageStore reads and writes pages under a documentation root.
type PageStore interface {
	// List returns the paths of all pages, sorted.
	List(ctx context.Context) ([]string, error)

	// Load reads a page.
	// Returns ENOTFOUND if the page does not exist.
	Load(ctx context.Context, path string) (*Page, error)

	// Save replaces the page content atomically.
	Save(ctx context.Context, page *Page) error
}

// Manifest records the content hash of every page doxfix has written or
// verified, so that later runs leave those pages alone.
type Manifest interface {
	// Fixed reports whether hash is the recorded hash for path.
	Fixed(path, hash string) bool

	// Record stores hash as the current hash for path.
	Record(path, hash string)

	// Flush persists pending records.
	Flush() error
}

// Watcher reports pages that change on disk.
type Watcher interface {
	// Watch blocks until ctx is done, calling fn with each batch of changed
	// page paths.
	Watch(ctx context.Context, fn func(paths []string)) error
}
