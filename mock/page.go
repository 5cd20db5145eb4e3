package mock

import (
	"context"

	"github.com/fwojciec/doxfix"
)

// Compile-time interface verification.
var (
	_ doxfix.PageStore = (*PageStore)(nil)
	_ doxfix.Manifest  = (*Manifest)(nil)
	_ doxfix.Watcher   = (*Watcher)(nil)
)

// PageStore is a mock implementation of doxfix.PageStore.
type PageStore struct {
	ListFn func(ctx context.Context) ([]string, error)
	LoadFn func(ctx context.Context, path string) (*doxfix.Page, error)
	SaveFn func(ctx context.Context, page *doxfix.Page) error
}

func (s *PageStore) List(ctx context.Context) ([]string, error) {
	return s.ListFn(ctx)
}

func (s *PageStore) Load(ctx context.Context, path string) (*doxfix.Page, error) {
	return s.LoadFn(ctx, path)
}

func (s *PageStore) Save(ctx context.Context, page *doxfix.Page) error {
	return s.SaveFn(ctx, page)
}

// Manifest is a mock implementation of doxfix.Manifest.
type Manifest struct {
	FixedFn  func(path, hash string) bool
	RecordFn func(path, hash string)
	FlushFn  func() error
}

func (m *Manifest) Fixed(path, hash string) bool {
	return m.FixedFn(path, hash)
}

func (m *Manifest) Record(path, hash string) {
	m.RecordFn(path, hash)
}

func (m *Manifest) Flush() error {
	return m.FlushFn()
}

// Watcher is a mock implementation of doxfix.Watcher.
type Watcher struct {
	WatchFn func(ctx context.Context, fn func(paths []string)) error
}

func (w *Watcher) Watch(ctx context.Context, fn func(paths []string)) error {
	return w.WatchFn(ctx, fn)
}
