package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/doxfix"
)

// Ensure LoggingStore implements doxfix.PageStore.
var _ doxfix.PageStore = (*LoggingStore)(nil)

// LoggingStore wraps a PageStore with logging of listings and writes.
// Loads are not logged.
type LoggingStore struct {
	next   doxfix.PageStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next doxfix.PageStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// List delegates to the wrapped store and logs the number of pages found.
func (s *LoggingStore) List(ctx context.Context) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list",
			"pages", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	return s.next.List(ctx)
}

// Load delegates to the wrapped store.
func (s *LoggingStore) Load(ctx context.Context, path string) (*doxfix.Page, error) {
	return s.next.Load(ctx, path)
}

// Save delegates to the wrapped store and logs the write.
func (s *LoggingStore) Save(ctx context.Context, page *doxfix.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"path", page.Path,
			"bytes", len(page.HTML),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	return s.next.Save(ctx, page)
}
