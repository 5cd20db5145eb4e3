package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/doxfix"
	"github.com/fwojciec/doxfix/mock"
	dfslog "github.com/fwojciec/doxfix/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("logs path and bytes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var saved *doxfix.Page
		inner := &mock.PageStore{
			SaveFn: func(ctx context.Context, page *doxfix.Page) error {
				saved = page
				return nil
			},
		}

		store := dfslog.NewLoggingStore(inner, logger)
		err := store.Save(context.Background(), &doxfix.Page{Path: "classes.html", HTML: "12345"})

		require.NoError(t, err)
		require.NotNil(t, saved)
		output := buf.String()
		assert.Contains(t, output, "msg=save")
		assert.Contains(t, output, "path=classes.html")
		assert.Contains(t, output, "bytes=5")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageStore{
			SaveFn: func(ctx context.Context, page *doxfix.Page) error {
				return errors.New("read-only file system")
			},
		}

		err := dfslog.NewLoggingStore(inner, logger).Save(context.Background(), &doxfix.Page{Path: "a.html"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"read-only file system\"")
	})
}

func TestLoggingStore_List(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PageStore{
		ListFn: func(ctx context.Context) ([]string, error) {
			return []string{"a.html", "b.html"}, nil
		},
	}

	paths, err := dfslog.NewLoggingStore(inner, logger).List(context.Background())

	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.Contains(t, buf.String(), "pages=2")
}

func TestLoggingStore_Load(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PageStore{
		LoadFn: func(ctx context.Context, path string) (*doxfix.Page, error) {
			return &doxfix.Page{Path: path, HTML: "x"}, nil
		},
	}

	page, err := dfslog.NewLoggingStore(inner, logger).Load(context.Background(), "a.html")

	require.NoError(t, err)
	assert.Equal(t, "a.html", page.Path)
	assert.Empty(t, buf.String())
}
