package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/mock"
	ptslog "github.com/fwojciec/pagetext/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordStore(t *testing.T) {
	t.Parallel()

	t.Run("logs saves with character count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var saved string
		inner := &mock.RecordStore{
			SaveFn: func(_ context.Context, name string, _ *pagetext.Record) error {
				saved = name
				return nil
			},
		}

		store := ptslog.NewLoggingRecordStore(inner, newLogger(&buf, slog.LevelInfo))
		err := store.Save(context.Background(), "0.json", &pagetext.Record{RawString: "héllo"})

		require.NoError(t, err)
		assert.Equal(t, "0.json", saved)
		assert.Contains(t, buf.String(), `msg="save record"`)
		assert.Contains(t, buf.String(), "name=0.json")
		assert.Contains(t, buf.String(), "chars=5")
	})

	t.Run("logs save errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordStore{
			SaveFn: func(context.Context, string, *pagetext.Record) error {
				return errors.New("disk full")
			},
		}

		store := ptslog.NewLoggingRecordStore(inner, newLogger(&buf, slog.LevelInfo))
		err := store.Save(context.Background(), "0.json", &pagetext.Record{})

		require.EqualError(t, err, "disk full")
		assert.Contains(t, buf.String(), `err="disk full"`)
	})

	t.Run("logs existence checks only at debug", func(t *testing.T) {
		t.Parallel()

		inner := &mock.RecordStore{
			ExistsFn: func(context.Context, string) (bool, error) { return true, nil },
		}

		var info bytes.Buffer
		ok, err := ptslog.NewLoggingRecordStore(inner, newLogger(&info, slog.LevelInfo)).
			Exists(context.Background(), "1.json")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, info.String())

		var debug bytes.Buffer
		_, err = ptslog.NewLoggingRecordStore(inner, newLogger(&debug, slog.LevelDebug)).
			Exists(context.Background(), "1.json")
		require.NoError(t, err)
		assert.Contains(t, debug.String(), "exists=true")
	})
}

func TestLoggingSitemapService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string, *pagetext.URLFilter) ([]string, error) {
			return []string{"https://example.com/a", "https://example.com/b"}, nil
		},
	}

	svc := ptslog.NewLoggingSitemapService(inner, newLogger(&buf, slog.LevelInfo))
	urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, buf.String(), `msg="sitemap discovery"`)
	assert.Contains(t, buf.String(), "count=2")
	assert.Contains(t, buf.String(), "filtered=false")
}
