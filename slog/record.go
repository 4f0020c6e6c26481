package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/pagetext"
)

// Ensure LoggingRecordStore implements pagetext.RecordStore.
var _ pagetext.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore. Saves are logged at Info and
// existence checks at Debug.
type LoggingRecordStore struct {
	next   pagetext.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next pagetext.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// Exists delegates to the wrapped store.
func (s *LoggingRecordStore) Exists(ctx context.Context, name string) (exists bool, err error) {
	defer func() {
		s.logger.Debug("record exists", "name", name, "exists", exists, "err", err)
	}()
	return s.next.Exists(ctx, name)
}

// Save delegates to the wrapped store and logs the record size.
func (s *LoggingRecordStore) Save(ctx context.Context, name string, rec *pagetext.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save record",
			"name", name,
			"chars", utf8.RuneCountInString(rec.RawString),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, name, rec)
}
