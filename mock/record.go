package mock

import (
	"context"

	"github.com/fwojciec/pagetext"
)

var (
	_ pagetext.RecordStore  = (*RecordStore)(nil)
	_ pagetext.RecordFinder = (*RecordFinder)(nil)
)

// RecordStore is a mock implementation of pagetext.RecordStore.
type RecordStore struct {
	ExistsFn func(ctx context.Context, name string) (bool, error)
	SaveFn   func(ctx context.Context, name string, rec *pagetext.Record) error
}

func (s *RecordStore) Exists(ctx context.Context, name string) (bool, error) {
	return s.ExistsFn(ctx, name)
}

func (s *RecordStore) Save(ctx context.Context, name string, rec *pagetext.Record) error {
	return s.SaveFn(ctx, name, rec)
}

// RecordFinder is a mock implementation of pagetext.RecordFinder.
type RecordFinder struct {
	FindRecordFn func(ctx context.Context, name string) (*pagetext.Record, error)
}

func (f *RecordFinder) FindRecord(ctx context.Context, name string) (*pagetext.Record, error) {
	return f.FindRecordFn(ctx, name)
}

var _ pagetext.RecordIndex = (*RecordIndex)(nil)

// RecordIndex is a mock implementation of pagetext.RecordIndex.
type RecordIndex struct {
	FindRecordFn      func(ctx context.Context, name string) (*pagetext.Record, error)
	FindRecordInfosFn func(ctx context.Context, limit, offset int) ([]*pagetext.RecordInfo, error)
	DeleteRecordFn    func(ctx context.Context, name string) error
}

func (i *RecordIndex) FindRecord(ctx context.Context, name string) (*pagetext.Record, error) {
	return i.FindRecordFn(ctx, name)
}

func (i *RecordIndex) FindRecordInfos(ctx context.Context, limit, offset int) ([]*pagetext.RecordInfo, error) {
	return i.FindRecordInfosFn(ctx, limit, offset)
}

func (i *RecordIndex) DeleteRecord(ctx context.Context, name string) error {
	return i.DeleteRecordFn(ctx, name)
}
