// Package fs stores records as JSON files and enumerates local batch inputs.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagetext"
)

// Ensure RecordStore implements the store interfaces at compile time.
var (
	_ pagetext.RecordStore  = (*RecordStore)(nil)
	_ pagetext.RecordFinder = (*RecordStore)(nil)
)

// RecordStore keeps one JSON file per record in a directory. Each file is
// written to a temporary name and renamed into place, so a crashed batch
// never leaves a truncated record behind that would be skipped on rerun.
type RecordStore struct {
	dir string
}

// NewRecordStore returns a RecordStore rooted at dir. The directory is
// created on the first Save.
func NewRecordStore(dir string) *RecordStore {
	return &RecordStore{dir: dir}
}

// Exists reports whether a file named name is present in the directory.
func (s *RecordStore) Exists(ctx context.Context, name string) (bool, error) {
	path, err := s.path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Save writes rec to the file name, replacing any previous content.
func (s *RecordStore) Save(ctx context.Context, name string, rec *pagetext.Record) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	data, err := pagetext.MarshalRecord(rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FindRecord reads the record stored in the file name.
func (s *RecordStore) FindRecord(ctx context.Context, name string) (*pagetext.Record, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pagetext.Errorf(pagetext.ENOTFOUND, "record not found: %s", name)
	} else if err != nil {
		return nil, err
	}

	var rec pagetext.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "malformed record %s: %v", name, err)
	}
	return &rec, nil
}

// path resolves name inside the store directory. Names are plain file
// names; anything that could escape the directory is rejected.
func (s *RecordStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", pagetext.Errorf(pagetext.EINVALID, "invalid record name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
