package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ pagetext.RecordStore  = (*RecordService)(nil)
	_ pagetext.RecordFinder = (*RecordService)(nil)
	_ pagetext.RecordIndex  = (*RecordService)(nil)
)

// RecordService implements the pagetext record interfaces using SQLite.
type RecordService struct {
	db  *DB
	now func() time.Time
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db, now: time.Now}
}

// Exists reports whether a record is stored under name.
func (s *RecordService) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE name = ?", name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Save upserts rec under name. The first save assigns the id and
// created_at; later saves keep them and refresh everything else.
func (s *RecordService) Save(ctx context.Context, name string, rec *pagetext.Record) error {
	if name == "" {
		return pagetext.Errorf(pagetext.EINVALID, "record name required")
	}

	data, err := pagetext.MarshalRecord(rec)
	if err != nil {
		return err
	}

	var url string
	if rec.URL != nil {
		url = *rec.URL
	}
	now := s.now().UTC().Format(time.RFC3339)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, name, url, raw_string, record_json, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			url = excluded.url,
			raw_string = excluded.raw_string,
			record_json = excluded.record_json,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
	`, uuid.New().String(), name, url, rec.RawString, string(data), hashContent(rec.RawString), now, now)

	return err
}

// FindRecord retrieves the record stored under name.
func (s *RecordService) FindRecord(ctx context.Context, name string) (*pagetext.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT record_json FROM records WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagetext.Errorf(pagetext.ENOTFOUND, "record not found: %s", name)
	}
	if err != nil {
		return nil, err
	}

	var rec pagetext.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, pagetext.Errorf(pagetext.EINTERNAL, "corrupt record %s: %v", name, err)
	}
	return &rec, nil
}

// FindRecordInfos lists stored records ordered by name. Zero limit and
// offset return everything.
func (s *RecordService) FindRecordInfos(ctx context.Context, limit, offset int) ([]*pagetext.RecordInfo, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, url, content_hash, created_at, updated_at FROM records ORDER BY name")
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []*pagetext.RecordInfo
	for rows.Next() {
		var info pagetext.RecordInfo
		var createdAt, updatedAt string
		if err := rows.Scan(&info.ID, &info.Name, &info.URL, &info.ContentHash, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if info.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if info.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		infos = append(infos, &info)
	}
	return infos, rows.Err()
}

// DeleteRecord removes the record stored under name.
func (s *RecordService) DeleteRecord(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagetext.Errorf(pagetext.ENOTFOUND, "record not found: %s", name)
	}
	return nil
}
