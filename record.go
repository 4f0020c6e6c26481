package pagetext

import (
	"context"
	"time"
)

// Range locates a span of Record.RawString. Offsets count characters
// (runes), not bytes.
type Range struct {
	From      int  `json:"from"`
	To        int  `json:"to"`
	Mandatory bool `json:"mandatory"`
}

// Record is the structured result of extracting a single page.
// URL and BaseURL are nil when URL extraction is disabled; they are never
// serialized as null.
type Record struct {
	URL       *string   `json:"URL,omitempty"`
	BaseURL   *string   `json:"baseURL,omitempty"`
	RawString string    `json:"rawString"`
	Headings  [][]Range `json:"headings"`
	Contents  []Range   `json:"contents"`
	Children  []*Record `json:"children"`
}

// Heading returns the text of the first heading group, or "" when the
// record carries no heading.
func (r *Record) Heading() string {
	if len(r.Headings) == 0 || len(r.Headings[0]) == 0 {
		return ""
	}
	return r.Slice(r.Headings[0][0])
}

// Content returns the text covered by the first contents range.
func (r *Record) Content() string {
	if len(r.Contents) == 0 {
		return ""
	}
	return r.Slice(r.Contents[0])
}

// Slice returns the part of RawString covered by rng. Offsets past the end
// of the string are clamped, so the reserved separator after the heading
// never causes a panic.
func (r *Record) Slice(rng Range) string {
	runes := []rune(r.RawString)
	from := min(max(rng.From, 0), len(runes))
	to := min(max(rng.To, from), len(runes))
	return string(runes[from:to])
}

// RecordStore persists records under an output name (e.g. "3.json").
type RecordStore interface {
	// Exists reports whether a record has already been stored under name.
	Exists(ctx context.Context, name string) (bool, error)

	// Save stores rec under name, replacing any previous record.
	Save(ctx context.Context, name string, rec *Record) error
}

// RecordFinder retrieves stored records.
type RecordFinder interface {
	// FindRecord returns the record stored under name.
	// Returns ENOTFOUND if no such record exists.
	FindRecord(ctx context.Context, name string) (*Record, error)
}

// RecordInfo describes a stored record without its body.
type RecordInfo struct {
	ID          string
	Name        string
	URL         string
	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordIndex browses and prunes a record database.
type RecordIndex interface {
	RecordFinder

	// FindRecordInfos lists stored records ordered by name. Zero limit and
	// offset return everything.
	FindRecordInfos(ctx context.Context, limit, offset int) ([]*RecordInfo, error)

	// DeleteRecord removes the record stored under name.
	// Returns ENOTFOUND if no such record exists.
	DeleteRecord(ctx context.Context, name string) error
}
