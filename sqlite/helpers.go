package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// hashContent returns the xxHash of s as 16 hex digits.
func hashContent(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 || offset > 0 {
		// SQLite only accepts OFFSET after a LIMIT; -1 means no limit.
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
