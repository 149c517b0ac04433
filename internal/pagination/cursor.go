// Package pagination implements opaque cursors over the (created_at, id)
// sort key used by every listing query.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultPageSize is used when callers pass a non-positive page size.
const DefaultPageSize = 20

// MaxPageSize caps a single page.
const MaxPageSize = 100

// Cursor marks a position in a result set ordered by
// (created_at DESC, id DESC). The zero value means "from the top".
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by Encode. An empty token yields a nil
// cursor (start of the result set).
func Decode(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("malformed cursor %q", token)
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("malformed cursor timestamp: %w", err)
	}
	return &Cursor{CreatedAt: ts, ID: parts[1]}, nil
}

// ClampPageSize normalizes a caller-supplied page size.
func ClampPageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Apply adds the cursor predicate and ordering for a table to a query.
// The row-value comparison is spelled out so it works on every dialect.
func Apply(db *gorm.DB, table string, c *Cursor) *gorm.DB {
	if c != nil {
		db = db.Where(
			fmt.Sprintf("%s.created_at < ? OR (%s.created_at = ? AND %s.id < ?)", table, table, table),
			c.CreatedAt, c.CreatedAt, c.ID,
		)
	}
	return db.Order(fmt.Sprintf("%s.created_at DESC, %s.id DESC", table, table))
}

// Next derives the follow-up cursor token from the last row of a page.
// Returns "" when the page was not full, i.e. there is nothing after it.
func Next(lastCreatedAt time.Time, lastID string, got, pageSize int) string {
	if got < pageSize {
		return ""
	}
	return Cursor{CreatedAt: lastCreatedAt, ID: lastID}.Encode()
}
