package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit is the page size used when the caller does not ask for one.
const DefaultLimit = 20

// MaxLimit caps the page size.
const MaxLimit = 100

// Cursor identifies the last journal entry of a page. Entries are listed by
// entry date, then creation time, then entry number, all descending.
type Cursor struct {
	EntryDate   time.Time
	CreatedAt   time.Time
	EntryNumber string
}

// Before reports whether an entry with the given keys sorts after the cursor,
// i.e. belongs to the next page.
func (c Cursor) Before(entryDate, createdAt time.Time, entryNumber string) bool {
	if !entryDate.Equal(c.EntryDate) {
		return entryDate.Before(c.EntryDate)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return entryNumber < c.EntryNumber
}

// EncodeToken creates an opaque page token from a cursor.
func EncodeToken(c Cursor) string {
	tokenStr := strings.Join([]string{
		c.EntryDate.UTC().Format(timeFormat),
		c.CreatedAt.UTC().Format(timeFormat),
		c.EntryNumber,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token date", apperrors.ErrValidation)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token timestamp", apperrors.ErrValidation)
	}

	return Cursor{EntryDate: entryDate, CreatedAt: createdAt, EntryNumber: parts[2]}, nil
}

// ClampLimit applies the default and maximum page sizes.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
