package pagination

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		EntryDate:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC),
		EntryNumber: "JE2024000042",
	}

	token := EncodeToken(cursor)
	require.NotEmpty(t, token)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, cursor.EntryDate.Equal(decoded.EntryDate))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, cursor.EntryNumber, decoded.EntryNumber)
}

func TestDecodeTokenEntryNumberWithSeparator(t *testing.T) {
	cursor := Cursor{EntryDate: time.Unix(0, 0).UTC(), CreatedAt: time.Unix(0, 0).UTC(), EntryNumber: "POS-a|b"}

	decoded, err := DecodeToken(EncodeToken(cursor))

	require.NoError(t, err)
	assert.Equal(t, "POS-a|b", decoded.EntryNumber)
}

func TestDecodeTokenInvalid(t *testing.T) {
	for _, token := range []string{"!!!", "bm9waXBl", EncodeToken(Cursor{})[:4]} {
		_, err := DecodeToken(token)
		assert.Error(t, err, token)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), token)
	}
}

func TestCursorBefore(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	at := day.Add(time.Hour)
	c := Cursor{EntryDate: day, CreatedAt: at, EntryNumber: "JE2024000005"}

	assert.True(t, c.Before(day.AddDate(0, 0, -1), at.Add(time.Hour), "JE2024000009"))
	assert.False(t, c.Before(day.AddDate(0, 0, 1), at, "JE2024000001"))
	assert.True(t, c.Before(day, at.Add(-time.Second), "JE2024000009"))
	assert.True(t, c.Before(day, at, "JE2024000004"))
	assert.False(t, c.Before(day, at, "JE2024000005"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-3))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
