package bizcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMondayNormalization(t *testing.T) {
	cal, err := NewInZone("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name string
		date string
		want string
	}{
		{"monday stays", "2026-08-24", "2026-08-24"},
		{"tuesday", "2026-08-25", "2026-08-24"},
		{"sunday maps back", "2026-08-30", "2026-08-24"},
		{"saturday", "2026-08-29", "2026-08-24"},
		{"month boundary", "2026-09-01", "2026-08-31"},
		{"year boundary", "2026-01-01", "2025-12-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.Monday(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMondayRejectsInvalidDate(t *testing.T) {
	cal, err := NewInZone("Asia/Kolkata")
	require.NoError(t, err)

	for _, date := range []string{"", "  ", "2026-13-01", "24-08-2026", "not-a-date"} {
		_, err := cal.Monday(date)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate(" 2026-08-25 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25", parsed.Format(DateLayout))

	_, err = ParseDate("2026-08-32")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2026-02-28"))
	assert.False(t, IsDate("2026-02-30"))
	assert.False(t, IsDate(""))
}

func TestTodayMatchesLayout(t *testing.T) {
	cal, err := NewInZone("UTC")
	require.NoError(t, err)
	assert.True(t, IsDate(cal.Today()))
	assert.True(t, IsDate(cal.ThisMonday()))
}
