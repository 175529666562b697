package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	d := NewDate(2024, time.December, 25)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 25, d.Day())
	assert.Equal(t, time.UTC, d.Location())
}

func TestToday(t *testing.T) {
	today := Today()
	now := time.Now().UTC()
	assert.Equal(t, now.Year(), today.Year())
	assert.Equal(t, now.Month(), today.Month())
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2024-12-25")
		require.NoError(t, err)
		assert.Equal(t, NewDate(2024, time.December, 25), d)
	})

	t.Run("surrounding spaces", func(t *testing.T) {
		d, err := ParseDate(" 2024-01-05 ")
		require.NoError(t, err)
		assert.Equal(t, 5, d.Day())
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := ParseDate("not-a-date")
		assert.Error(t, err)
	})

	t.Run("wrong format", func(t *testing.T) {
		_, err := ParseDate("25/12/2024")
		assert.Error(t, err)
	})
}

func TestDateJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2024, time.December, 25))
		require.NoError(t, err)
		assert.Equal(t, `"2024-12-25"`, string(data))
	})

	t.Run("marshal zero", func(t *testing.T) {
		data, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	t.Run("unmarshal date and datetime", func(t *testing.T) {
		var a, b Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-01"`), &a))
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-01T15:04:05Z"`), &b))
		assert.Equal(t, a, b)
	})

	t.Run("unmarshal null", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
		assert.Equal(t, "", d.String())
	})

	t.Run("unmarshal invalid", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"03/01/2024"`), &d))
	})
}

func TestMonthsBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    Date
		end      Date
		expected int
	}{
		{"same day", NewDate(2024, 1, 15), NewDate(2024, 1, 15), 0},
		{"one day short", NewDate(2024, 1, 15), NewDate(2024, 2, 14), 0},
		{"exactly one month", NewDate(2024, 1, 15), NewDate(2024, 2, 15), 1},
		{"six months", NewDate(2024, 1, 15), NewDate(2024, 7, 20), 6},
		{"across year", NewDate(2023, 11, 1), NewDate(2024, 11, 1), 12},
		{"month end clamp", NewDate(2024, 1, 31), NewDate(2024, 2, 29), 1},
		{"month end short", NewDate(2024, 1, 31), NewDate(2024, 2, 28), 0},
		{"thirty first to thirtieth", NewDate(2024, 3, 31), NewDate(2024, 4, 30), 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := MonthsBetween(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMonthsBetween_EndBeforeStart(t *testing.T) {
	_, err := MonthsBetween(NewDate(2024, 5, 1), NewDate(2024, 4, 30))
	assert.ErrorIs(t, err, ErrDateOrder)
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, NewDate(2024, 7, 15), AddMonths(NewDate(2024, 1, 15), 6))
	assert.Equal(t, NewDate(2024, 2, 29), AddMonths(NewDate(2024, 1, 31), 1))
	assert.Equal(t, NewDate(2025, 1, 31), AddMonths(NewDate(2024, 1, 31), 12))

	start := NewDate(2024, 1, 31)
	n, err := MonthsBetween(start, AddMonths(start, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
