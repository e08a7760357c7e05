package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2026-10-15", want: NewDate(2026, time.October, 15)},
		{in: "2026-10-15T23:30:00+05:30", want: NewDate(2026, time.October, 15)},
		{in: "15/10/2026", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateOf_UsesLocationDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, time.October, 31, 23, 0, 0, 0, time.UTC).In(ist)
	assert.Equal(t, NewDate(2026, time.November, 1), DateOf(ts))
}

func TestDate_JSON(t *testing.T) {
	var o struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-02-03"}`), &o))
	assert.Equal(t, NewDate(2026, time.February, 3), o.Date)

	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-02-03"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"date":20260203}`), &o))
}

func TestDate_ScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-09", d.String())

	require.NoError(t, d.Scan([]byte("2025-12-31")))
	assert.Equal(t, NewDate(2025, time.December, 31), d)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", v)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(42))
}

func TestDate_Between(t *testing.T) {
	from := NewDate(2026, time.September, 1)
	to := NewDate(2026, time.September, 30)

	assert.True(t, from.Between(from, to))
	assert.True(t, to.Between(from, to))
	assert.False(t, to.AddDays(1).Between(from, to))
	assert.False(t, from.AddDays(-1).Between(from, to))
}
