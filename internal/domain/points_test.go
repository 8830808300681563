package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalDateJSONRoundTrip(t *testing.T) {
	d := NewLocalDate(2026, time.August, 24)

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-08-24"`, string(data))

	var parsed LocalDate
	assert.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestLocalDateUnmarshal_Invalid(t *testing.T) {
	var d LocalDate
	err := json.Unmarshal([]byte(`"24/08/2026"`), &d)
	assert.Error(t, err)
}

func TestLocalDateScan(t *testing.T) {
	var d LocalDate
	assert.NoError(t, d.Scan(time.Date(2026, time.August, 24, 13, 45, 0, 0, time.Local)))
	assert.Equal(t, "2026-08-24", d.String())

	assert.NoError(t, d.Scan([]byte("2026-01-05")))
	assert.Equal(t, "2026-01-05", d.String())

	assert.Error(t, d.Scan(42))
}

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday stays", time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC), "2026-08-24"},
		{"midweek", time.Date(2026, time.August, 27, 0, 0, 0, 0, time.UTC), "2026-08-24"},
		{"sunday rolls back", time.Date(2026, time.August, 30, 23, 59, 0, 0, time.UTC), "2026-08-24"},
		{"across month boundary", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), "2026-08-31"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StartOfWeek(tc.in).String())
		})
	}
}

func TestTotalPoints(t *testing.T) {
	p := &Points{Exercise: 2, Meals: 1, Alcohol: 0}
	assert.Equal(t, 3, p.TotalPoints())
}

func TestUserIsAdmin(t *testing.T) {
	assert.False(t, (&User{Level: 1}).IsAdmin())
	assert.True(t, (&User{Level: 10}).IsAdmin())
}
