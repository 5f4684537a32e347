package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paris(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	return loc
}

func TestParseOffsetAware(t *testing.T) {
	loc := paris(t)

	// +02:00 reading on a CET (+01:00) date lands one hour earlier in local.
	got, ok := Parse("2024-03-10T02:30:00+02:00", loc)
	require.True(t, ok)
	assert.Equal(t, "2024-03-10 01:30:00", got.Format("2006-01-02 15:04:05"))
}

func TestParseZulu(t *testing.T) {
	loc := paris(t)

	got, ok := Parse("2024-07-15T08:00:00Z", loc)
	require.True(t, ok)
	// CEST is UTC+2 in July.
	assert.Equal(t, "2024-07-15 10:00:00", got.Format("2006-01-02 15:04:05"))
}

func TestParseNaive(t *testing.T) {
	loc := paris(t)

	cases := []struct {
		in   string
		want string
	}{
		{"2024-07-15 10:00:00", "2024-07-15 10:00:00"},
		{"2024-07-15T10:00:00", "2024-07-15 10:00:00"},
		{"2024-07-15", "2024-07-15 00:00:00"},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in, loc)
		require.True(t, ok, "parse %q", tc.in)
		assert.Equal(t, tc.want, got.Format("2006-01-02 15:04:05"), "parse %q", tc.in)
	}
}

func TestParseInvalid(t *testing.T) {
	loc := paris(t)

	for _, in := range []string{"", "not a time", "15:04:05", "2024-13-40T99:00:00Z"} {
		_, ok := Parse(in, loc)
		assert.False(t, ok, "expected failure for %q", in)
	}
}

func TestAdjustDSTWinterReading(t *testing.T) {
	loc := paris(t)

	// March 10 is before the spring-forward date: DST inactive, so the
	// summer-offset reading shifts back one hour.
	got, ok := AdjustDST("2024-03-10T02:30:00+02:00", loc)
	require.True(t, ok)
	assert.Equal(t, "2024-03-10 00:30:00", got.Format("2006-01-02 15:04:05"))
}

func TestAdjustDSTSummerReading(t *testing.T) {
	loc := paris(t)

	got, ok := AdjustDST("2024-07-15T10:00:00+02:00", loc)
	require.True(t, ok)
	assert.Equal(t, "2024-07-15 10:00:00", got.Format("2006-01-02 15:04:05"))
}

func TestCorrectWallIdempotentInDST(t *testing.T) {
	loc := paris(t)

	// Inside the daylight-saving period the correction is the identity, so
	// applying it twice equals applying it once.
	wall := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
	once := CorrectWall(wall, loc)
	twice := CorrectWall(once, loc)
	assert.Equal(t, wall, once)
	assert.Equal(t, once, twice)
}

func TestCombineDateTime(t *testing.T) {
	got, ok := CombineDateTime("2024-05-02", "09:15:30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 2, 9, 15, 30, 0, time.UTC), got)

	_, ok = CombineDateTime("", "09:15:30")
	assert.False(t, ok)
	_, ok = CombineDateTime("2024-05-02", "")
	assert.False(t, ok)
}

func TestParseTimeOfDay(t *testing.T) {
	got, ok := ParseTimeOfDay("11:00:01")
	require.True(t, ok)
	assert.Equal(t, 11*time.Hour+time.Second, got)

	_, ok = ParseTimeOfDay("27:00:00")
	assert.False(t, ok)
}

func TestContainsInclusiveBounds(t *testing.T) {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC)

	assert.True(t, Contains(start, start, end))
	assert.True(t, Contains(end, start, end))
	assert.True(t, Contains(start.Add(time.Hour), start, end))
	assert.False(t, Contains(start.Add(-time.Second), start, end))
	assert.False(t, Contains(end.Add(time.Second), start, end))
}
