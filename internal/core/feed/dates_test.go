package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDateWindowExplicitBounds(t *testing.T) {
	now := time.Date(2026, time.August, 31, 15, 30, 0, 0, time.UTC)

	w := ResolveDateWindow("", 0, "2026-03-10", "2026-03-12", now)

	require.NotNil(t, w.Gt)
	require.NotNil(t, w.Lt)
	assert.Equal(t, date(2026, time.March, 10), *w.Gt)
	// An inclusive calendar date upper bound is the start of the next day.
	assert.Equal(t, date(2026, time.March, 13), *w.Lt)
}

func TestResolveDateWindowYesterday(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("yesterday", 0, "", "", now)

	require.NotNil(t, w.Gt)
	require.NotNil(t, w.Lt)
	assert.Equal(t, date(2026, time.August, 30), *w.Gt)
	assert.Equal(t, date(2026, time.August, 31), *w.Lt)
}

func TestResolveDateWindowWeekStartsMonday(t *testing.T) {
	// 2026-08-27 is a Thursday; its week starts Monday the 24th.
	now := time.Date(2026, time.August, 27, 12, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("week", 0, "", "", now)

	require.NotNil(t, w.Gt)
	require.NotNil(t, w.Lt)
	assert.Equal(t, date(2026, time.August, 24), *w.Gt)
	assert.Equal(t, date(2026, time.August, 31), *w.Lt)
}

func TestResolveDateWindowSundayBelongsToPrecedingWeek(t *testing.T) {
	// 2026-08-30 is a Sunday; the Monday-start week began on the 24th.
	now := time.Date(2026, time.August, 30, 8, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("week", 0, "", "", now)

	require.NotNil(t, w.Gt)
	assert.Equal(t, date(2026, time.August, 24), *w.Gt)
}

func TestResolveDateWindowLastMonth(t *testing.T) {
	now := time.Date(2026, time.August, 31, 23, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("lastMonth", 0, "", "", now)

	require.NotNil(t, w.Gt)
	require.NotNil(t, w.Lt)
	assert.Equal(t, date(2026, time.July, 1), *w.Gt)
	assert.Equal(t, date(2026, time.August, 1), *w.Lt)
}

func TestResolveDateWindowCreatedDays(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("", 7, "", "", now)

	require.NotNil(t, w.Gt)
	assert.Nil(t, w.Lt)
	assert.Equal(t, date(2026, time.August, 24), *w.Gt)
}

func TestResolveDateWindowBucketWinsOverExplicitBounds(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("today", 0, "2020-01-01", "2020-01-02", now)

	require.NotNil(t, w.Gt)
	require.NotNil(t, w.Lt)
	assert.Equal(t, date(2026, time.August, 31), *w.Gt)
	assert.Equal(t, date(2026, time.September, 1), *w.Lt)
}

func TestResolveDateWindowEmpty(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("", 0, "", "", now)

	assert.Nil(t, w.Gt)
	assert.Nil(t, w.Lt)
}

func TestResolveDateWindowIgnoresMalformedDates(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	w := ResolveDateWindow("", 0, "not-a-date", "2026-08-30", now)

	assert.Nil(t, w.Gt)
	require.NotNil(t, w.Lt)
	assert.Equal(t, date(2026, time.August, 31), *w.Lt)
}
