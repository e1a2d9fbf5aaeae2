package punchsync

import (
	"testing"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestGroupByEmployeeDay_WindowIsInclusiveBothEnds(t *testing.T) {
	window := punch.Window{From: date(2024, 3, 1), To: date(2024, 3, 3)}

	punches := []punch.RawPunch{
		{DeviceUserID: "7", Timestamp: at(2024, 2, 29, 23, 59)},
		{DeviceUserID: "7", Timestamp: at(2024, 3, 1, 0, 0)},
		{DeviceUserID: "7", Timestamp: at(2024, 3, 3, 23, 59)},
		{DeviceUserID: "7", Timestamp: at(2024, 3, 4, 0, 0)},
	}

	groups, err := GroupByEmployeeDay(punches, window)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, date(2024, 3, 1), groups[0].Date)
	assert.Equal(t, date(2024, 3, 3), groups[1].Date)
}

func TestGroupByEmployeeDay_SortsPunchesWithinDay(t *testing.T) {
	window := punch.Window{From: date(2024, 3, 1), To: date(2024, 3, 1)}

	punches := []punch.RawPunch{
		{DeviceUserID: "7", Timestamp: at(2024, 3, 1, 17, 0)},
		{DeviceUserID: "7", Timestamp: at(2024, 3, 1, 8, 0)},
		{DeviceUserID: "7", Timestamp: at(2024, 3, 1, 12, 0)},
	}

	groups, err := GroupByEmployeeDay(punches, window)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	got := groups[0].Punches
	require.Len(t, got, 3)
	assert.Equal(t, at(2024, 3, 1, 8, 0), got[0].Timestamp)
	assert.Equal(t, at(2024, 3, 1, 12, 0), got[1].Timestamp)
	assert.Equal(t, at(2024, 3, 1, 17, 0), got[2].Timestamp)
}

func TestGroupByEmployeeDay_SplitsByEmployeeAndDay(t *testing.T) {
	window := punch.Window{From: date(2024, 3, 1), To: date(2024, 3, 2)}

	punches := []punch.RawPunch{
		{DeviceUserID: "7", Timestamp: at(2024, 3, 1, 8, 0)},
		{DeviceUserID: "7", Timestamp: at(2024, 3, 2, 8, 0)},
		{DeviceUserID: "12", Timestamp: at(2024, 3, 1, 9, 0)},
	}

	groups, err := GroupByEmployeeDay(punches, window)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Deterministic order: device user ID, then date
	assert.Equal(t, "12", groups[0].DeviceUserID)
	assert.Equal(t, "7", groups[1].DeviceUserID)
	assert.Equal(t, date(2024, 3, 1), groups[1].Date)
	assert.Equal(t, "7", groups[2].DeviceUserID)
	assert.Equal(t, date(2024, 3, 2), groups[2].Date)
}

func TestGroupByEmployeeDay_InvalidWindow(t *testing.T) {
	window := punch.Window{From: date(2024, 3, 3), To: date(2024, 3, 1)}

	_, err := GroupByEmployeeDay(nil, window)
	assert.ErrorIs(t, err, punch.ErrInvalidWindow)
}

func TestGroupByEmployeeDay_EmptyFeed(t *testing.T) {
	window := punch.Window{From: date(2024, 3, 1), To: date(2024, 3, 1)}

	groups, err := GroupByEmployeeDay(nil, window)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
