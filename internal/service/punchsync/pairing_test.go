package punchsync

import (
	"testing"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairSessions_AlternatingPairs(t *testing.T) {
	sessions := PairSessions("7", punchesAt(0, 4*time.Hour, 5*time.Hour, 9*time.Hour+30*time.Minute))

	require.Len(t, sessions, 2)
	assert.Equal(t, at(2024, 3, 1, 8, 0), sessions[0].CheckIn)
	assert.Equal(t, at(2024, 3, 1, 12, 0), sessions[0].CheckOut)
	assert.Equal(t, at(2024, 3, 1, 13, 0), sessions[1].CheckIn)
	assert.Equal(t, at(2024, 3, 1, 17, 30), sessions[1].CheckOut)
	assert.Equal(t, "7", sessions[0].DeviceUserID)
}

func TestPairSessions_TrailingOpenSessionClosedAtEndOfDay(t *testing.T) {
	sessions := PairSessions("7", punchesAt(0, 4*time.Hour, 6*time.Hour))

	require.Len(t, sessions, 2)
	assert.Equal(t, at(2024, 3, 1, 14, 0), sessions[1].CheckIn)
	assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), sessions[1].CheckOut)
}

func TestPairSessions_SinglePunch(t *testing.T) {
	sessions := PairSessions("7", punchesAt(0))

	require.Len(t, sessions, 1)
	assert.Equal(t, at(2024, 3, 1, 8, 0), sessions[0].CheckIn)
	assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), sessions[0].CheckOut)
}

func TestPairSessions_NoPunches(t *testing.T) {
	assert.Empty(t, PairSessions("7", nil))
}

func TestPairSessions_SessionCountFollowsParity(t *testing.T) {
	offsets := make([]time.Duration, 0, 7)
	for i := 0; i < 7; i++ {
		offsets = append(offsets, time.Duration(i)*time.Hour)
	}

	for n := 0; n <= 7; n++ {
		sessions := PairSessions("7", punchesAt(offsets[:n]...))
		want := n / 2
		if n%2 == 1 {
			want++
		}
		assert.Len(t, sessions, want, "punch count %d", n)
	}
}

func TestPairSessions_EndOfDayFollowsCheckInDate(t *testing.T) {
	// A lone punch late in the evening still closes on its own date.
	sessions := PairSessions("7", []punch.RawPunch{
		{DeviceUserID: "7", Timestamp: at(2024, 3, 2, 22, 45)},
	})

	require.Len(t, sessions, 1)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 0, time.UTC), sessions[0].CheckOut)
}
