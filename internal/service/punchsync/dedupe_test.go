package punchsync

import (
	"testing"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchesAt(offsets ...time.Duration) []punch.RawPunch {
	base := at(2024, 3, 1, 8, 0)
	out := make([]punch.RawPunch, 0, len(offsets))
	for _, off := range offsets {
		out = append(out, punch.RawPunch{DeviceUserID: "7", Timestamp: base.Add(off)})
	}
	return out
}

func TestDeduplicate_DropsCloseScans(t *testing.T) {
	in := punchesAt(0, 2*time.Minute, 4*time.Hour)

	out := Deduplicate(in, DefaultDuplicateThreshold)

	require.Len(t, out, 2)
	assert.Equal(t, in[0].Timestamp, out[0].Timestamp)
	assert.Equal(t, in[2].Timestamp, out[1].Timestamp)
}

func TestDeduplicate_BaseAdvancesOnDroppedScans(t *testing.T) {
	// T, T+5m, T+20m: the middle scan is dropped, but it still moves the
	// comparison base, so T+20m is only 15m from its neighbour and kept.
	// T, T+5m, T+14m: the third is 9m from the dropped second, dropped too.
	out := Deduplicate(punchesAt(0, 5*time.Minute, 20*time.Minute), DefaultDuplicateThreshold)
	require.Len(t, out, 2)
	assert.Equal(t, at(2024, 3, 1, 8, 20), out[1].Timestamp)

	out = Deduplicate(punchesAt(0, 5*time.Minute, 14*time.Minute), DefaultDuplicateThreshold)
	require.Len(t, out, 1)
	assert.Equal(t, at(2024, 3, 1, 8, 0), out[0].Timestamp)
}

func TestDeduplicate_BurstSuppressedUntilFullGap(t *testing.T) {
	// Scans every 10 minutes never open a 15-minute gap after the first.
	out := Deduplicate(punchesAt(0, 10*time.Minute, 20*time.Minute, 30*time.Minute), DefaultDuplicateThreshold)

	require.Len(t, out, 1)
	assert.Equal(t, at(2024, 3, 1, 8, 0), out[0].Timestamp)
}

func TestDeduplicate_ExactThresholdKept(t *testing.T) {
	out := Deduplicate(punchesAt(0, 15*time.Minute), DefaultDuplicateThreshold)
	assert.Len(t, out, 2)
}

func TestDeduplicate_FirstScanAlwaysKept(t *testing.T) {
	out := Deduplicate(punchesAt(0), DefaultDuplicateThreshold)
	require.Len(t, out, 1)
}

func TestDeduplicate_Empty(t *testing.T) {
	assert.Nil(t, Deduplicate(nil, DefaultDuplicateThreshold))
}

func TestDeduplicate_ZeroThresholdKeepsEverything(t *testing.T) {
	out := Deduplicate(punchesAt(0, time.Second, 2*time.Second), 0)
	assert.Len(t, out, 3)
}
