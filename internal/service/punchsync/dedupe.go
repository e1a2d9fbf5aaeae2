package punchsync

import (
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
)

// DefaultDuplicateThreshold is the minimum gap below which two
// consecutive scans count as one physical punch.
const DefaultDuplicateThreshold = 15 * time.Minute

// Deduplicate collapses scans closer than threshold to their
// predecessor. The comparison base advances on every scan, dropped or
// kept: a burst of close scans keeps suppressing until a full
// threshold gap opens between neighbours.
func Deduplicate(punches []punch.RawPunch, threshold time.Duration) []punch.RawPunch {
	if len(punches) == 0 {
		return nil
	}

	kept := make([]punch.RawPunch, 0, len(punches))
	kept = append(kept, punches[0])
	previous := punches[0].Timestamp

	for _, current := range punches[1:] {
		gap := current.Timestamp.Sub(previous)
		if gap < 0 {
			gap = -gap
		}
		previous = current.Timestamp

		if gap < threshold {
			continue
		}
		kept = append(kept, current)
	}

	return kept
}
