package punchsync

import (
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
)

// Normalizer shifts device-local naive timestamps into reference-zone
// instants using a fixed offset. The offset is the target zone's
// current UTC offset, resolved once per sync run; zone rule changes
// inside the window are not modeled.
type Normalizer struct {
	offset time.Duration
}

// NewNormalizer resolves the target zone's offset as of now. Unknown
// zone names fall back to UTC, matching how the rest of the codebase
// treats bad zone data.
func NewNormalizer(timezone string, now time.Time) Normalizer {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	_, offsetSeconds := now.In(loc).Zone()
	return Normalizer{offset: time.Duration(offsetSeconds) * time.Second}
}

// Offset returns the fixed offset applied to sessions.
func (n Normalizer) Offset() time.Duration {
	return n.offset
}

// Apply converts both ends of a session from device-local wall-clock
// time to the reference zone.
func (n Normalizer) Apply(s punch.Session) punch.Session {
	s.CheckIn = s.CheckIn.Add(-n.offset)
	s.CheckOut = s.CheckOut.Add(-n.offset)
	return s
}
