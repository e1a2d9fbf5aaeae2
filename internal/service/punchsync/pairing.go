package punchsync

import (
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
)

// PairSessions folds a de-duplicated, ordered punch sequence into
// alternating check-in/check-out sessions. Odd punches open a session,
// even punches close it. A day ending on an open session is closed at
// 23:59:59 of the check-in's date.
func PairSessions(deviceUserID string, punches []punch.RawPunch) []punch.Session {
	var sessions []punch.Session
	var open punch.Session

	checkCount := 0
	for _, p := range punches {
		checkCount++
		if checkCount%2 == 1 {
			open = punch.Session{
				DeviceUserID: deviceUserID,
				CheckIn:      p.Timestamp,
			}
		} else {
			open.CheckOut = p.Timestamp
			sessions = append(sessions, open)
		}
	}

	if checkCount%2 == 1 {
		open.CheckOut = endOfDay(open.CheckIn)
		sessions = append(sessions, open)
	}

	return sessions
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
