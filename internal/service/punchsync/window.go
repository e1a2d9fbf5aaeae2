package punchsync

import (
	"sort"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
)

// GroupByEmployeeDay filters the raw feed to the sync window and
// partitions it into per-employee per-day groups, each ordered
// ascending by timestamp. Groups come back sorted by device user ID
// and date so runs are deterministic.
func GroupByEmployeeDay(punches []punch.RawPunch, window punch.Window) ([]punch.Group, error) {
	if !window.Valid() {
		return nil, punch.ErrInvalidWindow
	}

	type dayKey struct {
		deviceUserID string
		date         time.Time
	}

	grouped := make(map[dayKey][]punch.RawPunch)
	for _, p := range punches {
		date := dayOf(p.Timestamp)
		if !window.Contains(date) {
			continue
		}
		k := dayKey{deviceUserID: p.DeviceUserID, date: date}
		grouped[k] = append(grouped[k], p)
	}

	groups := make([]punch.Group, 0, len(grouped))
	for k, ps := range grouped {
		sort.Slice(ps, func(i, j int) bool {
			return ps[i].Timestamp.Before(ps[j].Timestamp)
		})
		groups = append(groups, punch.Group{
			DeviceUserID: k.deviceUserID,
			Date:         k.date,
			Punches:      ps,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].DeviceUserID != groups[j].DeviceUserID {
			return groups[i].DeviceUserID < groups[j].DeviceUserID
		}
		return groups[i].Date.Before(groups[j].Date)
	})

	return groups, nil
}

// dayOf truncates a naive timestamp to its calendar date.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
