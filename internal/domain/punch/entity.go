package punch

import "time"

// RawUser is a user record as enrolled on the terminal.
type RawUser struct {
	UID          uint16
	DeviceUserID string
	Name         string
	Role         uint16
	Card         uint32
}

// RawPunch is a single scan event read from the terminal. Timestamps
// are naive device-local wall-clock time; the pipeline normalizes them
// to the storage zone at the persistence step.
type RawPunch struct {
	DeviceUserID string
	Timestamp    time.Time
	Status       byte
	Punch        byte
}

// Group is one employee-day worth of punches, ordered ascending by
// timestamp. All punches share DeviceUserID and a device-local date.
type Group struct {
	DeviceUserID string
	Date         time.Time
	Punches      []RawPunch
}

// Session is a paired check-in/check-out interval. EmployeeID is empty
// until the directory resolves the device user ID.
type Session struct {
	DeviceUserID string
	EmployeeID   string
	CheckIn      time.Time
	CheckOut     time.Time
}

// Window is an inclusive calendar-date range limiting which punches
// participate in a sync run.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the given device-local date falls inside
// the window. Both bounds are inclusive.
func (w Window) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(w.From.Truncate(24*time.Hour)) && !d.After(w.To.Truncate(24*time.Hour))
}

// Valid reports whether the window bounds are ordered.
func (w Window) Valid() bool {
	return !w.From.After(w.To)
}
