package employee

import "time"

// Employee is a directory entry. DeviceUserID is the identifier the
// terminal knows the person by, distinct from the internal ID.
type Employee struct {
	ID           string
	Name         string
	DeviceUserID *string
	HourlySalary float64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
