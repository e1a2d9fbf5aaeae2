package attendance

import "time"

// Attendance is one persisted check-in/check-out session. CheckIn and
// CheckOut are stored in the reference zone (UTC instants).
type Attendance struct {
	ID         string
	EmployeeID string
	CheckIn    time.Time
	CheckOut   time.Time
	Source     string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
	HourlySalary *float64
}

// Attendance sources
const (
	SourceDeviceSync = "device_sync"
)

// WorkedHours returns the session length in hours.
func (a Attendance) WorkedHours() float64 {
	return a.CheckOut.Sub(a.CheckIn).Hours()
}

// SessionPay returns worked hours times the employee hourly rate, or
// zero when no rate is known. Computed, never stored.
func (a Attendance) SessionPay() float64 {
	if a.HourlySalary == nil {
		return 0
	}
	return a.WorkedHours() * *a.HourlySalary
}
