package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateSession   = errors.New("attendance record already exists for this employee and check-in")
)
