package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the persistence gate's storage contract.
// Uniqueness of (employee_id, check_in) is enforced by the store; the
// pipeline only ever inserts, never updates.
type AttendanceRepository interface {
	// Exists reports whether a record with this employee and check-in
	// instant is already stored.
	Exists(ctx context.Context, employeeID string, checkIn time.Time) (bool, error)

	// Insert stores a new session and returns it with its ID.
	Insert(ctx context.Context, att Attendance) (Attendance, error)

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)
}
