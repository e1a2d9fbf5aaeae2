package attendance

import "context"

type AttendanceService interface {
	// List returns stored sessions matching the filter, enriched with
	// employee name and computed pay.
	List(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)
}
