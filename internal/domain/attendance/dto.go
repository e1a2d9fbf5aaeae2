package attendance

import (
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/validator"
)

// ListFilter narrows the attendance listing.
type ListFilter struct {
	EmployeeID string
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.DateFrom != "" {
		if _, ok := validator.IsValidDate(f.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateTo != "" {
		if _, ok := validator.IsValidDate(f.DateTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Normalize applies pagination defaults.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	CheckIn      string   `json:"check_in"`
	CheckOut     string   `json:"check_out"`
	WorkedHours  float64  `json:"worked_hours"`
	SessionPay   *float64 `json:"session_pay,omitempty"`
	Source       string   `json:"source"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
