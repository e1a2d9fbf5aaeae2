package punch

import (
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/validator"
)

// SyncRequest carries the run parameters for one device sync.
type SyncRequest struct {
	DeviceID string `json:"-"`

	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`

	// Optional overrides; zero values fall back to configured defaults.
	DuplicateThresholdMinutes int    `json:"duplicate_threshold_minutes,omitempty"`
	Timezone                  string `json:"timezone,omitempty"`
}

func (r *SyncRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "device_id is required",
		})
	}

	from, okFrom := validator.IsValidDate(r.FromDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}

	to, okTo := validator.IsValidDate(r.ToDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}

	if okFrom && okTo && from.After(to) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must not be after to_date",
		})
	}

	if r.DuplicateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duplicate_threshold_minutes",
			Message: "duplicate_threshold_minutes must not be negative",
		})
	}

	if r.Timezone != "" && !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Window parses the request dates into a sync window. Call Validate first.
func (r *SyncRequest) Window() (Window, error) {
	from, err := time.Parse("2006-01-02", r.FromDate)
	if err != nil {
		return Window{}, err
	}
	to, err := time.Parse("2006-01-02", r.ToDate)
	if err != nil {
		return Window{}, err
	}
	w := Window{From: from, To: to}
	if !w.Valid() {
		return Window{}, ErrInvalidWindow
	}
	return w, nil
}

// Summary is the outcome of one sync run.
type Summary struct {
	RunID                  string    `json:"run_id"`
	DeviceID               string    `json:"device_id"`
	PunchesRead            int       `json:"punches_read"`
	Created                int       `json:"created"`
	SkippedDuplicate       int       `json:"skipped_duplicate"`
	UnresolvedEmployeeDays int       `json:"unresolved_employee_days"`
	StartedAt              time.Time `json:"started_at"`
	FinishedAt             time.Time `json:"finished_at"`
}
