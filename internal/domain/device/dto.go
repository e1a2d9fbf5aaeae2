package device

import (
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/validator"
)

// ========================================
// DEVICE DTOs
// ========================================

type CreateDeviceRequest struct {
	Name           string `json:"name"`
	IPAddress      string `json:"ip_address"`
	Port           int    `json:"port"`
	Password       string `json:"password,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (r *CreateDeviceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidIP(r.IPAddress) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip_address",
			Message: "ip_address must be a valid IP address",
		})
	}

	if r.Port != 0 && !validator.IsValidPort(r.Port) {
		errs = append(errs, validator.ValidationError{
			Field:   "port",
			Message: "port must be between 1 and 65535",
		})
	}

	if r.TimeoutSeconds < 0 || r.TimeoutSeconds > 300 {
		errs = append(errs, validator.ValidationError{
			Field:   "timeout_seconds",
			Message: "timeout_seconds must be between 0 and 300",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDeviceRequest struct {
	ID             string  `json:"-"`
	Name           *string `json:"name"`
	IPAddress      *string `json:"ip_address"`
	Port           *int    `json:"port"`
	Password       *string `json:"password"`
	TimeoutSeconds *int    `json:"timeout_seconds"`
	Active         *bool   `json:"active"`
}

func (r *UpdateDeviceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.IPAddress != nil && !validator.IsValidIP(*r.IPAddress) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip_address",
			Message: "ip_address must be a valid IP address",
		})
	}

	if r.Port != nil && !validator.IsValidPort(*r.Port) {
		errs = append(errs, validator.ValidationError{
			Field:   "port",
			Message: "port must be between 1 and 65535",
		})
	}

	if r.TimeoutSeconds != nil && (*r.TimeoutSeconds < 0 || *r.TimeoutSeconds > 300) {
		errs = append(errs, validator.ValidationError{
			Field:   "timeout_seconds",
			Message: "timeout_seconds must be between 0 and 300",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeviceResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	IPAddress      string  `json:"ip_address"`
	Port           int     `json:"port"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	Active         bool    `json:"active"`
	DeviceInfo     *string `json:"device_info,omitempty"`
	LastSyncAt     *string `json:"last_sync_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// ConnectionCheckResponse reports the outcome of a connectivity probe.
type ConnectionCheckResponse struct {
	Connected    bool   `json:"connected"`
	SerialNumber string `json:"serial_number,omitempty"`
	UserCount    int    `json:"user_count,omitempty"`
	Message      string `json:"message"`
}

type SyncRunResponse struct {
	ID                     string  `json:"id"`
	DeviceID               string  `json:"device_id"`
	FromDate               string  `json:"from_date"`
	ToDate                 string  `json:"to_date"`
	PunchesRead            int     `json:"punches_read"`
	Created                int     `json:"created"`
	SkippedDuplicate       int     `json:"skipped_duplicate"`
	UnresolvedEmployeeDays int     `json:"unresolved_employee_days"`
	Status                 string  `json:"status"`
	ErrorMessage           *string `json:"error_message,omitempty"`
	StartedAt              string  `json:"started_at"`
	FinishedAt             string  `json:"finished_at"`
}
