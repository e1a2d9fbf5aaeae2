package response

import (
	"errors"
	"net/http"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/attendance"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/auth"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/employee"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Device domain errors
	case errors.Is(err, device.ErrDeviceNotFound):
		NotFound(w, "Device not found")
	case errors.Is(err, device.ErrDeviceNameExists):
		Conflict(w, "Device name already exists")
	case errors.Is(err, device.ErrDeviceInactive):
		BadRequest(w, "Device is inactive", nil)

	// Sync pipeline errors
	case errors.Is(err, punch.ErrInvalidWindow):
		BadRequest(w, "Invalid date window", nil)
	case errors.Is(err, punch.ErrSyncInProgress):
		Conflict(w, "A sync for this device is already running")
	case errors.Is(err, punch.ErrDeviceUnreachable):
		BadGateway(w, "Device is unreachable")
	case errors.Is(err, punch.ErrClockSetFailed):
		ServiceUnavailable(w, "Device clock could not be set")
	case errors.Is(err, punch.ErrTransportUnavailable):
		ServiceUnavailable(w, "Device transport is not configured")

	// Employee and attendance errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateSession):
		Conflict(w, "Attendance session already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
