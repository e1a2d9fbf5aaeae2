package http

import (
	"net/http"
	"strconv"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/attendance"
	"github.com/coffeetree-vn/attendance-sync-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := attendance.ListFilter{
		EmployeeID: query.Get("employee_id"),
		DateFrom:   query.Get("date_from"),
		DateTo:     query.Get("date_to"),
	}
	if raw := query.Get("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := query.Get("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
