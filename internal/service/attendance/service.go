package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/attendance"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
	}
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.Normalize()

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

func mapAttendanceToResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		CheckIn:     rec.CheckIn.Format(time.RFC3339),
		CheckOut:    rec.CheckOut.Format(time.RFC3339),
		WorkedHours: rec.WorkedHours(),
		Source:      rec.Source,
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.HourlySalary != nil {
		pay := rec.SessionPay()
		resp.SessionPay = &pay
	}
	return resp
}
