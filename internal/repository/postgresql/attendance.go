package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/attendance"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Exists implements attendance.AttendanceRepository.
func (r *attendanceRepository) Exists(ctx context.Context, employeeID string, checkIn time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendances
			WHERE employee_id = $1
			  AND check_in = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, checkIn).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}
	return exists, nil
}

// Insert implements attendance.AttendanceRepository. The unique index
// on (employee_id, check_in) backstops two runs racing past Exists.
func (r *attendanceRepository) Insert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, check_in, check_out, source)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.CheckIn,
		att.CheckOut,
		att.Source,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrDuplicateSession
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(` AND a.employee_id = $%d`, argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.DateFrom != "" {
		where += fmt.Sprintf(` AND a.check_in >= $%d::date`, argPos)
		args = append(args, filter.DateFrom)
		argPos++
	}
	if filter.DateTo != "" {
		where += fmt.Sprintf(` AND a.check_in < ($%d::date + INTERVAL '1 day')`, argPos)
		args = append(args, filter.DateTo)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `
		SELECT a.id, a.employee_id, a.check_in, a.check_out, a.source,
			   a.created_at, a.updated_at, e.name, e.hourly_salary
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id` + where + fmt.Sprintf(`
		ORDER BY a.check_in DESC
		LIMIT $%d OFFSET $%d
	`, argPos, argPos+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CheckIn, &att.CheckOut, &att.Source,
			&att.CreatedAt, &att.UpdatedAt, &att.EmployeeName, &att.HourlySalary,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}
