package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/employee"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, name, device_user_id, hourly_salary, active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.DeviceUserID, &emp.HourlySalary,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}
	return emp, nil
}

// GetByDeviceUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByDeviceUserID(ctx context.Context, deviceUserID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE device_user_id = $1
		  AND active = true
		LIMIT 1
	`

	return scanEmployee(q.QueryRow(ctx, query, deviceUserID))
}

// GetByID implements employee.EmployeeRepository. The sync pipeline
// calls this with raw device IDs as a fallback, so a malformed UUID is
// reported as not-found rather than a query failure.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id::text = $1
		LIMIT 1
	`

	return scanEmployee(q.QueryRow(ctx, query, id))
}
