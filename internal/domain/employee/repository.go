package employee

import "context"

// EmployeeRepository resolves directory entries. The sync pipeline
// looks up by device user ID first and retries the raw ID as an
// internal identifier when the mapping is absent.
type EmployeeRepository interface {
	GetByDeviceUserID(ctx context.Context, deviceUserID string) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
}
