package device

import (
	"context"
	"time"
)

// DeviceRepository defines data access for the device registry.
type DeviceRepository interface {
	Create(ctx context.Context, newDevice Device) (Device, error)
	GetByID(ctx context.Context, id string) (Device, error)
	List(ctx context.Context, activeOnly bool) ([]Device, error)
	Update(ctx context.Context, d Device) error
	Delete(ctx context.Context, id string) error

	// UpdateLastSync stamps a successful run and refreshes the info text.
	UpdateLastSync(ctx context.Context, id string, at time.Time, info *string) error
}

// SyncRunRepository records sync history per device.
type SyncRunRepository interface {
	Create(ctx context.Context, run SyncRun) (SyncRun, error)
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]SyncRun, error)
}
