package device

import "context"

// DeviceService defines registry and terminal operations.
type DeviceService interface {
	Create(ctx context.Context, req CreateDeviceRequest) (DeviceResponse, error)
	Get(ctx context.Context, id string) (DeviceResponse, error)
	List(ctx context.Context) ([]DeviceResponse, error)
	Update(ctx context.Context, req UpdateDeviceRequest) (DeviceResponse, error)
	Delete(ctx context.Context, id string) error

	// CheckConnection probes the terminal and refreshes its info text.
	CheckConnection(ctx context.Context, id string) (ConnectionCheckResponse, error)

	// SetClock pushes the current target-zone wall-clock time to the
	// terminal, falling back to a UTC-derived conversion when the
	// primary write is rejected.
	SetClock(ctx context.Context, id string) error

	// ListRuns returns recent sync history for a device.
	ListRuns(ctx context.Context, id string, limit int) ([]SyncRunResponse, error)
}
