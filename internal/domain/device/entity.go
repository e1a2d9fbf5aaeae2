package device

import "time"

// Device is a registered ZKTeco terminal.
type Device struct {
	ID             string
	Name           string
	IPAddress      string
	Port           int
	Password       string
	TimeoutSeconds int
	Active         bool
	DeviceInfo     *string
	LastSyncAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SyncRun is one recorded pipeline execution against a device.
type SyncRun struct {
	ID                     string
	DeviceID               string
	FromDate               time.Time
	ToDate                 time.Time
	PunchesRead            int
	Created                int
	SkippedDuplicate       int
	UnresolvedEmployeeDays int
	Status                 string
	ErrorMessage           *string
	StartedAt              time.Time
	FinishedAt             time.Time
}

// SyncRun statuses
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
