package punch

import "errors"

// Sync pipeline errors
var (
	// ErrInvalidWindow rejects a run whose from date is after its to date.
	ErrInvalidWindow = errors.New("sync window from_date is after to_date")

	// ErrDeviceUnreachable wraps a failed connect or handshake. Nothing
	// has been written when this surfaces.
	ErrDeviceUnreachable = errors.New("device unreachable")

	// ErrTransportUnavailable means no device transport was wired into
	// the service at construction time.
	ErrTransportUnavailable = errors.New("device transport is not configured")

	// ErrClockSetFailed means both the primary and the fallback clock
	// set method failed. Clock set is a precondition of sync, so the
	// run aborts before any read.
	ErrClockSetFailed = errors.New("failed to set device clock")

	// ErrSyncInProgress rejects a second concurrent run for one device.
	ErrSyncInProgress = errors.New("a sync run for this device is already in progress")
)
