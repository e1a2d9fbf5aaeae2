package punch

import "context"

// SyncService runs the punch reconciliation pipeline for one device:
// read, window, group, de-duplicate, pair, normalize, persist.
type SyncService interface {
	// Sync executes a full run and returns its summary. The run is
	// strictly sequential; inserts already committed before a failure
	// are not rolled back.
	Sync(ctx context.Context, req SyncRequest) (Summary, error)
}
