package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/config"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
)

// SyncJobs pulls every active terminal on a fixed interval so manual
// syncs are only needed for backfills.
type SyncJobs struct {
	deviceRepo  device.DeviceRepository
	syncService punch.SyncService
	cfg         config.SyncConfig
}

func NewSyncJobs(
	deviceRepo device.DeviceRepository,
	syncService punch.SyncService,
	cfg config.SyncConfig,
) *SyncJobs {
	return &SyncJobs{
		deviceRepo:  deviceRepo,
		syncService: syncService,
		cfg:         cfg,
	}
}

func (j *SyncJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_sync_devices", j.cfg.AutoInterval, j.SyncActiveDevices)
}

// SyncActiveDevices runs the pipeline for every active device over a
// window ending today in the target zone. Yesterday is included so
// punches landing right before a run at midnight are not missed.
func (j *SyncJobs) SyncActiveDevices(ctx context.Context) error {
	loc, err := time.LoadLocation(j.cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	today := time.Now().In(loc)
	from := today.AddDate(0, 0, -1).Format("2006-01-02")
	to := today.Format("2006-01-02")

	devices, err := j.deviceRepo.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list active devices: %w", err)
	}

	var failed int
	for _, dev := range devices {
		summary, err := j.syncService.Sync(ctx, punch.SyncRequest{
			DeviceID: dev.ID,
			FromDate: from,
			ToDate:   to,
		})
		if err != nil {
			if errors.Is(err, punch.ErrSyncInProgress) {
				slog.Debug("Cron: Device sync already running, skipping", "device", dev.Name)
				continue
			}
			failed++
			slog.Error("Cron: Device sync failed", "device", dev.Name, "error", err)
			continue
		}
		slog.Info("Cron: Device sync completed",
			"device", dev.Name,
			"punches_read", summary.PunchesRead,
			"created", summary.Created,
			"skipped_duplicate", summary.SkippedDuplicate,
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d device syncs failed", failed, len(devices))
	}
	return nil
}
