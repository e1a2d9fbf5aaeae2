package postgresql

import (
	"context"
	"fmt"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/database"
)

type syncRunRepository struct {
	db *database.DB
}

func NewSyncRunRepository(db *database.DB) device.SyncRunRepository {
	return &syncRunRepository{db: db}
}

// Create implements device.SyncRunRepository.
func (r *syncRunRepository) Create(ctx context.Context, run device.SyncRun) (device.SyncRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sync_runs (
			id, device_id, from_date, to_date, punches_read, created_count,
			skipped_duplicate, unresolved_employee_days, status, error_message,
			started_at, finished_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := q.Exec(ctx, query,
		run.ID,
		run.DeviceID,
		run.FromDate,
		run.ToDate,
		run.PunchesRead,
		run.Created,
		run.SkippedDuplicate,
		run.UnresolvedEmployeeDays,
		run.Status,
		run.ErrorMessage,
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return device.SyncRun{}, fmt.Errorf("failed to create sync run: %w", err)
	}

	return run, nil
}

// ListByDevice implements device.SyncRunRepository.
func (r *syncRunRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]device.SyncRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, device_id, from_date, to_date, punches_read, created_count,
			   skipped_duplicate, unresolved_employee_days, status, error_message,
			   started_at, finished_at
		FROM sync_runs
		WHERE device_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer rows.Close()

	var runs []device.SyncRun
	for rows.Next() {
		var run device.SyncRun
		if err := rows.Scan(
			&run.ID, &run.DeviceID, &run.FromDate, &run.ToDate, &run.PunchesRead,
			&run.Created, &run.SkippedDuplicate, &run.UnresolvedEmployeeDays,
			&run.Status, &run.ErrorMessage, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
