package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type deviceRepository struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.DeviceRepository {
	return &deviceRepository{db: db}
}

// Create implements device.DeviceRepository.
func (r *deviceRepository) Create(ctx context.Context, newDevice device.Device) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO devices (name, ip_address, port, password, timeout_seconds, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newDevice.Name,
		newDevice.IPAddress,
		newDevice.Port,
		newDevice.Password,
		newDevice.TimeoutSeconds,
		newDevice.Active,
	).Scan(&newDevice.ID, &newDevice.CreatedAt, &newDevice.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return device.Device{}, device.ErrDeviceNameExists
		}
		return device.Device{}, fmt.Errorf("failed to create device: %w", err)
	}

	return newDevice, nil
}

// GetByID implements device.DeviceRepository.
func (r *deviceRepository) GetByID(ctx context.Context, id string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, ip_address, port, password, timeout_seconds, active,
			   device_info, last_sync_at, created_at, updated_at
		FROM devices
		WHERE id = $1
	`

	var dev device.Device
	err := q.QueryRow(ctx, query, id).Scan(
		&dev.ID, &dev.Name, &dev.IPAddress, &dev.Port, &dev.Password,
		&dev.TimeoutSeconds, &dev.Active, &dev.DeviceInfo, &dev.LastSyncAt,
		&dev.CreatedAt, &dev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, device.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to get device: %w", err)
	}

	return dev, nil
}

// List implements device.DeviceRepository.
func (r *deviceRepository) List(ctx context.Context, activeOnly bool) ([]device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, ip_address, port, password, timeout_seconds, active,
			   device_info, last_sync_at, created_at, updated_at
		FROM devices
	`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []device.Device
	for rows.Next() {
		var dev device.Device
		if err := rows.Scan(
			&dev.ID, &dev.Name, &dev.IPAddress, &dev.Port, &dev.Password,
			&dev.TimeoutSeconds, &dev.Active, &dev.DeviceInfo, &dev.LastSyncAt,
			&dev.CreatedAt, &dev.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, dev)
	}

	return devices, rows.Err()
}

// Update implements device.DeviceRepository.
func (r *deviceRepository) Update(ctx context.Context, dev device.Device) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE devices
		SET name = $2, ip_address = $3, port = $4, password = $5,
			timeout_seconds = $6, active = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		dev.ID, dev.Name, dev.IPAddress, dev.Port, dev.Password,
		dev.TimeoutSeconds, dev.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return device.ErrDeviceNameExists
		}
		return fmt.Errorf("failed to update device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return device.ErrDeviceNotFound
	}

	return nil
}

// Delete implements device.DeviceRepository.
func (r *deviceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return device.ErrDeviceNotFound
	}

	return nil
}

// UpdateLastSync implements device.DeviceRepository.
func (r *deviceRepository) UpdateLastSync(ctx context.Context, id string, at time.Time, info *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE devices
		SET last_sync_at = $2,
			device_info = COALESCE($3, device_info),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, at, info)
	if err != nil {
		return fmt.Errorf("failed to update device last sync: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return device.ErrDeviceNotFound
	}

	return nil
}
