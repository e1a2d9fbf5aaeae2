package device

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/sony/gobreaker/v2"
)

type DeviceServiceImpl struct {
	device.DeviceRepository
	device.SyncRunRepository

	dialer      device.Dialer
	timezone    string
	dialTimeout time.Duration
	breaker     *gobreaker.CircuitBreaker[device.Conn]
}

func NewDeviceService(
	deviceRepo device.DeviceRepository,
	runRepo device.SyncRunRepository,
	dialer device.Dialer,
	timezone string,
	dialTimeout time.Duration,
) device.DeviceService {
	cb := gobreaker.NewCircuitBreaker[device.Conn](gobreaker.Settings{
		Name:        "zkteco-dial",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("device dial circuit state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &DeviceServiceImpl{
		DeviceRepository:  deviceRepo,
		SyncRunRepository: runRepo,
		dialer:            dialer,
		timezone:          timezone,
		dialTimeout:       dialTimeout,
		breaker:           cb,
	}
}

// dial opens a breaker-guarded session so a dead terminal stops being
// hammered after repeated failures.
func (s *DeviceServiceImpl) dial(ctx context.Context, dev device.Device) (device.Conn, error) {
	if s.dialer == nil {
		return nil, punch.ErrTransportUnavailable
	}

	timeout := s.dialTimeout
	if dev.TimeoutSeconds > 0 {
		timeout = time.Duration(dev.TimeoutSeconds) * time.Second
	}

	conn, err := s.breaker.Execute(func() (device.Conn, error) {
		return s.dialer.Dial(ctx, dev.IPAddress, dev.Port, dev.Password, timeout)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", punch.ErrDeviceUnreachable, err)
	}
	return conn, nil
}

// Create implements device.DeviceService.
func (s *DeviceServiceImpl) Create(ctx context.Context, req device.CreateDeviceRequest) (device.DeviceResponse, error) {
	if err := req.Validate(); err != nil {
		return device.DeviceResponse{}, err
	}

	newDevice := device.Device{
		Name:           req.Name,
		IPAddress:      req.IPAddress,
		Port:           req.Port,
		Password:       req.Password,
		TimeoutSeconds: req.TimeoutSeconds,
		Active:         true,
	}
	if newDevice.Port == 0 {
		newDevice.Port = 4370
	}
	if newDevice.TimeoutSeconds == 0 {
		newDevice.TimeoutSeconds = 30
	}

	created, err := s.DeviceRepository.Create(ctx, newDevice)
	if err != nil {
		return device.DeviceResponse{}, fmt.Errorf("failed to create device: %w", err)
	}

	return mapDeviceToResponse(created), nil
}

// Get implements device.DeviceService.
func (s *DeviceServiceImpl) Get(ctx context.Context, id string) (device.DeviceResponse, error) {
	dev, err := s.DeviceRepository.GetByID(ctx, id)
	if err != nil {
		return device.DeviceResponse{}, err
	}
	return mapDeviceToResponse(dev), nil
}

// List implements device.DeviceService.
func (s *DeviceServiceImpl) List(ctx context.Context) ([]device.DeviceResponse, error) {
	devices, err := s.DeviceRepository.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	responses := make([]device.DeviceResponse, 0, len(devices))
	for _, dev := range devices {
		responses = append(responses, mapDeviceToResponse(dev))
	}
	return responses, nil
}

// Update implements device.DeviceService.
func (s *DeviceServiceImpl) Update(ctx context.Context, req device.UpdateDeviceRequest) (device.DeviceResponse, error) {
	if err := req.Validate(); err != nil {
		return device.DeviceResponse{}, err
	}

	dev, err := s.DeviceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return device.DeviceResponse{}, err
	}

	if req.Name != nil {
		dev.Name = *req.Name
	}
	if req.IPAddress != nil {
		dev.IPAddress = *req.IPAddress
	}
	if req.Port != nil {
		dev.Port = *req.Port
	}
	if req.Password != nil {
		dev.Password = *req.Password
	}
	if req.TimeoutSeconds != nil {
		dev.TimeoutSeconds = *req.TimeoutSeconds
	}
	if req.Active != nil {
		dev.Active = *req.Active
	}

	if err := s.DeviceRepository.Update(ctx, dev); err != nil {
		return device.DeviceResponse{}, fmt.Errorf("failed to update device: %w", err)
	}

	updated, err := s.DeviceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return device.DeviceResponse{}, err
	}
	return mapDeviceToResponse(updated), nil
}

// Delete implements device.DeviceService.
func (s *DeviceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.DeviceRepository.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// CheckConnection implements device.DeviceService. An unreachable
// terminal is a probe result, not a service failure.
func (s *DeviceServiceImpl) CheckConnection(ctx context.Context, id string) (device.ConnectionCheckResponse, error) {
	dev, err := s.DeviceRepository.GetByID(ctx, id)
	if err != nil {
		return device.ConnectionCheckResponse{}, err
	}

	conn, err := s.dial(ctx, dev)
	if err != nil {
		return device.ConnectionCheckResponse{
			Connected: false,
			Message:   err.Error(),
		}, nil
	}
	defer conn.Close()

	serial, err := conn.SerialNumber()
	if err != nil {
		return device.ConnectionCheckResponse{
			Connected: false,
			Message:   fmt.Sprintf("connected but serial read failed: %v", err),
		}, nil
	}

	users, err := conn.Users()
	if err != nil {
		return device.ConnectionCheckResponse{
			Connected:    true,
			SerialNumber: serial,
			Message:      fmt.Sprintf("serial %s, user list unavailable: %v", serial, err),
		}, nil
	}

	info := fmt.Sprintf("Serial: %s | %d enrolled users", serial, len(users))
	if err := s.DeviceRepository.UpdateLastSync(ctx, dev.ID, time.Now().UTC(), &info); err != nil {
		slog.Error("failed to store device info", "device_id", dev.ID, "error", err)
	}

	return device.ConnectionCheckResponse{
		Connected:    true,
		SerialNumber: serial,
		UserCount:    len(users),
		Message:      info,
	}, nil
}

// SetClock implements device.DeviceService. The primary write pushes
// the target zone's current wall-clock time; when the device rejects
// it, the fallback re-derives the same instant from UTC before giving
// up. Both failing aborts the caller's sync.
func (s *DeviceServiceImpl) SetClock(ctx context.Context, id string) error {
	dev, err := s.DeviceRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		loc = time.UTC
	}

	conn, err := s.dial(ctx, dev)
	if err != nil {
		return err
	}
	defer conn.Close()

	before, err := conn.Time()
	if err != nil {
		slog.Warn("could not read device clock before set", "device", dev.Name, "error", err)
	}

	primaryErr := conn.SetTime(naiveNow(time.Now(), loc))
	if primaryErr != nil {
		utcNow := time.Now().UTC()
		fallbackErr := conn.SetTime(naiveNow(utcNow, loc))
		if fallbackErr != nil {
			return fmt.Errorf("%w: primary: %v, fallback: %v", punch.ErrClockSetFailed, primaryErr, fallbackErr)
		}
	}

	after, err := conn.Time()
	if err == nil {
		slog.Info("device clock set",
			"device", dev.Name,
			"timezone", s.timezone,
			"before", before.Format("2006-01-02 15:04:05"),
			"after", after.Format("2006-01-02 15:04:05"),
		)
	}

	return nil
}

// ListRuns implements device.DeviceService.
func (s *DeviceServiceImpl) ListRuns(ctx context.Context, id string, limit int) ([]device.SyncRunResponse, error) {
	if _, err := s.DeviceRepository.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	runs, err := s.SyncRunRepository.ListByDevice(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}

	responses := make([]device.SyncRunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, device.SyncRunResponse{
			ID:                     run.ID,
			DeviceID:               run.DeviceID,
			FromDate:               run.FromDate.Format("2006-01-02"),
			ToDate:                 run.ToDate.Format("2006-01-02"),
			PunchesRead:            run.PunchesRead,
			Created:                run.Created,
			SkippedDuplicate:       run.SkippedDuplicate,
			UnresolvedEmployeeDays: run.UnresolvedEmployeeDays,
			Status:                 run.Status,
			ErrorMessage:           run.ErrorMessage,
			StartedAt:              run.StartedAt.Format("2006-01-02 15:04:05"),
			FinishedAt:             run.FinishedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return responses, nil
}

// naiveNow strips the zone from the given instant's wall-clock reading
// in loc; terminals store local time with no zone attached.
func naiveNow(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), 0, time.UTC)
}

func mapDeviceToResponse(dev device.Device) device.DeviceResponse {
	resp := device.DeviceResponse{
		ID:             dev.ID,
		Name:           dev.Name,
		IPAddress:      dev.IPAddress,
		Port:           dev.Port,
		TimeoutSeconds: dev.TimeoutSeconds,
		Active:         dev.Active,
		DeviceInfo:     dev.DeviceInfo,
		CreatedAt:      dev.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      dev.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if dev.LastSyncAt != nil {
		formatted := dev.LastSyncAt.Format("2006-01-02 15:04:05")
		resp.LastSyncAt = &formatted
	}
	return resp
}
