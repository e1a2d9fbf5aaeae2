package punchsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/config"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/attendance"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/employee"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/metrics"
	"github.com/google/uuid"
)

type SyncServiceImpl struct {
	device.DeviceRepository
	device.SyncRunRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository

	deviceService device.DeviceService
	dialer        device.Dialer
	metrics       *metrics.Metrics
	defaults      config.SyncConfig
	dialTimeout   time.Duration

	mu      sync.Mutex
	running map[string]bool
}

func NewSyncService(
	deviceRepo device.DeviceRepository,
	runRepo device.SyncRunRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	deviceService device.DeviceService,
	dialer device.Dialer,
	m *metrics.Metrics,
	defaults config.SyncConfig,
	dialTimeout time.Duration,
) punch.SyncService {
	return &SyncServiceImpl{
		DeviceRepository:     deviceRepo,
		SyncRunRepository:    runRepo,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		deviceService:        deviceService,
		dialer:               dialer,
		metrics:              m,
		defaults:             defaults,
		dialTimeout:          dialTimeout,
		running:              make(map[string]bool),
	}
}

// Sync implements punch.SyncService.
func (s *SyncServiceImpl) Sync(ctx context.Context, req punch.SyncRequest) (punch.Summary, error) {
	if err := req.Validate(); err != nil {
		return punch.Summary{}, err
	}

	window, err := req.Window()
	if err != nil {
		return punch.Summary{}, err
	}

	if !s.acquire(req.DeviceID) {
		return punch.Summary{}, punch.ErrSyncInProgress
	}
	defer s.release(req.DeviceID)

	dev, err := s.DeviceRepository.GetByID(ctx, req.DeviceID)
	if err != nil {
		return punch.Summary{}, err
	}
	if !dev.Active {
		return punch.Summary{}, device.ErrDeviceInactive
	}
	if s.dialer == nil {
		return punch.Summary{}, punch.ErrTransportUnavailable
	}

	threshold := s.defaults.DuplicateThreshold
	if req.DuplicateThresholdMinutes > 0 {
		threshold = time.Duration(req.DuplicateThresholdMinutes) * time.Minute
	}
	timezone := s.defaults.Timezone
	if req.Timezone != "" {
		timezone = req.Timezone
	}

	summary := punch.Summary{
		RunID:     uuid.NewString(),
		DeviceID:  dev.ID,
		StartedAt: time.Now().UTC(),
	}

	// Clock set is a precondition of sync; an unadjustable device would
	// feed skewed punches into every session.
	if err := s.deviceService.SetClock(ctx, dev.ID); err != nil {
		s.finishRun(ctx, dev, window, &summary, err)
		return summary, err
	}

	raw, userCount, err := s.readDevice(ctx, dev)
	if err != nil {
		s.finishRun(ctx, dev, window, &summary, err)
		return summary, err
	}
	summary.PunchesRead = len(raw)

	slog.Info("device read complete",
		"device", dev.Name,
		"users", userCount,
		"punches", len(raw),
		"from", req.FromDate,
		"to", req.ToDate,
	)

	groups, err := GroupByEmployeeDay(raw, window)
	if err != nil {
		s.finishRun(ctx, dev, window, &summary, err)
		return summary, err
	}

	normalizer := NewNormalizer(timezone, time.Now())

	// nil entry means the directory has no mapping for that device ID
	resolved := make(map[string]*employee.Employee)

	for _, group := range groups {
		emp, ok := resolved[group.DeviceUserID]
		if !ok {
			found, err := s.resolveEmployee(ctx, group.DeviceUserID)
			if err != nil {
				if !errors.Is(err, employee.ErrEmployeeNotFound) {
					wrapped := fmt.Errorf("resolve employee %q: %w", group.DeviceUserID, err)
					s.finishRun(ctx, dev, window, &summary, wrapped)
					return summary, wrapped
				}
				resolved[group.DeviceUserID] = nil
				emp = nil
			} else {
				resolved[group.DeviceUserID] = &found
				emp = &found
			}
		}

		if emp == nil {
			summary.UnresolvedEmployeeDays++
			slog.Warn("skipping employee-day, device user ID has no directory mapping",
				"device_user_id", group.DeviceUserID,
				"date", group.Date.Format("2006-01-02"),
			)
			continue
		}

		deduped := Deduplicate(group.Punches, threshold)
		sessions := PairSessions(group.DeviceUserID, deduped)

		for _, sess := range sessions {
			norm := normalizer.Apply(sess)

			exists, err := s.AttendanceRepository.Exists(ctx, emp.ID, norm.CheckIn)
			if err != nil {
				wrapped := fmt.Errorf("check existing attendance: %w", err)
				s.finishRun(ctx, dev, window, &summary, wrapped)
				return summary, wrapped
			}
			if exists {
				summary.SkippedDuplicate++
				continue
			}

			_, err = s.AttendanceRepository.Insert(ctx, attendance.Attendance{
				EmployeeID: emp.ID,
				CheckIn:    norm.CheckIn,
				CheckOut:   norm.CheckOut,
				Source:     attendance.SourceDeviceSync,
			})
			if err != nil {
				wrapped := fmt.Errorf("insert attendance: %w", err)
				s.finishRun(ctx, dev, window, &summary, wrapped)
				return summary, wrapped
			}
			summary.Created++
		}
	}

	s.finishRun(ctx, dev, window, &summary, nil)

	slog.Info("sync run complete",
		"device", dev.Name,
		"run_id", summary.RunID,
		"created", summary.Created,
		"skipped_duplicate", summary.SkippedDuplicate,
		"unresolved_employee_days", summary.UnresolvedEmployeeDays,
	)

	return summary, nil
}

// readDevice opens one session, pulls users and the attendance log,
// and closes the session before any processing starts.
func (s *SyncServiceImpl) readDevice(ctx context.Context, dev device.Device) ([]punch.RawPunch, int, error) {
	timeout := s.dialTimeout
	if dev.TimeoutSeconds > 0 {
		timeout = time.Duration(dev.TimeoutSeconds) * time.Second
	}

	conn, err := s.dialer.Dial(ctx, dev.IPAddress, dev.Port, dev.Password, timeout)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", punch.ErrDeviceUnreachable, err)
	}
	defer conn.Close()

	users, err := conn.Users()
	if err != nil {
		return nil, 0, fmt.Errorf("list device users: %w", err)
	}

	raw, err := conn.Punches()
	if err != nil {
		return nil, 0, fmt.Errorf("list device punches: %w", err)
	}

	return raw, len(users), nil
}

// resolveEmployee looks up the directory mapping first and retries the
// raw device ID as an internal identifier when the mapping is absent.
func (s *SyncServiceImpl) resolveEmployee(ctx context.Context, deviceUserID string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByDeviceUserID(ctx, deviceUserID)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, err
	}
	return s.EmployeeRepository.GetByID(ctx, deviceUserID)
}

// finishRun stamps the summary, records the run, and updates metrics.
// History bookkeeping failures are logged, never fatal to the run.
func (s *SyncServiceImpl) finishRun(ctx context.Context, dev device.Device, window punch.Window, summary *punch.Summary, runErr error) {
	summary.FinishedAt = time.Now().UTC()

	run := device.SyncRun{
		ID:                     summary.RunID,
		DeviceID:               dev.ID,
		FromDate:               window.From,
		ToDate:                 window.To,
		PunchesRead:            summary.PunchesRead,
		Created:                summary.Created,
		SkippedDuplicate:       summary.SkippedDuplicate,
		UnresolvedEmployeeDays: summary.UnresolvedEmployeeDays,
		Status:                 device.RunStatusCompleted,
		StartedAt:              summary.StartedAt,
		FinishedAt:             summary.FinishedAt,
	}
	if runErr != nil {
		run.Status = device.RunStatusFailed
		msg := runErr.Error()
		run.ErrorMessage = &msg
	}

	if s.SyncRunRepository != nil {
		if _, err := s.SyncRunRepository.Create(ctx, run); err != nil {
			slog.Error("failed to record sync run", "run_id", run.ID, "error", err)
		}
	}

	if runErr == nil && s.DeviceRepository != nil {
		info := fmt.Sprintf("last run %s: %d created, %d skipped", run.ID, run.Created, run.SkippedDuplicate)
		if err := s.DeviceRepository.UpdateLastSync(ctx, dev.ID, summary.FinishedAt, &info); err != nil {
			slog.Error("failed to stamp device last sync", "device_id", dev.ID, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.SyncRuns.WithLabelValues(run.Status).Inc()
		s.metrics.PunchesRead.Add(float64(summary.PunchesRead))
		s.metrics.SessionsCreated.Add(float64(summary.Created))
		s.metrics.SessionsSkipped.Add(float64(summary.SkippedDuplicate))
		s.metrics.UnresolvedEmployeeDays.Add(float64(summary.UnresolvedEmployeeDays))
		s.metrics.LastRunUnix.Set(float64(summary.FinishedAt.Unix()))
	}
}

func (s *SyncServiceImpl) acquire(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[deviceID] {
		return false
	}
	s.running[deviceID] = true
	return true
}

func (s *SyncServiceImpl) release(deviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, deviceID)
}
