package device

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	serial     string
	users      []punch.RawUser
	clock      time.Time
	setErrs    []error
	setCalls   []time.Time
	timeErr    error
	closeCalls int
}

func (c *fakeConn) SerialNumber() (string, error)      { return c.serial, nil }
func (c *fakeConn) Users() ([]punch.RawUser, error)    { return c.users, nil }
func (c *fakeConn) Punches() ([]punch.RawPunch, error) { return nil, nil }

func (c *fakeConn) Time() (time.Time, error) {
	if c.timeErr != nil {
		return time.Time{}, c.timeErr
	}
	return c.clock, nil
}

func (c *fakeConn) SetTime(t time.Time) error {
	c.setCalls = append(c.setCalls, t)
	if len(c.setErrs) > 0 {
		err := c.setErrs[0]
		c.setErrs = c.setErrs[1:]
		return err
	}
	c.clock = t
	return nil
}

func (c *fakeConn) Close() error {
	c.closeCalls++
	return nil
}

type fakeDialer struct {
	conn    *fakeConn
	dialErr error
	dials   int
}

func (d *fakeDialer) Dial(ctx context.Context, host string, port int, password string, timeout time.Duration) (device.Conn, error) {
	d.dials++
	if d.dialErr != nil {
		return nil, d.dialErr
	}
	return d.conn, nil
}

type fakeDeviceRepo struct {
	devices map[string]device.Device
	info    map[string]string
}

func (r *fakeDeviceRepo) Create(ctx context.Context, d device.Device) (device.Device, error) {
	d.ID = fmt.Sprintf("dev-%d", len(r.devices)+1)
	r.devices[d.ID] = d
	return d, nil
}

func (r *fakeDeviceRepo) GetByID(ctx context.Context, id string) (device.Device, error) {
	d, ok := r.devices[id]
	if !ok {
		return device.Device{}, device.ErrDeviceNotFound
	}
	return d, nil
}

func (r *fakeDeviceRepo) List(ctx context.Context, activeOnly bool) ([]device.Device, error) {
	var out []device.Device
	for _, d := range r.devices {
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDeviceRepo) Update(ctx context.Context, d device.Device) error {
	if _, ok := r.devices[d.ID]; !ok {
		return device.ErrDeviceNotFound
	}
	r.devices[d.ID] = d
	return nil
}

func (r *fakeDeviceRepo) Delete(ctx context.Context, id string) error {
	delete(r.devices, id)
	return nil
}

func (r *fakeDeviceRepo) UpdateLastSync(ctx context.Context, id string, at time.Time, info *string) error {
	d := r.devices[id]
	d.LastSyncAt = &at
	if info != nil {
		r.info[id] = *info
	}
	r.devices[id] = d
	return nil
}

type fakeRunRepo struct {
	runs []device.SyncRun
}

func (r *fakeRunRepo) Create(ctx context.Context, run device.SyncRun) (device.SyncRun, error) {
	r.runs = append(r.runs, run)
	return run, nil
}

func (r *fakeRunRepo) ListByDevice(ctx context.Context, deviceID string, limit int) ([]device.SyncRun, error) {
	if limit > len(r.runs) {
		limit = len(r.runs)
	}
	return r.runs[:limit], nil
}

func newService(dialer device.Dialer) (device.DeviceService, *fakeDeviceRepo, *fakeRunRepo) {
	repo := &fakeDeviceRepo{
		devices: map[string]device.Device{
			"dev-1": {ID: "dev-1", Name: "Front Door", IPAddress: "10.0.0.5", Port: 4370, Active: true},
		},
		info: map[string]string{},
	}
	runs := &fakeRunRepo{}
	return NewDeviceService(repo, runs, dialer, "Asia/Ho_Chi_Minh", 30*time.Second), repo, runs
}

func TestCreate_AppliesDefaults(t *testing.T) {
	svc, repo, _ := newService(&fakeDialer{})

	resp, err := svc.Create(context.Background(), device.CreateDeviceRequest{
		Name:      "Warehouse",
		IPAddress: "10.0.0.6",
	})
	require.NoError(t, err)

	assert.Equal(t, 4370, resp.Port)
	assert.Equal(t, 30, resp.TimeoutSeconds)
	assert.True(t, resp.Active)

	stored := repo.devices[resp.ID]
	assert.Equal(t, "Warehouse", stored.Name)
}

func TestCreate_RejectsBadIP(t *testing.T) {
	svc, _, _ := newService(&fakeDialer{})

	_, err := svc.Create(context.Background(), device.CreateDeviceRequest{
		Name:      "Broken",
		IPAddress: "not-an-ip",
	})
	assert.Error(t, err)
}

func TestUpdate_PatchesOnlyGivenFields(t *testing.T) {
	svc, repo, _ := newService(&fakeDialer{})

	name := "Back Door"
	active := false
	_, err := svc.Update(context.Background(), device.UpdateDeviceRequest{
		ID:     "dev-1",
		Name:   &name,
		Active: &active,
	})
	require.NoError(t, err)

	stored := repo.devices["dev-1"]
	assert.Equal(t, "Back Door", stored.Name)
	assert.False(t, stored.Active)
	assert.Equal(t, "10.0.0.5", stored.IPAddress)
}

func TestCheckConnection_ReportsSerialAndUsers(t *testing.T) {
	conn := &fakeConn{
		serial: "A8N5231260001",
		users: []punch.RawUser{
			{UID: 1, DeviceUserID: "7", Name: "Linh"},
			{UID: 2, DeviceUserID: "12", Name: "Minh"},
		},
	}
	svc, repo, _ := newService(&fakeDialer{conn: conn})

	resp, err := svc.CheckConnection(context.Background(), "dev-1")
	require.NoError(t, err)

	assert.True(t, resp.Connected)
	assert.Equal(t, "A8N5231260001", resp.SerialNumber)
	assert.Equal(t, 2, resp.UserCount)
	assert.Contains(t, repo.info["dev-1"], "A8N5231260001")
	assert.Equal(t, 1, conn.closeCalls)
}

func TestCheckConnection_UnreachableIsAProbeResultNotAnError(t *testing.T) {
	svc, _, _ := newService(&fakeDialer{dialErr: fmt.Errorf("connection refused")})

	resp, err := svc.CheckConnection(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.False(t, resp.Connected)
	assert.Contains(t, resp.Message, "connection refused")
}

func TestSetClock_PrimaryWrite(t *testing.T) {
	conn := &fakeConn{clock: time.Date(2024, 3, 1, 7, 55, 0, 0, time.UTC)}
	svc, _, _ := newService(&fakeDialer{conn: conn})

	err := svc.SetClock(context.Background(), "dev-1")
	require.NoError(t, err)
	require.Len(t, conn.setCalls, 1)

	// The pushed time is the target zone's wall clock as a naive value.
	loc, _ := time.LoadLocation("Asia/Ho_Chi_Minh")
	want := time.Now().In(loc)
	got := conn.setCalls[0]
	assert.WithinDuration(t,
		time.Date(want.Year(), want.Month(), want.Day(), want.Hour(), want.Minute(), want.Second(), 0, time.UTC),
		got, 5*time.Second)
}

func TestSetClock_FallbackAfterPrimaryRejection(t *testing.T) {
	conn := &fakeConn{setErrs: []error{fmt.Errorf("refused")}}
	svc, _, _ := newService(&fakeDialer{conn: conn})

	err := svc.SetClock(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.Len(t, conn.setCalls, 2)
}

func TestSetClock_BothWritesFailing(t *testing.T) {
	conn := &fakeConn{setErrs: []error{fmt.Errorf("refused"), fmt.Errorf("refused again")}}
	svc, _, _ := newService(&fakeDialer{conn: conn})

	err := svc.SetClock(context.Background(), "dev-1")
	assert.ErrorIs(t, err, punch.ErrClockSetFailed)
}

func TestDial_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	dialer := &fakeDialer{dialErr: fmt.Errorf("connection refused")}
	svc, _, _ := newService(dialer)

	for i := 0; i < 8; i++ {
		_ = svc.SetClock(context.Background(), "dev-1")
	}

	// After five consecutive failures the breaker stops dialing.
	assert.Equal(t, 5, dialer.dials)
}

func TestListRuns_UnknownDevice(t *testing.T) {
	svc, _, _ := newService(&fakeDialer{})

	_, err := svc.ListRuns(context.Background(), "nope", 10)
	assert.ErrorIs(t, err, device.ErrDeviceNotFound)
}

func TestListRuns_ClampsLimit(t *testing.T) {
	svc, _, runs := newService(&fakeDialer{})
	for i := 0; i < 30; i++ {
		runs.runs = append(runs.runs, device.SyncRun{ID: fmt.Sprintf("run-%d", i), DeviceID: "dev-1", Status: device.RunStatusCompleted})
	}

	got, err := svc.ListRuns(context.Background(), "dev-1", 0)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}
