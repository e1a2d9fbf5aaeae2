package device

import (
	"context"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
)

// Conn is an open session with a terminal.
type Conn interface {
	SerialNumber() (string, error)
	Users() ([]punch.RawUser, error)
	Punches() ([]punch.RawPunch, error)
	Time() (time.Time, error)
	SetTime(t time.Time) error
	Close() error
}

// Dialer opens sessions with terminals. Implementations own the wire
// protocol; the sync pipeline only sees Conn.
type Dialer interface {
	Dial(ctx context.Context, host string, port int, password string, timeout time.Duration) (Conn, error)
}
