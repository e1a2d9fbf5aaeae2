package zkteco

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
)

// Client is an open protocol session with one terminal. Not safe for
// concurrent use; the sync pipeline is strictly sequential.
type Client struct {
	conn      net.Conn
	timeout   time.Duration
	sessionID uint16
	replyID   uint16
}

// Dialer opens zkteco sessions. It satisfies device.Dialer.
type Dialer struct{}

func NewDialer() Dialer {
	return Dialer{}
}

func (Dialer) Dial(ctx context.Context, host string, port int, password string, timeout time.Duration) (device.Conn, error) {
	return DialContext(ctx, host, port, password, timeout)
}

// DialContext connects to a terminal and performs the protocol
// handshake, authenticating with the comm password when the device
// demands it.
func DialContext(ctx context.Context, host string, port int, password string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", host, port, err)
	}

	c := &Client{conn: conn, timeout: timeout}

	reply, err := c.exchange(cmdConnect, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect handshake: %w", err)
	}
	c.sessionID = reply.Session

	if reply.Command == cmdAckUnauth {
		key, err := parseCommPassword(password)
		if err != nil {
			conn.Close()
			return nil, err
		}
		authReply, err := c.exchange(cmdAuth, makeCommKey(key, c.sessionID))
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("auth: %w", err)
		}
		if authReply.Command != cmdAckOK {
			conn.Close()
			return nil, ErrUnauthorized
		}
	} else if reply.Command != cmdAckOK {
		conn.Close()
		return nil, ErrCommandRefused
	}

	return c, nil
}

func parseCommPassword(password string) (uint32, error) {
	if password == "" {
		return 0, nil
	}
	key, err := strconv.ParseUint(password, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("comm password must be numeric: %w", err)
	}
	return uint32(key), nil
}

// SerialNumber reads the ~SerialNumber device option.
func (c *Client) SerialNumber() (string, error) {
	reply, err := c.exchange(cmdOptionsRRQ, []byte("~SerialNumber\x00"))
	if err != nil {
		return "", err
	}
	if reply.Command != cmdAckOK && reply.Command != cmdAckData {
		return "", ErrCommandRefused
	}
	value := cstr(reply.Data)
	if i := strings.IndexByte(value, '='); i >= 0 {
		value = value[i+1:]
	}
	return strings.TrimSpace(value), nil
}

// Users reads the enrolled user table.
func (c *Client) Users() ([]punch.RawUser, error) {
	data, err := c.readBuffered(reqUsers, fctUser)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	data = stripSizePrefix(data)

	users := make([]punch.RawUser, 0, len(data)/userRecordSize)
	for len(data) >= userRecordSize {
		rec := data[:userRecordSize]
		data = data[userRecordSize:]

		u := punch.RawUser{
			UID:          binary.LittleEndian.Uint16(rec[0:]),
			Role:         binary.LittleEndian.Uint16(rec[2:]),
			Name:         cstr(rec[12:36]),
			Card:         binary.LittleEndian.Uint32(rec[36:]),
			DeviceUserID: cstr(rec[48:72]),
		}
		if u.DeviceUserID == "" {
			u.DeviceUserID = strconv.Itoa(int(u.UID))
		}
		users = append(users, u)
	}
	return users, nil
}

// Punches reads the attendance log. The device is disabled for the
// duration of the read so concurrent scans don't tear the buffer.
func (c *Client) Punches() ([]punch.RawPunch, error) {
	if reply, err := c.exchange(cmdDisableDevice, nil); err == nil && reply.Command == cmdAckOK {
		defer c.exchange(cmdEnableDevice, nil)
	}

	data, err := c.readBuffered(reqAttLog, 0)
	if err != nil {
		return nil, fmt.Errorf("read attendance log: %w", err)
	}
	data = stripSizePrefix(data)

	punches := make([]punch.RawPunch, 0, len(data)/punchRecordSize)
	for len(data) >= punchRecordSize {
		rec := data[:punchRecordSize]
		data = data[punchRecordSize:]

		userID := cstr(rec[2:26])
		if userID == "" {
			userID = strconv.Itoa(int(binary.LittleEndian.Uint16(rec[0:])))
		}
		punches = append(punches, punch.RawPunch{
			DeviceUserID: userID,
			Status:       rec[26],
			Timestamp:    decodeTime(binary.LittleEndian.Uint32(rec[27:])),
			Punch:        rec[31],
		})
	}
	return punches, nil
}

// Time reads the device clock as naive wall-clock time.
func (c *Client) Time() (time.Time, error) {
	reply, err := c.exchange(cmdGetTime, nil)
	if err != nil {
		return time.Time{}, err
	}
	if reply.Command != cmdAckOK || len(reply.Data) < 4 {
		return time.Time{}, ErrCommandRefused
	}
	return decodeTime(binary.LittleEndian.Uint32(reply.Data)), nil
}

// SetTime writes a naive wall-clock time to the device clock.
func (c *Client) SetTime(t time.Time) error {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, encodeTime(t))
	reply, err := c.exchange(cmdSetTime, data)
	if err != nil {
		return err
	}
	if reply.Command != cmdAckOK {
		return ErrCommandRefused
	}
	return nil
}

// Close ends the session and drops the connection.
func (c *Client) Close() error {
	_, _ = c.exchange(cmdExit, nil)
	return c.conn.Close()
}

// exchange sends one command and reads one reply frame.
func (c *Client) exchange(command uint16, data []byte) (payload, error) {
	c.replyID++

	deadline := time.Now().Add(c.timeout)
	if err := c.conn.SetDeadline(deadline); err != nil {
		return payload{}, err
	}

	packet := encodePacket(payload{
		Command: command,
		Session: c.sessionID,
		Reply:   c.replyID,
		Data:    data,
	})
	if _, err := c.conn.Write(packet); err != nil {
		return payload{}, fmt.Errorf("write command %d: %w", command, err)
	}

	return c.readFrame()
}

// readFrame reads one complete TCP frame off the wire.
func (c *Client) readFrame() (payload, error) {
	header := make([]byte, tcpHeaderSize)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		return payload{}, fmt.Errorf("read frame header: %w", err)
	}
	length, err := decodeTCPHeader(header)
	if err != nil {
		return payload{}, err
	}
	inner := make([]byte, length)
	if _, err := io.ReadFull(c.conn, inner); err != nil {
		return payload{}, fmt.Errorf("read frame body: %w", err)
	}
	return decodePayload(inner)
}

// readBuffered requests a whole table. Small tables come back in one
// CMD_DATA reply; large ones arrive as CMD_PREPARE_DATA followed by
// data chunks which must be freed afterwards.
func (c *Client) readBuffered(req uint16, fct byte) ([]byte, error) {
	reqData := make([]byte, 11)
	reqData[0] = 1
	binary.LittleEndian.PutUint16(reqData[1:], req)
	binary.LittleEndian.PutUint32(reqData[3:], uint32(fct))
	// trailing 4 bytes: ext, always zero

	reply, err := c.exchange(cmdDataWRRQ, reqData)
	if err != nil {
		return nil, err
	}

	switch reply.Command {
	case cmdData:
		return reply.Data, nil
	case cmdAckOK:
		// empty table
		return nil, nil
	case cmdPrepareData:
		if len(reply.Data) < 4 {
			return nil, ErrInvalidReply
		}
		size := int(binary.LittleEndian.Uint32(reply.Data))
		collected := make([]byte, 0, size)
		for len(collected) < size {
			frame, err := c.readFrame()
			if err != nil {
				return nil, err
			}
			switch frame.Command {
			case cmdData:
				collected = append(collected, frame.Data...)
			case cmdAckOK:
				// device finished early; accept what we have
				return collected, nil
			default:
				return nil, ErrInvalidReply
			}
		}
		if _, err := c.exchange(cmdFreeData, nil); err != nil {
			return nil, err
		}
		return collected, nil
	default:
		return nil, ErrCommandRefused
	}
}

func stripSizePrefix(data []byte) []byte {
	if len(data) >= 4 {
		return data[4:]
	}
	return data
}
