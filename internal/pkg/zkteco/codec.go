// Package zkteco implements the ZKTeco LAN protocol over TCP: packet
// framing, the ones'-complement checksum, the packed base-2000
// timestamp encoding, and the fixed-width user and attendance record
// layouts the terminals ship.
package zkteco

import (
	"bytes"
	"encoding/binary"
	"time"
)

// Protocol commands
const (
	cmdConnect       uint16 = 1000
	cmdExit          uint16 = 1001
	cmdEnableDevice  uint16 = 1002
	cmdDisableDevice uint16 = 1003

	cmdAckOK      uint16 = 2000
	cmdAckError   uint16 = 2001
	cmdAckData    uint16 = 2002
	cmdAckUnauth  uint16 = 2005
	cmdAuth       uint16 = 1102
	cmdOptionsRRQ uint16 = 11

	cmdPrepareData uint16 = 1500
	cmdData        uint16 = 1501
	cmdFreeData    uint16 = 1502
	cmdDataWRRQ    uint16 = 1503

	cmdGetTime uint16 = 201
	cmdSetTime uint16 = 202
)

// Buffered read targets
const (
	reqUsers  uint16 = 9  // user table
	reqAttLog uint16 = 13 // attendance log
	fctUser   byte   = 5
)

// Every TCP packet starts with this machine header.
var tcpMagic = []byte{0x50, 0x50, 0x82, 0x7d}

const (
	tcpHeaderSize     = 8
	payloadHeaderSize = 8
	ushrtMax          = 65535

	userRecordSize  = 72
	punchRecordSize = 40
)

// payload is the inner protocol unit carried by each TCP packet.
type payload struct {
	Command uint16
	Session uint16
	Reply   uint16
	Data    []byte
}

// checksum computes the protocol's ones'-complement 16-bit sum over
// the payload with its checksum field zeroed.
func checksum(p []byte) uint16 {
	var sum uint32
	i := 0
	for ; i+1 < len(p); i += 2 {
		sum += uint32(binary.LittleEndian.Uint16(p[i:]))
		if sum > ushrtMax {
			sum -= ushrtMax
		}
	}
	if i < len(p) {
		sum += uint32(p[len(p)-1])
	}
	for sum > ushrtMax {
		sum -= ushrtMax
	}
	return ^uint16(sum)
}

// encodePacket frames a payload into a full TCP packet.
func encodePacket(p payload) []byte {
	inner := make([]byte, payloadHeaderSize+len(p.Data))
	binary.LittleEndian.PutUint16(inner[0:], p.Command)
	binary.LittleEndian.PutUint16(inner[4:], p.Session)
	binary.LittleEndian.PutUint16(inner[6:], p.Reply)
	copy(inner[payloadHeaderSize:], p.Data)
	binary.LittleEndian.PutUint16(inner[2:], checksum(inner))

	packet := make([]byte, tcpHeaderSize+len(inner))
	copy(packet, tcpMagic)
	binary.LittleEndian.PutUint32(packet[4:], uint32(len(inner)))
	copy(packet[tcpHeaderSize:], inner)
	return packet
}

// decodeTCPHeader validates the machine header and returns the inner
// payload length.
func decodeTCPHeader(header []byte) (int, error) {
	if len(header) < tcpHeaderSize || !bytes.Equal(header[:4], tcpMagic) {
		return 0, ErrInvalidReply
	}
	return int(binary.LittleEndian.Uint32(header[4:])), nil
}

// decodePayload parses the inner packet; the checksum is recomputed
// and must match.
func decodePayload(inner []byte) (payload, error) {
	if len(inner) < payloadHeaderSize {
		return payload{}, ErrInvalidReply
	}
	p := payload{
		Command: binary.LittleEndian.Uint16(inner[0:]),
		Session: binary.LittleEndian.Uint16(inner[4:]),
		Reply:   binary.LittleEndian.Uint16(inner[6:]),
		Data:    inner[payloadHeaderSize:],
	}
	got := binary.LittleEndian.Uint16(inner[2:])
	scratch := make([]byte, len(inner))
	copy(scratch, inner)
	binary.LittleEndian.PutUint16(scratch[2:], 0)
	if checksum(scratch) != got {
		return payload{}, ErrBadChecksum
	}
	return p, nil
}

// encodeTime packs a wall-clock time into the device's base-2000
// radix encoding: days since 2000-01-01 counted in 31-day months,
// scaled to seconds.
func encodeTime(t time.Time) uint32 {
	days := (t.Year()-2000)*12*31 + (int(t.Month())-1)*31 + t.Day() - 1
	secs := (t.Hour()*60+t.Minute())*60 + t.Second()
	return uint32(days*86400 + secs)
}

// decodeTime unpacks a device timestamp into a naive wall-clock time
// expressed in UTC. The zone is a carrier only; the sync pipeline
// interprets the value as device-local time.
func decodeTime(v uint32) time.Time {
	second := int(v % 60)
	v /= 60
	minute := int(v % 60)
	v /= 60
	hour := int(v % 24)
	v /= 24
	day := int(v%31) + 1
	v /= 31
	month := int(v%12) + 1
	v /= 12
	year := int(v) + 2000
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

// makeCommKey derives the authentication key sent with CMD_AUTH from
// the device comm password and the session ID.
func makeCommKey(password uint32, sessionID uint16) []byte {
	var k uint32
	for i := 0; i < 32; i++ {
		if password&(1<<uint(i)) != 0 {
			k = k<<1 | 1
		} else {
			k <<= 1
		}
	}
	k += uint32(sessionID)

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, k)
	buf[0] ^= 'Z'
	buf[1] ^= 'K'
	buf[2] ^= 'S'
	buf[3] ^= 'O'

	lo := binary.LittleEndian.Uint16(buf[0:])
	hi := binary.LittleEndian.Uint16(buf[2:])
	binary.LittleEndian.PutUint16(buf[0:], hi)
	binary.LittleEndian.PutUint16(buf[2:], lo)

	const ticks = 50
	buf[0] ^= ticks
	buf[1] ^= ticks
	buf[2] = ticks
	buf[3] ^= ticks
	return buf
}

// cstr trims a fixed-width field at its first NUL.
func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimSpace(b))
}
