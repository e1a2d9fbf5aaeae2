package zkteco

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePacketRoundTrip(t *testing.T) {
	p := payload{
		Command: cmdConnect,
		Session: 0x1234,
		Reply:   7,
		Data:    []byte{0xde, 0xad, 0xbe, 0xef, 0x01},
	}

	packet := encodePacket(p)

	length, err := decodeTCPHeader(packet[:tcpHeaderSize])
	require.NoError(t, err)
	assert.Equal(t, len(packet)-tcpHeaderSize, length)

	decoded, err := decodePayload(packet[tcpHeaderSize:])
	require.NoError(t, err)
	assert.Equal(t, p.Command, decoded.Command)
	assert.Equal(t, p.Session, decoded.Session)
	assert.Equal(t, p.Reply, decoded.Reply)
	assert.Equal(t, p.Data, decoded.Data)
}

func TestDecodePayloadRejectsCorruptChecksum(t *testing.T) {
	packet := encodePacket(payload{Command: cmdGetTime, Session: 1, Reply: 1})
	inner := packet[tcpHeaderSize:]
	inner[len(inner)-1] ^= 0xff

	_, err := decodePayload(inner)
	assert.ErrorIs(t, err, ErrBadChecksum)
}

func TestDecodeTCPHeaderRejectsBadMagic(t *testing.T) {
	header := []byte{0x00, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00}
	_, err := decodeTCPHeader(header)
	assert.ErrorIs(t, err, ErrInvalidReply)
}

func TestTimeCodecRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC),
		time.Date(2031, 12, 28, 17, 30, 5, 0, time.UTC),
	}

	for _, want := range cases {
		got := decodeTime(encodeTime(want))
		assert.True(t, got.Equal(want), "round trip %v -> %v", want, got)
	}
}

func TestDecodeTimeEpoch(t *testing.T) {
	// Zero is the device epoch, 2000-01-01 midnight.
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), decodeTime(0))
}

func TestChecksumFoldsOddTrailingByte(t *testing.T) {
	even := checksum([]byte{0x01, 0x02, 0x03, 0x04})
	odd := checksum([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	assert.NotEqual(t, even, odd)
}

func TestMakeCommKeyDependsOnSession(t *testing.T) {
	a := makeCommKey(123456, 100)
	b := makeCommKey(123456, 101)
	require.Len(t, a, 4)
	assert.NotEqual(t, a, b)
	// Third byte carries the fixed ticks marker.
	assert.Equal(t, byte(50), a[2])
}

func TestCstrStopsAtNulAndTrims(t *testing.T) {
	assert.Equal(t, "42", cstr([]byte{'4', '2', 0, 'x', 'y'}))
	assert.Equal(t, "7", cstr([]byte{' ', '7', ' ', 0}))
}
