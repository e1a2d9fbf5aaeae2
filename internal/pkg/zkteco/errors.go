package zkteco

import "errors"

var (
	// ErrInvalidReply means the terminal answered with a frame the
	// protocol does not describe.
	ErrInvalidReply = errors.New("zkteco: invalid reply from device")

	// ErrBadChecksum means a frame arrived corrupted.
	ErrBadChecksum = errors.New("zkteco: reply checksum mismatch")

	// ErrUnauthorized means the device rejected the comm key.
	ErrUnauthorized = errors.New("zkteco: device rejected authentication")

	// ErrCommandRefused means the device answered a command with an
	// error acknowledgement.
	ErrCommandRefused = errors.New("zkteco: device refused command")
)
