package device

import "errors"

// Device domain errors
var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrDeviceNameExists = errors.New("device name already registered")
	ErrDeviceInactive   = errors.New("device is inactive")
)
