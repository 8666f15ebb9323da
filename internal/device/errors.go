package device

import "errors"

// Domain errors for the device package, checked with errors.Is.
var (
	// ErrInvalidType is returned when a device type string is not recognised.
	ErrInvalidType = errors.New("device: invalid type")

	// ErrInvalidName is returned when a device name is empty or too long.
	ErrInvalidName = errors.New("device: invalid name")
)
