package hub

import "errors"

// Domain errors for the hub package, checked with errors.Is.
var (
	// ErrAlreadyPaired is returned when pairing a device that is already
	// owned by a hub.
	ErrAlreadyPaired = errors.New("hub: device already paired")

	// ErrNotPaired is returned when the device is not paired to this hub.
	ErrNotPaired = errors.New("hub: device not paired")
)
