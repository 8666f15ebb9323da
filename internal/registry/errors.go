package registry

import "errors"

// Domain errors for the registry package, checked with errors.Is.
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("registry: device not found")

	// ErrDevicePaired is returned when deleting a device that is still
	// paired; pairing must be undone first.
	ErrDevicePaired = errors.New("registry: device is paired")

	// ErrNoHub is returned when an operation requires the main hub and none
	// has been created.
	ErrNoHub = errors.New("registry: no hub exists")

	// ErrDwellingNotFound is returned when a dwelling ID does not exist.
	ErrDwellingNotFound = errors.New("registry: dwelling not found")

	// ErrNotLock is returned when a lock-only operation targets another
	// device variant.
	ErrNotLock = errors.New("registry: device is not a lock")

	// ErrNotThermostat is returned when a thermostat-only operation targets
	// another device variant.
	ErrNotThermostat = errors.New("registry: device is not a thermostat")
)
