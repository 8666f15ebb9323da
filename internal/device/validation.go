package device

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const maxNameLength = 100

// GenerateID returns a new unique device identifier (UUID v4).
func GenerateID() string {
	return uuid.New().String()
}

// ValidateName checks that a device name is non-empty and within bounds.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// New constructs a device of the given type. The type string is matched
// case-insensitively. CreateOptions carries variant-specific construction
// parameters (currently only the lock pin).
func New(typ, id, name string, opts CreateOptions) (Device, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	parsed, err := ParseType(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}

	switch parsed {
	case TypeSwitch:
		return NewSwitch(id, name), nil
	case TypeDimmer:
		return NewDimmer(id, name), nil
	case TypeLock:
		return NewLock(id, name, opts.PIN), nil
	case TypeThermostat:
		return NewThermostat(id, name), nil
	}
	// Unreachable: ParseType covers every variant.
	return nil, fmt.Errorf("%w: %q", ErrInvalidType, typ)
}

// CreateOptions carries type-specific construction parameters.
type CreateOptions struct {
	// PIN is the lock pin; ignored for other variants. Empty means DefaultPIN.
	PIN string
}
