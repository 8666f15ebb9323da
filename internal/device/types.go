package device

import "strings"

// Type identifies a device variant.
type Type string

// Device variant constants.
const (
	TypeSwitch     Type = "switch"
	TypeDimmer     Type = "dimmer"
	TypeLock       Type = "lock"
	TypeThermostat Type = "thermostat"
)

// AllTypes returns all valid device type values.
func AllTypes() []Type {
	return []Type{TypeSwitch, TypeDimmer, TypeLock, TypeThermostat}
}

// ParseType parses a device type string case-insensitively.
// Returns ErrInvalidType for unrecognised values.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TypeSwitch):
		return TypeSwitch, nil
	case string(TypeDimmer):
		return TypeDimmer, nil
	case string(TypeLock):
		return TypeLock, nil
	case string(TypeThermostat):
		return TypeThermostat, nil
	}
	return "", ErrInvalidType
}

// Power is the on/off state of switches and dimmers.
type Power string

// Power constants.
const (
	PowerOn  Power = "on"
	PowerOff Power = "off"
)

// ParsePower parses a power value case-insensitively.
func ParsePower(s string) (Power, bool) {
	switch strings.ToLower(s) {
	case string(PowerOn):
		return PowerOn, true
	case string(PowerOff):
		return PowerOff, true
	}
	return "", false
}

// LockState is the locked/unlocked state of a lock.
type LockState string

// LockState constants.
const (
	Locked   LockState = "locked"
	Unlocked LockState = "unlocked"
)

// ParseLockState parses a lock state value case-insensitively.
func ParseLockState(s string) (LockState, bool) {
	switch strings.ToLower(s) {
	case string(Locked):
		return Locked, true
	case string(Unlocked):
		return Unlocked, true
	}
	return "", false
}

// Mode is the operating mode of a thermostat.
type Mode string

// Mode constants.
const (
	ModeHeat Mode = "heat"
	ModeCool Mode = "cool"
	ModeAuto Mode = "auto"
	ModeOff  Mode = "off"
)

// ParseMode parses a thermostat mode case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case string(ModeHeat):
		return ModeHeat, true
	case string(ModeCool):
		return ModeCool, true
	case string(ModeAuto):
		return ModeAuto, true
	case string(ModeOff):
		return ModeOff, true
	}
	return "", false
}

// Thermostat target temperature bounds (degrees Fahrenheit).
const (
	MinTargetTemp = 50.0
	MaxTargetTemp = 90.0
)

// Dimmer brightness bounds (percent).
const (
	MinBrightness = 0
	MaxBrightness = 100
)

// DefaultPIN is the pin assigned to locks created without one.
const DefaultPIN = "0000"
