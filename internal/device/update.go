package device

// Update is the sealed interface over per-variant update structs.
//
// Each variant recognises exactly one update kind; applying any other kind is
// a no-op. Fields are pointers so that absent fields are distinguishable from
// zero values — nil means "leave unchanged".
type Update interface {
	isUpdate()
}

// SwitchUpdate modifies a Switch.
type SwitchUpdate struct {
	Power *Power
}

// DimmerUpdate modifies a Dimmer.
//
// Setting Power to off zeroes brightness. A valid Brightness above zero
// forces power on. Brightness outside [0,100] is ignored.
type DimmerUpdate struct {
	Power      *Power
	Brightness *int
}

// LockUpdate modifies a Lock. Any combination of the three fields may be set
// independently; the pin is stored verbatim with no format validation.
type LockUpdate struct {
	State *LockState
	PIN   *string
	Armed *bool
}

// ThermostatUpdate modifies a Thermostat.
//
// TargetTemp outside [50,90] is ignored. Setting Mode to off stops the unit;
// any other mode starts it.
type ThermostatUpdate struct {
	TargetTemp *float64
	Mode       *Mode
}

func (SwitchUpdate) isUpdate()     {}
func (DimmerUpdate) isUpdate()     {}
func (LockUpdate) isUpdate()       {}
func (ThermostatUpdate) isUpdate() {}
