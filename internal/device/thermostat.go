package device

// Thermostat is a device that controls temperature.
type Thermostat struct {
	meta
	currentTemp float64
	targetTemp  float64
	mode        Mode
	running     bool
}

// Thermostat defaults.
const defaultTemp = 72.0

// NewThermostat creates a thermostat at 72°F in heat mode, not running.
func NewThermostat(id, name string) *Thermostat {
	return &Thermostat{
		meta:        newMeta(id, name, TypeThermostat),
		currentTemp: defaultTemp,
		targetTemp:  defaultTemp,
		mode:        ModeHeat,
	}
}

// State returns the current thermostat state.
func (t *Thermostat) State() State {
	return State{
		"current_temperature": t.currentTemp,
		"target_temperature":  t.targetTemp,
		"mode":                t.mode,
		"is_running":          t.running,
	}
}

// Apply applies a ThermostatUpdate.
//
// A target temperature outside [50,90] is ignored and does not count as
// applied. Setting the mode to off stops the unit; any other mode starts it.
func (t *Thermostat) Apply(u Update) bool {
	upd, ok := u.(ThermostatUpdate)
	if !ok {
		return false
	}

	applied := false

	if upd.TargetTemp != nil {
		if temp := *upd.TargetTemp; temp >= MinTargetTemp && temp <= MaxTargetTemp {
			t.targetTemp = temp
			applied = true
		}
	}

	if upd.Mode != nil {
		t.mode = *upd.Mode
		t.running = t.mode != ModeOff
		applied = true
	}

	return applied
}

// SetCurrentTemperature records a sensor reading. The current temperature is
// read-only through Apply; this is its only write path.
func (t *Thermostat) SetCurrentTemperature(temp float64) {
	t.currentTemp = temp
}

// CurrentTemperature returns the last recorded sensor reading.
func (t *Thermostat) CurrentTemperature() float64 {
	return t.currentTemp
}

// Snapshot returns the full serialisable view of the thermostat.
func (t *Thermostat) Snapshot() Snapshot {
	return t.meta.snapshot(t.State())
}
