package device

// Switch is a device that can be turned on and off.
type Switch struct {
	meta
	power Power
}

// NewSwitch creates a switch in the off state.
func NewSwitch(id, name string) *Switch {
	return &Switch{
		meta:  newMeta(id, name, TypeSwitch),
		power: PowerOff,
	}
}

// State returns the current switch state.
func (s *Switch) State() State {
	return State{"power": s.power}
}

// Apply applies a SwitchUpdate.
func (s *Switch) Apply(u Update) bool {
	upd, ok := u.(SwitchUpdate)
	if !ok || upd.Power == nil {
		return false
	}
	s.power = *upd.Power
	return true
}

// Snapshot returns the full serialisable view of the switch.
func (s *Switch) Snapshot() Snapshot {
	return s.meta.snapshot(s.State())
}
