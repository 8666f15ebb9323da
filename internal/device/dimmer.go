package device

// Dimmer is a device that provides variable lighting.
type Dimmer struct {
	meta
	power      Power
	brightness int
}

// NewDimmer creates a dimmer in the off state at zero brightness.
func NewDimmer(id, name string) *Dimmer {
	return &Dimmer{
		meta:  newMeta(id, name, TypeDimmer),
		power: PowerOff,
	}
}

// State returns the current dimmer state.
func (d *Dimmer) State() State {
	return State{
		"power":      d.power,
		"brightness": d.brightness,
	}
}

// Apply applies a DimmerUpdate.
//
// Power and brightness interlock: turning off zeroes brightness, and a valid
// brightness above zero forces power on. An out-of-range brightness is
// ignored and does not count as applied.
func (d *Dimmer) Apply(u Update) bool {
	upd, ok := u.(DimmerUpdate)
	if !ok {
		return false
	}

	applied := false

	if upd.Power != nil {
		d.power = *upd.Power
		if d.power == PowerOff {
			d.brightness = 0
		}
		applied = true
	}

	if upd.Brightness != nil {
		if b := *upd.Brightness; b >= MinBrightness && b <= MaxBrightness {
			d.brightness = b
			if b > 0 {
				d.power = PowerOn
			}
			applied = true
		}
	}

	return applied
}

// Snapshot returns the full serialisable view of the dimmer.
func (d *Dimmer) Snapshot() Snapshot {
	return d.meta.snapshot(d.State())
}
