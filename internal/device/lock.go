package device

// Lock is a device that can be locked and unlocked, optionally guarded by a
// stored pin.
type Lock struct {
	meta
	state LockState
	pin   string
	armed bool
}

// NewLock creates a lock in the locked, armed state. An empty pin falls back
// to DefaultPIN.
func NewLock(id, name, pin string) *Lock {
	if pin == "" {
		pin = DefaultPIN
	}
	return &Lock{
		meta:  newMeta(id, name, TypeLock),
		state: Locked,
		pin:   pin,
		armed: true,
	}
}

// State returns the current lock state. The pin is never exposed.
func (l *Lock) State() State {
	return State{
		"state":    l.state,
		"is_armed": l.armed,
	}
}

// Apply applies a LockUpdate. The three fields are independent; the pin is
// stored verbatim.
func (l *Lock) Apply(u Update) bool {
	upd, ok := u.(LockUpdate)
	if !ok {
		return false
	}

	applied := false

	if upd.State != nil {
		l.state = *upd.State
		applied = true
	}
	if upd.PIN != nil {
		l.pin = *upd.PIN
		applied = true
	}
	if upd.Armed != nil {
		l.armed = *upd.Armed
		applied = true
	}

	return applied
}

// UnlockWithPIN unlocks the lock iff candidate matches the stored pin.
// A mismatch leaves the lock untouched. This is the only access-control
// check in the system.
func (l *Lock) UnlockWithPIN(candidate string) bool {
	if candidate != l.pin {
		return false
	}
	l.state = Unlocked
	return true
}

// Snapshot returns the full serialisable view of the lock.
func (l *Lock) Snapshot() Snapshot {
	return l.meta.snapshot(l.State())
}
