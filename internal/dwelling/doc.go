// Package dwelling models a physical location that can host an installed hub
// and tracks occupancy.
//
// A hub may be installed in at most one dwelling at a time; the hub's
// dwelling back-reference guards re-installation. As with pairing, the
// references held here are non-owning — the registry owns all entities.
package dwelling
