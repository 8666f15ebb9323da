// Package hub implements the pairing hub at the centre of a Hearth
// installation.
//
// The hub owns the pairing relationship: it is the only component allowed to
// flip a device's pairing fields, and it guarantees a device belongs to at
// most one hub. The hub holds non-owning references — devices are owned by
// the registry, which also enforces that paired devices cannot be deleted.
//
// Device listings preserve pairing insertion order so that repeated calls
// within a run are stable.
package hub
