// Package device defines the device variants managed by Hearth Core.
//
// A device is a controllable unit in a dwelling: a switch, dimmer, lock, or
// thermostat. The variant set is closed — each variant is a concrete struct
// implementing the Device interface, and behaviour is dispatched through that
// interface rather than through runtime type tags.
//
// # Key Types
//
//   - Device: the sealed interface all variants implement
//   - Switch, Dimmer, Lock, Thermostat: the variant implementations
//   - Update: the sealed interface over per-variant update structs
//   - Snapshot: the serialisable view combining identity, pairing and state
//
// # State Modification
//
// Each variant accepts its own typed update struct (SwitchUpdate,
// DimmerUpdate, LockUpdate, ThermostatUpdate) with optional pointer fields.
// Apply returns true iff at least one provided field was validly applied;
// out-of-range values are silently ignored and never abort the remaining
// fields. An update struct of the wrong kind is a no-op returning false.
//
// # Pairing
//
// Paired() and HubID() describe hub membership. The invariant
// Paired() == (HubID() set) is maintained exclusively by the hub's pair and
// remove operations through Bind and Release; no other caller may touch
// pairing state.
package device
