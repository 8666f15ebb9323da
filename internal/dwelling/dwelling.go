package dwelling

import (
	"time"

	"github.com/calverly/hearth-core/internal/hub"
)

// Dwelling is a physical location hosting an installed hub. It is not safe
// for concurrent use on its own; the registry serialises all access.
type Dwelling struct {
	id        string
	name      string
	address   string
	createdAt time.Time
	occupied  bool

	// hubs maps hub ID to a non-owning reference.
	hubs map[string]*hub.Hub
}

// New creates an unoccupied dwelling with no installed hubs.
func New(id, name, address string) *Dwelling {
	return &Dwelling{
		id:        id,
		name:      name,
		address:   address,
		createdAt: time.Now().UTC(),
		hubs:      make(map[string]*hub.Hub),
	}
}

// ID returns the dwelling's unique identifier.
func (d *Dwelling) ID() string { return d.id }

// Name returns the dwelling's display name.
func (d *Dwelling) Name() string { return d.name }

// Address returns the dwelling's street address.
func (d *Dwelling) Address() string { return d.address }

// CreatedAt returns the creation timestamp.
func (d *Dwelling) CreatedAt() time.Time { return d.createdAt }

// Occupied reports the occupancy flag.
func (d *Dwelling) Occupied() bool { return d.occupied }

// SetOccupied sets the occupancy flag. No validation; freely mutable.
func (d *Dwelling) SetOccupied(occupied bool) { d.occupied = occupied }

// InstallHub installs a hub in this dwelling. It fails with ErrHubInstalled
// — and mutates nothing — when the hub is already installed anywhere,
// including here.
func (d *Dwelling) InstallHub(h *hub.Hub) error {
	if h.Installed() {
		return ErrHubInstalled
	}
	h.SetDwelling(d.id)
	d.hubs[h.ID()] = h
	return nil
}

// RemoveHub uninstalls a hub. It fails with ErrHubNotInstalled when the hub
// is not installed in this dwelling.
func (d *Dwelling) RemoveHub(hubID string) error {
	h, ok := d.hubs[hubID]
	if !ok {
		return ErrHubNotInstalled
	}
	h.ClearDwelling()
	delete(d.hubs, hubID)
	return nil
}

// HubCount returns the number of installed hubs.
func (d *Dwelling) HubCount() int { return len(d.hubs) }

// Summary is the serialisable view of a dwelling.
type Summary struct {
	DwellingID        string    `json:"dwelling_id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	CreatedAt         time.Time `json:"created_at"`
	Occupied          bool      `json:"is_occupied"`
	InstalledHubCount int       `json:"installed_hubs_count"`
}

// Summary returns the serialisable view of the dwelling.
func (d *Dwelling) Summary() Summary {
	return Summary{
		DwellingID:        d.id,
		Name:              d.name,
		Address:           d.address,
		CreatedAt:         d.createdAt,
		Occupied:          d.occupied,
		InstalledHubCount: len(d.hubs),
	}
}
