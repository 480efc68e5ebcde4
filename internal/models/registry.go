package models

import "time"

// Desk override statuses. A desk without an override is available.
const (
	DeskAvailable   = "available"
	DeskMaintenance = "maintenance"
	DeskReserved    = "reserved"
)

// Zone is a named group of desks sharing a seat count. Zone ids match
// desk prefixes case-insensitively.
type Zone struct {
	ID        string `json:"id"`
	SeatCount int    `json:"count"`
}

// DeskOverride is an admin-set non-occupancy status for one desk,
// keyed by canonical desk id. Absence means available.
type DeskOverride struct {
	Status            string   `json:"status"`
	InstalledSoftware []string `json:"installedSoftware,omitempty"`
}

// Registry is the full desk/zone configuration handed to the resolver
// and report callers as an explicit parameter, never as package state.
type Registry struct {
	Zones        []Zone                  `json:"zones"`
	SoftwareList []string                `json:"softwareList"`
	Overrides    map[string]DeskOverride `json:"deskOverrides"`
}

// TotalSeats sums seat counts over all zones.
func (r Registry) TotalSeats() int {
	total := 0
	for _, z := range r.Zones {
		total += z.SeatCount
	}
	return total
}

// ConfigEntry is one key→JSON blob row backing the registry store.
type ConfigEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
