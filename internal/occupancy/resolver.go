package occupancy

import (
	"github.com/Dev-Pakorn/CKLab/internal/models"
)

// StatusOccupied is the effective status of a desk with an active
// session; the remaining statuses are the override values from models.
const StatusOccupied = "occupied"

// ResolvedDesk is the derived, never-persisted display state of one
// desk. An occupant always wins over a stale maintenance or reserved
// override.
type ResolvedDesk struct {
	DeskID   string                `json:"deskId"`
	Occupant *models.SessionRecord `json:"occupant,omitempty"`
	Status   string                `json:"status"`
}

// Resolve maps every desk implied by the registry to at most one
// active session. It is a pure function of (records, registry):
// a registry with zero zones yields an empty desk list, and duplicate
// active sessions on one desk resolve to the first match in log order.
func Resolve(records []models.SessionRecord, reg models.Registry) []ResolvedDesk {
	occupants := make(map[string]*models.SessionRecord, len(records))
	for i := range records {
		r := &records[i]
		if !r.Active() {
			continue
		}
		key := NormalizeDeskID(r.DeskID)
		if _, taken := occupants[key]; !taken {
			occupants[key] = r
		}
	}

	desks := make([]ResolvedDesk, 0, reg.TotalSeats())
	for _, zone := range reg.Zones {
		for seat := 1; seat <= zone.SeatCount; seat++ {
			deskID := CanonicalDeskID(zone.ID, seat)
			desk := ResolvedDesk{DeskID: deskID, Status: models.DeskAvailable}
			if occ, ok := occupants[deskID]; ok {
				desk.Occupant = occ
				desk.Status = StatusOccupied
			} else if ov, ok := reg.Overrides[deskID]; ok {
				switch ov.Status {
				case models.DeskMaintenance, models.DeskReserved:
					desk.Status = ov.Status
				}
			}
			desks = append(desks, desk)
		}
	}
	return desks
}
