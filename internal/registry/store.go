// Package registry owns the desk/zone configuration lifecycle:
// loading at startup, persisting after every mutation, and handing
// immutable snapshots to the resolver, filter and report callers.
package registry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Dev-Pakorn/CKLab/internal/models"
	"github.com/Dev-Pakorn/CKLab/internal/occupancy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob keys in the config_entries table, one JSON document each.
const (
	keyZones     = "zones"
	keySoftware  = "software_list"
	keyOverrides = "desk_overrides"
)

// Defaults applied when the store has never been written.
var (
	defaultZones = []models.Zone{
		{ID: "A", SeatCount: 20},
		{ID: "B", SeatCount: 20},
		{ID: "C", SeatCount: 20},
	}
	defaultSoftware = []string{
		"ChatGPT+", "Claude Pro", "Perplexity Pro", "Midjourney Basic",
		"SciSpace Premium", "Grammarly Pro", "Botnoi VOICE", "Gramma Pro", "Canva Pro",
	}
)

// Store is the single owning component for the registry. Mutations
// persist first, then replace the in-memory snapshot; the snapshot is
// never patched in place.
type Store struct {
	db *gorm.DB

	mu  sync.RWMutex
	reg models.Registry
}

// Load reads the persisted registry, falling back to defaults for any
// missing blob. Malformed blobs also fall back rather than fail
// startup.
func Load(db *gorm.DB) (*Store, error) {
	s := &Store{db: db}
	reg := models.Registry{
		Zones:        append([]models.Zone(nil), defaultZones...),
		SoftwareList: append([]string(nil), defaultSoftware...),
		Overrides:    make(map[string]models.DeskOverride),
	}

	var entries []models.ConfigEntry
	if err := db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	for _, e := range entries {
		switch e.Key {
		case keyZones:
			var zones []models.Zone
			if json.Unmarshal([]byte(e.Value), &zones) == nil && len(zones) > 0 {
				reg.Zones = zones
			}
		case keySoftware:
			var list []string
			if json.Unmarshal([]byte(e.Value), &list) == nil && len(list) > 0 {
				reg.SoftwareList = list
			}
		case keyOverrides:
			var ov map[string]models.DeskOverride
			if json.Unmarshal([]byte(e.Value), &ov) == nil && ov != nil {
				reg.Overrides = ov
			}
		}
	}

	s.reg = reg
	return s, nil
}

// Snapshot returns a deep copy of the current registry.
func (s *Store) Snapshot() models.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := models.Registry{
		Zones:        append([]models.Zone(nil), s.reg.Zones...),
		SoftwareList: append([]string(nil), s.reg.SoftwareList...),
		Overrides:    make(map[string]models.DeskOverride, len(s.reg.Overrides)),
	}
	for k, v := range s.reg.Overrides {
		v.InstalledSoftware = append([]string(nil), v.InstalledSoftware...)
		out.Overrides[k] = v
	}
	return out
}

// AddZone adds or replaces a zone by id (case-insensitive).
func (s *Store) AddZone(zone models.Zone) error {
	if zone.ID == "" || zone.SeatCount <= 0 {
		return fmt.Errorf("zone needs an id and a positive seat count")
	}
	zone.ID = strings.ToUpper(zone.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	zones := append([]models.Zone(nil), s.reg.Zones...)
	replaced := false
	for i, z := range zones {
		if strings.EqualFold(z.ID, zone.ID) {
			zones[i] = zone
			replaced = true
			break
		}
	}
	if !replaced {
		zones = append(zones, zone)
	}

	if err := s.persist(keyZones, zones); err != nil {
		return err
	}
	s.reg.Zones = zones
	return nil
}

// RemoveZone deletes a zone. Removing a zone that still has active
// sessions is permitted; occupancy for its desks simply stops being
// resolvable.
func (s *Store) RemoveZone(zoneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	zones := make([]models.Zone, 0, len(s.reg.Zones))
	for _, z := range s.reg.Zones {
		if !strings.EqualFold(z.ID, zoneID) {
			zones = append(zones, z)
		}
	}
	if len(zones) == len(s.reg.Zones) {
		return gorm.ErrRecordNotFound
	}

	if err := s.persist(keyZones, zones); err != nil {
		return err
	}
	s.reg.Zones = zones
	return nil
}

// AddSoftware appends a catalog entry; duplicates are ignored.
func (s *Store) AddSoftware(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("software name is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reg.SoftwareList {
		if existing == name {
			return nil
		}
	}
	list := append(append([]string(nil), s.reg.SoftwareList...), name)

	if err := s.persist(keySoftware, list); err != nil {
		return err
	}
	s.reg.SoftwareList = list
	return nil
}

// RemoveSoftware deletes a catalog entry by name.
func (s *Store) RemoveSoftware(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]string, 0, len(s.reg.SoftwareList))
	for _, existing := range s.reg.SoftwareList {
		if existing != name {
			list = append(list, existing)
		}
	}
	if len(list) == len(s.reg.SoftwareList) {
		return gorm.ErrRecordNotFound
	}

	if err := s.persist(keySoftware, list); err != nil {
		return err
	}
	s.reg.SoftwareList = list
	return nil
}

// SetDeskOverride stores an override under the canonical desk id.
// Setting status "available" clears the override (absence means
// available). Last write wins when two admins edit the same desk.
func (s *Store) SetDeskOverride(deskID string, override models.DeskOverride) error {
	deskID = occupancy.NormalizeDeskID(deskID)
	switch override.Status {
	case models.DeskAvailable, models.DeskMaintenance, models.DeskReserved:
	default:
		return fmt.Errorf("unknown desk status %q", override.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	overrides := make(map[string]models.DeskOverride, len(s.reg.Overrides)+1)
	for k, v := range s.reg.Overrides {
		overrides[k] = v
	}
	if override.Status == models.DeskAvailable {
		delete(overrides, deskID)
	} else {
		overrides[deskID] = override
	}

	if err := s.persist(keyOverrides, overrides); err != nil {
		return err
	}
	s.reg.Overrides = overrides
	return nil
}

func (s *Store) persist(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	entry := models.ConfigEntry{Key: key, Value: string(raw)}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
