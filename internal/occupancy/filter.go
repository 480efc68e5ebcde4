package occupancy

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"
)

// Filter values; empty string or "all" means "no constraint" for every
// field, so a zero Filter passes everything.
const FilterAll = "all"

// DateScopeToday restricts to sessions dated today in local time.
const DateScopeToday = "today"

// YearOther selects records whose year level is not one of "1".."4"
// (blank included).
const YearOther = "other"

// Filter is a multi-predicate session filter; active predicates
// combine with logical AND.
type Filter struct {
	DateScope    string
	Category     string
	Organization string
	YearLevel    string
	ZonePrefix   string
	Status       string
	Search       string
}

// Sort keys accepted by Apply; they mirror the wire field names.
const (
	SortKeyCheckIn  = "checkIn"
	SortKeyCheckOut = "checkOut"
	SortKeyName     = "name"
	SortKeyCategory = "type"
	SortKeyID       = "stdId"
	SortKeyFaculty  = "faculty"
	SortKeyYear     = "year"
	SortKeyDesk     = "desk"
	SortKeyPurpose  = "purpose"
	SortKeyStatus   = "status"
	SortKeyDate     = "date"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

func unconstrained(v string) bool {
	return v == "" || v == FilterAll
}

// Match reports whether one record passes every active predicate.
// today is the current calendar date as YYYY-MM-DD.
func (f Filter) Match(r models.SessionRecord, today string) bool {
	if f.DateScope == DateScopeToday && r.Date != today {
		return false
	}
	if !unconstrained(f.Category) && r.Category != f.Category {
		return false
	}
	if !unconstrained(f.Organization) && r.Organization != f.Organization {
		return false
	}
	if !unconstrained(f.YearLevel) {
		if f.YearLevel == YearOther {
			if numericYear(r.YearLevel) {
				return false
			}
		} else if r.YearLevel != f.YearLevel {
			return false
		}
	}
	if !unconstrained(f.ZonePrefix) {
		if !strings.HasPrefix(strings.ToUpper(r.DeskID), strings.ToUpper(f.ZonePrefix)) {
			return false
		}
	}
	if !unconstrained(f.Status) && r.Status != f.Status {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.ExternalID), q) {
			return false
		}
	}
	return true
}

func numericYear(year string) bool {
	switch year {
	case "1", "2", "3", "4":
		return true
	}
	return false
}

// Apply filters records, then sorts the survivors by a single key.
// The sort is stable: records with equal keys keep their original log
// order. Defaults are check-in time descending. The year key is a
// numeric total order (non-numeric values compare as 0) with the
// direction applied uniformly.
func Apply(records []models.SessionRecord, f Filter, sortKey, sortDir string, now time.Time) []models.SessionRecord {
	today := now.Format("2006-01-02")
	out := make([]models.SessionRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r, today) {
			out = append(out, r)
		}
	}

	if sortKey == "" {
		sortKey = SortKeyCheckIn
		if sortDir == "" {
			sortDir = SortDesc
		}
	}
	asc := sortDir != SortDesc

	sort.SliceStable(out, func(i, j int) bool {
		if sortKey == SortKeyYear {
			a, b := yearValue(out[i].YearLevel), yearValue(out[j].YearLevel)
			if a == b {
				return false
			}
			if asc {
				return a < b
			}
			return a > b
		}
		a, b := sortValue(out[i], sortKey), sortValue(out[j], sortKey)
		if a == b {
			return false
		}
		if asc {
			return a < b
		}
		return a > b
	})
	return out
}

func yearValue(year string) int {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}

func sortValue(r models.SessionRecord, key string) string {
	switch key {
	case SortKeyCheckIn:
		return r.CheckIn
	case SortKeyCheckOut:
		return r.CheckOut
	case SortKeyName:
		return r.Name
	case SortKeyCategory:
		return r.Category
	case SortKeyID:
		return r.ExternalID
	case SortKeyFaculty:
		return r.Organization
	case SortKeyDesk:
		return r.DeskID
	case SortKeyPurpose:
		return r.Purpose
	case SortKeyStatus:
		return r.Status
	case SortKeyDate:
		return r.Date
	default:
		return r.CheckIn
	}
}
