package occupancy

import (
	"fmt"
	"strconv"
	"strings"
)

// CanonicalDeskID builds the canonical desk id for a zone and seat
// index: upper-case zone label, dash, seat index zero-padded to two
// digits (e.g. "A-01").
func CanonicalDeskID(zoneID string, seat int) string {
	return fmt.Sprintf("%s-%02d", strings.ToUpper(zoneID), seat)
}

// NormalizeDeskID maps a stored desk id to its canonical form. Early
// check-in builds wrote unpadded seat numbers ("A-1"), so both padded
// and legacy ids must compare equal; normalizing both sides before any
// lookup is the compatibility rule that keeps old records resolvable.
// Ids that do not look like <zone>-<number> are returned unchanged.
func NormalizeDeskID(id string) string {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return id
	}
	seat, err := strconv.Atoi(id[i+1:])
	if err != nil || seat < 0 {
		return id
	}
	return CanonicalDeskID(id[:i], seat)
}
