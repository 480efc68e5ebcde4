package occupancy

import (
	"testing"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var filterNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

func sampleLog() []models.SessionRecord {
	return []models.SessionRecord{
		{ID: 1, Name: "Somchai Dee", ExternalID: "65114440", Category: models.CategoryStudent,
			Organization: "Science", YearLevel: "2", DeskID: "A-01", Purpose: "Com",
			CheckIn: "10:30", CheckOut: "-", Date: "2026-08-29", Status: models.StatusActive},
		{ID: 2, Name: "Pranee Kaew", ExternalID: "65220011", Category: models.CategoryStudent,
			Organization: "Engineering", YearLevel: "4", DeskID: "B-03", Purpose: "AI: Claude Pro",
			CheckIn: "09:15", CheckOut: "11:00", Date: "2026-08-29", Status: models.StatusCompleted},
		{ID: 3, Name: "Dr. Anan", ExternalID: "T-5521", Category: models.CategoryTeacher,
			Organization: "Science", YearLevel: "-", DeskID: "a-7", Purpose: "Com",
			CheckIn: "10:30", CheckOut: "-", Date: "2026-08-29", Status: models.StatusActive},
		{ID: 4, Name: "Guest Visitor", ExternalID: "0812345678", Category: models.CategoryGuest,
			Organization: "General", YearLevel: "", DeskID: "C-10", Purpose: "AI: ChatGPT+",
			CheckIn: "14:00", CheckOut: "15:30", Date: "2026-08-28", Status: models.StatusCompleted},
	}
}

func ids(records []models.SessionRecord) []uint {
	out := make([]uint, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterZeroValuePassesEverything(t *testing.T) {
	got := Apply(sampleLog(), Filter{}, SortKeyDate, SortAsc, filterNow)
	assert.Len(t, got, 4)
}

func TestFilterDateScopeToday(t *testing.T) {
	got := Apply(sampleLog(), Filter{DateScope: DateScopeToday}, SortKeyCheckIn, SortAsc, filterNow)
	assert.Equal(t, []uint{2, 1, 3}, ids(got))
}

func TestFilterCategory(t *testing.T) {
	got := Apply(sampleLog(), Filter{Category: models.CategoryTeacher}, "", "", filterNow)
	assert.Equal(t, []uint{3}, ids(got))
}

func TestFilterYearOther(t *testing.T) {
	// "other" selects year levels outside 1..4, blank included
	got := Apply(sampleLog(), Filter{YearLevel: YearOther}, SortKeyCheckIn, SortAsc, filterNow)
	assert.Equal(t, []uint{3, 4}, ids(got))
}

func TestFilterZonePrefixCaseInsensitive(t *testing.T) {
	got := Apply(sampleLog(), Filter{ZonePrefix: "a"}, SortKeyCheckIn, SortAsc, filterNow)
	assert.Equal(t, []uint{1, 3}, ids(got))
}

func TestFilterSearchNameAndID(t *testing.T) {
	byName := Apply(sampleLog(), Filter{Search: "pranee"}, "", "", filterNow)
	assert.Equal(t, []uint{2}, ids(byName))

	byID := Apply(sampleLog(), Filter{Search: "t-55"}, "", "", filterNow)
	assert.Equal(t, []uint{3}, ids(byID))
}

func TestFilterCompositionOrderIndependent(t *testing.T) {
	// AND of independent predicates: one combined pass equals any
	// sequence of single-predicate passes
	combined := Filter{Category: models.CategoryStudent, Status: models.StatusCompleted}
	direct := Apply(sampleLog(), combined, SortKeyCheckIn, SortAsc, filterNow)

	step1 := Apply(sampleLog(), Filter{Status: models.StatusCompleted}, SortKeyCheckIn, SortAsc, filterNow)
	step2 := Apply(step1, Filter{Category: models.CategoryStudent}, SortKeyCheckIn, SortAsc, filterNow)
	assert.Equal(t, ids(direct), ids(step2))

	step1 = Apply(sampleLog(), Filter{Category: models.CategoryStudent}, SortKeyCheckIn, SortAsc, filterNow)
	step2 = Apply(step1, Filter{Status: models.StatusCompleted}, SortKeyCheckIn, SortAsc, filterNow)
	assert.Equal(t, ids(direct), ids(step2))
}

func TestSortDefaultIsCheckInDescending(t *testing.T) {
	got := Apply(sampleLog(), Filter{}, "", "", filterNow)
	require.Len(t, got, 4)
	assert.Equal(t, "14:00", got[0].CheckIn)
	assert.Equal(t, "09:15", got[3].CheckIn)
}

func TestSortIsStable(t *testing.T) {
	// sessions 1 and 3 share the 10:30 check-in; log order survives
	got := Apply(sampleLog(), Filter{}, SortKeyCheckIn, SortAsc, filterNow)
	assert.Equal(t, []uint{2, 1, 3, 4}, ids(got))
}

func TestSortYearNumericBothDirections(t *testing.T) {
	asc := Apply(sampleLog(), Filter{}, SortKeyYear, SortAsc, filterNow)
	// non-numeric years compare as 0 and keep log order among themselves
	assert.Equal(t, []uint{3, 4, 1, 2}, ids(asc))

	desc := Apply(sampleLog(), Filter{}, SortKeyYear, SortDesc, filterNow)
	assert.Equal(t, []uint{2, 1, 3, 4}, ids(desc))
}

func TestSortByName(t *testing.T) {
	got := Apply(sampleLog(), Filter{}, SortKeyName, SortAsc, filterNow)
	assert.Equal(t, []uint{3, 4, 2, 1}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	log := sampleLog()
	Apply(log, Filter{}, SortKeyName, SortAsc, filterNow)
	assert.Equal(t, []uint{1, 2, 3, 4}, ids(log))
}
