package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSVEmptyLogIsHeaderOnly(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/export/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, monitorCSVHeader+"\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
}

func TestExportCSVRowFormat(t *testing.T) {
	env := newTestEnv(t)
	in := time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)
	out := in.Add(90 * time.Minute)
	env.seedSession(t, models.Session{
		Name: "Somchai Dee", ExternalID: "65114440", Category: models.CategoryStudent,
		Organization: "Science", YearLevel: "2", DeskID: "A-01",
		Purpose: "AI: Claude Pro", CheckIn: in, CheckOut: &out,
		Status: models.StatusCompleted,
	})

	w := env.do(t, http.MethodGet, "/api/export/csv", nil)
	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, monitorCSVHeader, lines[0])
	assert.Equal(t,
		"2026-08-29,09:00,10:30,Somchai Dee,student,65114440,Science,2,A-01,AI: Claude Pro,completed",
		lines[1])
}

func TestExportReportCSVFiltersPeriod(t *testing.T) {
	env := newTestEnv(t)
	env.seedSession(t, models.Session{Name: "Today", ExternalID: "1", DeskID: "A-01"})
	env.seedSession(t, models.Session{Name: "LastWeek", ExternalID: "2", DeskID: "A-02",
		CheckIn: time.Now().AddDate(0, 0, -7)})

	today := time.Now().Format("2006-01-02")
	w := env.do(t, http.MethodGet, "/api/export/report.csv?type=daily&date="+today, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Today")
	assert.NotContains(t, body, "LastWeek")
}

func TestReportEndpoint(t *testing.T) {
	env := newTestEnv(t)
	in := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 9, 0, 0, 0, time.Local)
	short := in.Add(45 * time.Minute)
	long := in.Add(90 * time.Minute)
	env.seedSession(t, models.Session{Name: "Long", ExternalID: "1", DeskID: "A-01",
		Category: models.CategoryStudent, Purpose: "Com",
		CheckIn: in, CheckOut: &long, Status: models.StatusCompleted})
	env.seedSession(t, models.Session{Name: "Short", ExternalID: "2", DeskID: "A-02",
		Category: models.CategoryStudent, Purpose: "AI: ChatGPT+",
		CheckIn: in, CheckOut: &short, Status: models.StatusCompleted})

	w := env.do(t, http.MethodGet, "/api/report?type=daily", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rep := decodeData(t, w)["report"].(map[string]interface{})

	assert.Equal(t, float64(2), rep["total"])
	assert.Equal(t, float64(1), rep["aiUse"])
	assert.Equal(t, float64(1), rep["generalUse"])
	assert.Equal(t, "09:00", rep["peak"])

	longest := rep["longest"].(map[string]interface{})
	assert.Equal(t, "Long", longest["name"])
	assert.Equal(t, float64(90), longest["minutes"])
}

func TestReportRejectsBadParams(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/report?type=weekly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/report?type=daily&date=%s", "29-08-2026"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
