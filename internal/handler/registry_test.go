package handler

import (
	"net/http"
	"testing"

	"github.com/Dev-Pakorn/CKLab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetDefaults(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/registry", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)

	zones := data["zones"].([]interface{})
	assert.Len(t, zones, 3)
	assert.NotEmpty(t, data["softwareList"])
}

func TestRegistryZoneLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/registry/zones", models.Zone{ID: "D", SeatCount: 12})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData(t, w)["zones"].([]interface{}), 4)

	w = env.do(t, http.MethodDelete, "/api/registry/zones/D", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData(t, w)["zones"].([]interface{}), 3)

	w = env.do(t, http.MethodDelete, "/api/registry/zones/D", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/registry/zones", models.Zone{ID: "", SeatCount: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistryRemoveZoneWithActiveSessions(t *testing.T) {
	env := newTestEnv(t)
	env.seedSession(t, models.Session{Name: "Somchai", ExternalID: "1", DeskID: "C-05"})

	// removal is permitted; the orphaned desk just stops resolving
	w := env.do(t, http.MethodDelete, "/api/registry/zones/C", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/monitor/desks", nil)
	desks := decodeData(t, w)["desks"].([]interface{})
	assert.Len(t, desks, 40)
	for _, d := range desks {
		assert.NotEqual(t, "occupied", d.(map[string]interface{})["status"])
	}
}

func TestRegistryDeskOverrideAffectsResolver(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/registry/desks/A-1",
		models.DeskOverride{Status: models.DeskMaintenance})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/monitor/desks", nil)
	desks := decodeData(t, w)["desks"].([]interface{})
	first := desks[0].(map[string]interface{})
	assert.Equal(t, "A-01", first["deskId"])
	assert.Equal(t, models.DeskMaintenance, first["status"])

	w = env.do(t, http.MethodPut, "/api/registry/desks/A-01",
		models.DeskOverride{Status: "broken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
