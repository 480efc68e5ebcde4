package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"
	"github.com/Dev-Pakorn/CKLab/internal/registry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	monitor *MonitorHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "lab.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.ConfigEntry{}, &models.AuditLog{}))

	store, err := registry.Load(db)
	require.NoError(t, err)

	monitorHandler := NewMonitorHandler(db, store)
	sessionHandler := NewSessionHandler(db, monitorHandler)
	registryHandler := NewRegistryHandler(store, monitorHandler)
	reportHandler := NewReportHandler(db)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/logs", sessionHandler.ListLogs)
	api.POST("/checkin", sessionHandler.CheckIn)
	api.POST("/checkout/:id", sessionHandler.CheckOut)
	api.GET("/monitor/desks", monitorHandler.Desks)
	api.GET("/monitor/logs", monitorHandler.Logs)
	api.GET("/monitor/stats", monitorHandler.GetStats)
	api.GET("/monitor/snapshot", monitorHandler.GetSnapshot)
	api.POST("/monitor/hold", monitorHandler.SetHold)
	api.GET("/registry", registryHandler.Get)
	api.POST("/registry/zones", registryHandler.AddZone)
	api.DELETE("/registry/zones/:id", registryHandler.RemoveZone)
	api.PUT("/registry/desks/:id", registryHandler.SetDeskOverride)
	api.GET("/report", reportHandler.Get)
	api.GET("/export/csv", reportHandler.ExportCSV)
	api.GET("/export/report.csv", reportHandler.ExportReportCSV)

	return &testEnv{db: db, router: r, monitor: monitorHandler}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedSession(t *testing.T, s models.Session) models.Session {
	t.Helper()
	if s.CheckIn.IsZero() {
		s.CheckIn = time.Now()
	}
	if s.Status == "" {
		s.Status = models.StatusActive
	}
	require.NoError(t, e.db.Create(&s).Error)
	return s
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Zero(t, envelope.Code)
	return envelope.Data
}
