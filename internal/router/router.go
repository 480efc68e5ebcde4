package router

import (
	"github.com/Dev-Pakorn/CKLab/internal/config"
	"github.com/Dev-Pakorn/CKLab/internal/directory"
	"github.com/Dev-Pakorn/CKLab/internal/handler"
	"github.com/Dev-Pakorn/CKLab/internal/middleware"
	"github.com/Dev-Pakorn/CKLab/internal/registry"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the API route table. The monitor handler is
// returned too so main can hook it to the poll scheduler.
func SetupRouter(cfg *config.Config, db *gorm.DB, store *registry.Store) (*gin.Engine, *handler.MonitorHandler) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	api.Use(middleware.NoCache(), middleware.AuditMiddleware(db))

	monitorHandler := handler.NewMonitorHandler(db, store)
	sessionHandler := handler.NewSessionHandler(db, monitorHandler)
	api.GET("/logs", sessionHandler.ListLogs)
	api.POST("/checkin", sessionHandler.CheckIn)
	api.POST("/checkout/:id", sessionHandler.CheckOut)

	lookup := directory.New(cfg.Directory.BaseURL, cfg.Directory.Timeout())
	studentHandler := handler.NewStudentHandler(lookup)
	api.GET("/student-info/:id", studentHandler.Get)

	monitor := api.Group("/monitor")
	monitor.GET("/desks", monitorHandler.Desks)
	monitor.GET("/logs", monitorHandler.Logs)
	monitor.GET("/stats", monitorHandler.GetStats)
	monitor.GET("/snapshot", monitorHandler.GetSnapshot)
	monitor.POST("/hold", monitorHandler.SetHold)

	registryHandler := handler.NewRegistryHandler(store, monitorHandler)
	reg := api.Group("/registry")
	reg.GET("", registryHandler.Get)
	reg.POST("/zones", registryHandler.AddZone)
	reg.DELETE("/zones/:id", registryHandler.RemoveZone)
	reg.POST("/software", registryHandler.AddSoftware)
	reg.DELETE("/software/:name", registryHandler.RemoveSoftware)
	reg.PUT("/desks/:id", registryHandler.SetDeskOverride)

	reportHandler := handler.NewReportHandler(db)
	api.GET("/report", reportHandler.Get)
	api.GET("/export/csv", reportHandler.ExportCSV)
	api.GET("/export/report.csv", reportHandler.ExportReportCSV)
	api.GET("/export/xlsx", reportHandler.ExportXLSX)

	auditHandler := handler.NewAuditHandler(db)
	api.GET("/audit", auditHandler.List)

	return r, monitorHandler
}
