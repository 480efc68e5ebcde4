package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"
	"github.com/Dev-Pakorn/CKLab/internal/occupancy"
	"github.com/Dev-Pakorn/CKLab/internal/registry"
	"github.com/Dev-Pakorn/CKLab/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Stats summarize the monitor header counters.
type Stats struct {
	ActiveNow  int `json:"activeNow"`
	TodayTotal int `json:"todayTotal"`
	TotalSeats int `json:"totalSeats"`
	FreeSeats  int `json:"freeSeats"`
}

// Snapshot is the cached monitor state maintained by the poll loop.
type Snapshot struct {
	Desks       []occupancy.ResolvedDesk `json:"desks"`
	Stats       Stats                    `json:"stats"`
	RefreshedAt time.Time                `json:"refreshedAt"`
}

// MonitorHandler serves live occupancy and the polled snapshot. The
// snapshot refresh can be held off while an admin has an editing
// surface open; the hold is a display heuristic, not a lock.
type MonitorHandler struct {
	DB    *gorm.DB
	Store *registry.Store

	mu   sync.RWMutex
	snap Snapshot
	held bool
}

func NewMonitorHandler(db *gorm.DB, store *registry.Store) *MonitorHandler {
	return &MonitorHandler{DB: db, Store: store}
}

// Desks resolves current occupancy live from the log and registry.
func (h *MonitorHandler) Desks(c *gin.Context) {
	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	desks := occupancy.Resolve(records, h.Store.Snapshot())
	util.Success(c, util.Response{"desks": desks})
}

// Logs returns the filtered, sorted session table.
func (h *MonitorHandler) Logs(c *gin.Context) {
	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	filter := occupancy.Filter{
		DateScope:    c.DefaultQuery("time", occupancy.DateScopeToday),
		Category:     c.Query("type"),
		Organization: c.Query("faculty"),
		YearLevel:    c.Query("year"),
		ZonePrefix:   c.Query("zone"),
		Status:       c.DefaultQuery("status", models.StatusActive),
		Search:       c.Query("search"),
	}
	sortKey := c.DefaultQuery("sort", occupancy.SortKeyCheckIn)
	sortDir := c.DefaultQuery("dir", occupancy.SortDesc)

	rows := occupancy.Apply(records, filter, sortKey, sortDir, time.Now())
	util.Success(c, util.Response{
		"items": rows,
		"total": len(rows),
	})
}

// GetStats computes the monitor counters live.
func (h *MonitorHandler) GetStats(c *gin.Context) {
	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	util.Success(c, util.Response{"stats": computeStats(records, h.Store.Snapshot())})
}

// GetSnapshot serves the last polled snapshot without touching the
// database.
func (h *MonitorHandler) GetSnapshot(c *gin.Context) {
	h.mu.RLock()
	snap := h.snap
	h.mu.RUnlock()
	util.Success(c, util.Response{"snapshot": snap})
}

type holdReq struct {
	Held bool `json:"held"`
}

// SetHold suspends or resumes the snapshot refresh; the UI sets it
// while a modal or a non-empty search would be disrupted by updates.
func (h *MonitorHandler) SetHold(c *gin.Context) {
	var req holdReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	h.mu.Lock()
	h.held = req.Held
	h.mu.Unlock()
	util.Success(c, util.Response{"held": req.Held})
}

// RefreshAllowed is the scheduler's gate predicate.
func (h *MonitorHandler) RefreshAllowed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.held
}

// Refresh rebuilds the cached snapshot from a fresh log fetch. The new
// snapshot fully replaces the previous one; failures keep the old
// snapshot and the monitor just goes stale for a tick.
func (h *MonitorHandler) Refresh() {
	records, err := fetchRecords(h.DB)
	if err != nil {
		return
	}
	reg := h.Store.Snapshot()
	snap := Snapshot{
		Desks:       occupancy.Resolve(records, reg),
		Stats:       computeStats(records, reg),
		RefreshedAt: time.Now(),
	}

	h.mu.Lock()
	h.snap = snap
	h.mu.Unlock()
}

func computeStats(records []models.SessionRecord, reg models.Registry) Stats {
	today := time.Now().Format("2006-01-02")
	stats := Stats{TotalSeats: reg.TotalSeats()}
	for _, r := range records {
		if r.Date != today {
			continue
		}
		stats.TodayTotal++
		if r.Active() {
			stats.ActiveNow++
		}
	}
	stats.FreeSeats = stats.TotalSeats - stats.ActiveNow
	return stats
}
