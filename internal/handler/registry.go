package handler

import (
	"net/http"

	"github.com/Dev-Pakorn/CKLab/internal/models"
	"github.com/Dev-Pakorn/CKLab/internal/registry"
	"github.com/Dev-Pakorn/CKLab/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegistryHandler exposes zone, software catalog and desk override
// mutations. Every successful mutation refreshes the monitor snapshot
// instead of patching it in place.
type RegistryHandler struct {
	Store   *registry.Store
	Monitor *MonitorHandler
}

func NewRegistryHandler(store *registry.Store, monitor *MonitorHandler) *RegistryHandler {
	return &RegistryHandler{Store: store, Monitor: monitor}
}

// Get returns the full registry: zones, software catalog, overrides.
func (h *RegistryHandler) Get(c *gin.Context) {
	reg := h.Store.Snapshot()
	util.Success(c, util.Response{
		"zones":         reg.Zones,
		"softwareList":  reg.SoftwareList,
		"deskOverrides": reg.Overrides,
	})
}

// AddZone creates or replaces a zone.
func (h *RegistryHandler) AddZone(c *gin.Context) {
	var zone models.Zone
	if err := c.ShouldBindJSON(&zone); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.Store.AddZone(zone); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	h.Monitor.Refresh()
	util.Success(c, util.Response{"zones": h.Store.Snapshot().Zones})
}

// RemoveZone deletes a zone; desks of a removed zone simply stop being
// resolved, even if sessions are still active on them.
func (h *RegistryHandler) RemoveZone(c *gin.Context) {
	if err := h.Store.RemoveZone(c.Param("id")); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "zone not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "remove zone failed")
		}
		return
	}
	h.Monitor.Refresh()
	util.Success(c, util.Response{"zones": h.Store.Snapshot().Zones})
}

type softwareReq struct {
	Name string `json:"name"`
}

// AddSoftware appends a software catalog entry.
func (h *RegistryHandler) AddSoftware(c *gin.Context) {
	var req softwareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.Store.AddSoftware(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	util.Success(c, util.Response{"softwareList": h.Store.Snapshot().SoftwareList})
}

// RemoveSoftware deletes a software catalog entry.
func (h *RegistryHandler) RemoveSoftware(c *gin.Context) {
	if err := h.Store.RemoveSoftware(c.Param("name")); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "software not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "remove software failed")
		}
		return
	}
	util.Success(c, util.Response{"softwareList": h.Store.Snapshot().SoftwareList})
}

// SetDeskOverride stores a maintenance/reserved override for one desk;
// status "available" clears it. Concurrent edits follow last write
// wins.
func (h *RegistryHandler) SetDeskOverride(c *gin.Context) {
	var override models.DeskOverride
	if err := c.ShouldBindJSON(&override); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.Store.SetDeskOverride(c.Param("id"), override); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	h.Monitor.Refresh()
	util.Success(c, util.Response{"deskOverrides": h.Store.Snapshot().Overrides})
}
