package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"
	"github.com/Dev-Pakorn/CKLab/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionHandler owns the session log endpoints: the raw log feed,
// check-in and checkout.
type SessionHandler struct {
	DB      *gorm.DB
	Monitor *MonitorHandler
}

func NewSessionHandler(db *gorm.DB, monitor *MonitorHandler) *SessionHandler {
	return &SessionHandler{DB: db, Monitor: monitor}
}

type checkInReq struct {
	Name         string `json:"name"`
	ExternalID   string `json:"stdId"`
	Organization string `json:"faculty"`
	YearLevel    string `json:"year"`
	Category     string `json:"type"`
	DeskID       string `json:"desk"`
	Purpose      string `json:"purpose"`
}

// ListLogs returns the full session log, newest check-in first, as a
// bare array: this is the collaborator feed that monitors poll, so the
// shape stays a plain snapshot rather than the API envelope.
func (h *SessionHandler) ListLogs(c *gin.Context) {
	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	c.JSON(http.StatusOK, records)
}

// CheckIn creates a new active session. Required fields are rejected
// before anything is written; nothing is partially submitted.
func (h *SessionHandler) CheckIn(c *gin.Context) {
	var req checkInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.ExternalID = strings.TrimSpace(req.ExternalID)
	req.DeskID = strings.TrimSpace(req.DeskID)
	if req.Name == "" || req.ExternalID == "" || req.DeskID == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, stdId and desk are required")
		return
	}
	if req.Category == "" {
		req.Category = models.CategoryGuest
	}
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown category")
		return
	}
	if req.Purpose == "" {
		req.Purpose = models.PurposeGeneral
	}

	session := models.Session{
		Name:         req.Name,
		ExternalID:   req.ExternalID,
		Category:     req.Category,
		Organization: req.Organization,
		YearLevel:    req.YearLevel,
		DeskID:       req.DeskID,
		Purpose:      req.Purpose,
		CheckIn:      time.Now(),
		Status:       models.StatusActive,
	}
	if err := h.DB.Create(&session).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "check-in failed")
		return
	}

	h.Monitor.Refresh()
	util.Success(c, util.Response{
		"id":   session.ID,
		"time": session.CheckIn.Format("15:04"),
	})
}

// CheckOut completes a session. Completed sessions stay completed;
// there is no way back to active.
func (h *SessionHandler) CheckOut(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid session id")
		return
	}

	var session models.Session
	if err := h.DB.First(&session, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "session not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if session.Status != models.StatusCompleted {
		now := time.Now()
		session.Status = models.StatusCompleted
		session.CheckOut = &now
		if err := h.DB.Save(&session).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "checkout failed")
			return
		}
	}

	h.Monitor.Refresh()
	util.Success(c, util.Response{
		"id":     session.ID,
		"status": session.Status,
	})
}

// fetchSessions loads the full log in display order: latest check-in
// first. The resolver's "first match in log order" rule is defined
// over this order.
func fetchSessions(db *gorm.DB) ([]models.Session, error) {
	var sessions []models.Session
	err := db.Order("check_in DESC, id DESC").Find(&sessions).Error
	return sessions, err
}

func fetchRecords(db *gorm.DB) ([]models.SessionRecord, error) {
	sessions, err := fetchSessions(db)
	if err != nil {
		return nil, err
	}
	records := make([]models.SessionRecord, 0, len(sessions))
	for i := range sessions {
		records = append(records, sessions[i].Record())
	}
	return records, nil
}
