package models

import "time"

// Session categories.
const (
	CategoryStudent = "student"
	CategoryTeacher = "teacher"
	CategoryStaff   = "staff"
	CategoryGuest   = "guest"
)

// Session statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// PurposeGeneral marks plain computer use; AI sessions use "AI: <tool>".
const PurposeGeneral = "Com"

// CheckOutSentinel is rendered while a session is still active.
const CheckOutSentinel = "-"

// Session is one check-in-to-check-out occupancy record.
// It is created by check-in, completed by checkout, and never mutated
// or deleted otherwise.
type Session struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	ExternalID   string    `gorm:"size:20;not null;index"`
	Category     string    `gorm:"size:20;index"` // student / teacher / staff / guest
	Organization string    `gorm:"size:100"`
	YearLevel    string    `gorm:"size:10"` // "1".."4" or free text
	DeskID       string    `gorm:"size:10;index"`
	Purpose      string    `gorm:"size:50"` // "Com" or "AI: <tool>"
	CheckIn      time.Time `gorm:"index;not null"`
	CheckOut     *time.Time
	Status       string `gorm:"size:20;index;not null;default:active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionRecord is the wire shape of a session: clock values as HH:MM
// local strings, "-" while active, date as YYYY-MM-DD. The occupancy,
// filter and report engines all operate on this shape.
type SessionRecord struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ExternalID   string `json:"stdId"`
	Category     string `json:"type"`
	Organization string `json:"faculty"`
	YearLevel    string `json:"year"`
	DeskID       string `json:"desk"`
	Purpose      string `json:"purpose"`
	CheckIn      string `json:"checkIn"`
	CheckOut     string `json:"checkOut"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

// Record converts a stored session to its wire shape.
func (s *Session) Record() SessionRecord {
	out := CheckOutSentinel
	if s.CheckOut != nil {
		out = s.CheckOut.Format("15:04")
	}
	return SessionRecord{
		ID:           s.ID,
		Name:         s.Name,
		ExternalID:   s.ExternalID,
		Category:     s.Category,
		Organization: s.Organization,
		YearLevel:    s.YearLevel,
		DeskID:       s.DeskID,
		Purpose:      s.Purpose,
		CheckIn:      s.CheckIn.Format("15:04"),
		CheckOut:     out,
		Date:         s.CheckIn.Format("2006-01-02"),
		Status:       s.Status,
	}
}

// Active reports whether the record still occupies its desk.
func (r SessionRecord) Active() bool {
	return r.Status == StatusActive
}
