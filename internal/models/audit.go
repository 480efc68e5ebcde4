package models

import "time"

// AuditLog records mutating API calls for diagnostics.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	RequestID string `gorm:"size:64;index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Action    string `gorm:"size:2048"` // method + path + trimmed request body
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
