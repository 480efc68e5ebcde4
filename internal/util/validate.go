package util

import (
	"fmt"
	"time"
)

// ValidateDate checks a calendar date string (must be YYYY-MM-DD).
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateClock checks a local clock string (must be HH:MM).
func ValidateClock(clock string) error {
	if clock == "" {
		return fmt.Errorf("clock value is empty")
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return fmt.Errorf("invalid clock format: %w", err)
	}
	return nil
}

// ValidateCategory checks a session category against the known set.
func ValidateCategory(category string) error {
	switch category {
	case "student", "teacher", "staff", "guest":
		return nil
	}
	return fmt.Errorf("unknown category %q", category)
}
