// Package report buckets historical sessions into time-based
// histograms and derives usage statistics for the admin report view.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"
)

// Granularity selects the bucketing of a report.
type Granularity string

const (
	Daily   Granularity = "daily"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// AIGenericTool labels AI sessions whose purpose carries no tool name.
const AIGenericTool = "AI General"

var (
	hourLabels = []string{
		"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
		"14:00", "15:00", "16:00", "17:00", "18:00",
	}
	monthLabels = []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
)

// ToolCount is one entry of the AI tool breakdown.
type ToolCount struct {
	Tool  string `json:"tool"`
	Count int    `json:"count"`
}

// LongestSession identifies the single longest completed session of
// the reported period.
type LongestSession struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

// Report is the value object returned to the caller; rendering and
// charting are collaborator concerns.
type Report struct {
	Granularity Granularity     `json:"granularity"`
	Labels      []string        `json:"labels"`
	Counts      []int           `json:"counts"`
	Total       int             `json:"total"`
	Students    int             `json:"students"`
	GeneralUse  int             `json:"generalUse"`
	AIUse       int             `json:"aiUse"`
	AITools     []ToolCount     `json:"aiTools"`
	Longest     *LongestSession `json:"longest,omitempty"`
	Peak        string          `json:"peak"`
}

// Aggregate computes the report for one granularity and reference
// date. It is a pure function of its inputs; now supplies the end of
// the five-year window for yearly reports.
//
// Daily buckets cover check-ins from 08:00 to 18:59 only; sessions
// outside that range stay out of every bucket but still count toward
// the period totals.
func Aggregate(records []models.SessionRecord, g Granularity, ref time.Time, now time.Time) Report {
	rep := Report{Granularity: g}

	startYear := now.Year() - 4
	switch g {
	case Monthly:
		rep.Labels = append([]string(nil), monthLabels...)
	case Yearly:
		for y := startYear; y <= now.Year(); y++ {
			rep.Labels = append(rep.Labels, time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006"))
		}
	default:
		rep.Labels = append([]string(nil), hourLabels...)
	}
	rep.Counts = make([]int, len(rep.Labels))

	aiTools := make(map[string]int)
	var longest *LongestSession

	for _, r := range records {
		day, ok := InPeriod(r, g, ref, now)
		if !ok {
			continue
		}

		switch g {
		case Daily:
			if i := hourBucket(r.CheckIn); i >= 0 {
				rep.Counts[i]++
			}
		case Monthly:
			rep.Counts[int(day.Month())-1]++
		case Yearly:
			rep.Counts[day.Year()-startYear]++
		}

		rep.Total++
		if r.Category == models.CategoryStudent {
			rep.Students++
		}
		if strings.HasPrefix(r.Purpose, "AI") {
			rep.AIUse++
			aiTools[toolName(r.Purpose)]++
		} else if r.Purpose != "" {
			rep.GeneralUse++
		}

		if minutes, ok := durationMinutes(r); ok {
			if longest == nil || minutes > longest.Minutes {
				longest = &LongestSession{Name: r.Name, Minutes: minutes}
			}
		}
	}

	rep.AITools = sortedTools(aiTools)
	rep.Longest = longest
	rep.Peak = peakLabel(rep.Labels, rep.Counts)
	return rep
}

// InPeriod reports whether a record belongs to the reported period:
// the reference day for daily, the reference year for monthly, the
// five-year window ending at now for yearly. Records with malformed
// dates belong to no period.
func InPeriod(r models.SessionRecord, g Granularity, ref time.Time, now time.Time) (time.Time, bool) {
	day, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, false
	}
	switch g {
	case Daily:
		return day, r.Date == ref.Format("2006-01-02")
	case Monthly:
		return day, day.Year() == ref.Year()
	case Yearly:
		return day, day.Year() >= now.Year()-4 && day.Year() <= now.Year()
	}
	return day, false
}

// hourBucket returns the histogram index for a HH:MM check-in, or -1
// when the hour falls outside the fixed 08..18 range.
func hourBucket(checkIn string) int {
	for i, label := range hourLabels {
		if strings.HasPrefix(checkIn, label[:2]) {
			return i
		}
	}
	return -1
}

// toolName extracts the tool from an "AI: <tool>" purpose.
func toolName(purpose string) string {
	parts := strings.SplitN(purpose, ":", 2)
	if len(parts) < 2 {
		return AIGenericTool
	}
	tool := strings.TrimSpace(parts[1])
	if tool == "" {
		return AIGenericTool
	}
	return tool
}

// durationMinutes computes checkout minus check-in as same-day clock
// values. Active sessions and unparseable clocks are skipped, and only
// positive durations qualify.
func durationMinutes(r models.SessionRecord) (int, bool) {
	if r.CheckOut == models.CheckOutSentinel {
		return 0, false
	}
	in, ok1 := clockMinutes(r.CheckIn)
	out, ok2 := clockMinutes(r.CheckOut)
	if !ok1 || !ok2 || out <= in {
		return 0, false
	}
	return out - in, true
}

func clockMinutes(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// sortedTools orders the AI breakdown by count descending, tool name
// ascending for equal counts.
func sortedTools(tools map[string]int) []ToolCount {
	out := make([]ToolCount, 0, len(tools))
	for tool, count := range tools {
		out = append(out, ToolCount{Tool: tool, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tool < out[j].Tool
	})
	return out
}

// peakLabel returns the first bucket reaching the maximum count, or ""
// for an all-zero histogram.
func peakLabel(labels []string, counts []int) string {
	max, idx := 0, -1
	for i, c := range counts {
		if c > max {
			max, idx = c, i
		}
	}
	if idx < 0 {
		return ""
	}
	return labels[idx]
}
