package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/report"
	"github.com/Dev-Pakorn/CKLab/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// monitorCSVHeader is the export wire format; values are emitted
// verbatim, embedded commas and all. Consumers rely on the column
// order, so rows are concatenated by hand instead of going through
// encoding/csv, which would quote fields and change the format.
const monitorCSVHeader = "Date,TimeIn,TimeOut,Name,Type,ID,Faculty,Year,Desk,Purpose,Status"

const reportCSVHeader = "Date,CheckIn,CheckOut,Name,Type,ID,Faculty,Status"

// ReportHandler serves the aggregated usage report and the exports.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// parsePeriod reads the granularity and reference date query
// parameters, defaulting to a daily report for today.
func parsePeriod(c *gin.Context) (report.Granularity, time.Time, error) {
	g := report.Granularity(c.DefaultQuery("type", string(report.Daily)))
	switch g {
	case report.Daily, report.Monthly, report.Yearly:
	default:
		return g, time.Time{}, fmt.Errorf("unknown report type %q", g)
	}

	ref := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return g, time.Time{}, fmt.Errorf("date must be YYYY-MM-DD")
		}
		ref = parsed
	}
	return g, ref, nil
}

// Get aggregates the full log for one period.
func (h *ReportHandler) Get(c *gin.Context) {
	g, ref, err := parsePeriod(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, util.Response{
		"report": report.Aggregate(records, g, ref, time.Now()),
	})
}

// ExportCSV streams the whole session log in the monitor export
// format; an empty log produces just the header row.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"monitor_%s.csv\"",
		time.Now().Format("20060102")))

	var b strings.Builder
	b.WriteString(monitorCSVHeader + "\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			r.Date, r.CheckIn, r.CheckOut, r.Name, r.Category, r.ExternalID,
			r.Organization, r.YearLevel, r.DeskID, r.Purpose, r.Status))
	}
	c.String(http.StatusOK, b.String())
}

// ExportReportCSV streams the sessions of one report period.
func (h *ReportHandler) ExportReportCSV(c *gin.Context) {
	g, ref, err := parsePeriod(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"report_%s.csv\"", g))

	now := time.Now()
	var b strings.Builder
	b.WriteString(reportCSVHeader + "\n")
	for _, r := range records {
		if _, ok := report.InPeriod(r, g, ref, now); !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s\n",
			r.Date, r.CheckIn, r.CheckOut, r.Name, r.Category, r.ExternalID,
			r.Organization, r.Status))
	}
	c.String(http.StatusOK, b.String())
}

// ExportXLSX exports the session log as a spreadsheet.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	records, err := fetchRecords(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Sessions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := strings.Split(monitorCSVHeader, ",")
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, r := range records {
		row := idx + 2
		values := []string{
			r.Date, r.CheckIn, r.CheckOut, r.Name, r.Category, r.ExternalID,
			r.Organization, r.YearLevel, r.DeskID, r.Purpose, r.Status,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "D", "D", 24)
	f.SetColWidth(sheetName, "G", "G", 28)
	f.SetColWidth(sheetName, "J", "J", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"sessions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
