package attendancecontroller

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"GEUNTAE/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// List returns records matching the optional filters, newest date first.
func (h *Handler) List(c *gin.Context) {
	q := h.DB.Model(&models.AttendanceRecord{})

	if v := c.Query("startDate"); v != "" {
		q = q.Where("date >= ?", v)
	}
	if v := c.Query("endDate"); v != "" {
		q = q.Where("date <= ?", v)
	}
	if v := c.Query("name"); v != "" {
		q = q.Where("name = ?", v)
	}
	if v := c.Query("category"); v != "" {
		q = q.Where("category = ?", v)
	}
	if v := c.Query("department"); v != "" {
		q = q.Where("department = ?", v)
	}
	if v := c.Query("workplace"); v != "" {
		q = q.Where("workplace = ?", v)
	}
	if v := c.Query("uploadId"); v != "" {
		q = q.Where("upload_id = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 {
		limit = 1
	}
	if limit > 1000 {
		limit = 1000
	}

	var records []models.AttendanceRecord
	err := q.Order("date DESC, name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type workerStat struct {
	Name          string  `json:"name"`
	Days          int64   `json:"days"`
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	AvgHours      float64 `json:"avg_hours"`
}

type categoryStat struct {
	Category      string  `json:"category"`
	Count         int64   `json:"count"`
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type departmentStat struct {
	Department    string  `json:"department"`
	Count         int64   `json:"count"`
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type workplaceStat struct {
	Workplace     string  `json:"workplace"`
	Count         int64   `json:"count"`
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type dailyStat struct {
	Date          string  `json:"date"`
	Count         int64   `json:"count"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type monthlyStat struct {
	Month         string  `json:"month"`
	Count         int64   `json:"count"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// Stats aggregates hours by worker, category, department and workplace plus
// daily and monthly trends, optionally constrained to a date range.
func (h *Handler) Stats(c *gin.Context) {
	scope := func() *gorm.DB {
		q := h.DB.Model(&models.AttendanceRecord{})
		if v := c.Query("startDate"); v != "" {
			q = q.Where("date >= ?", v)
		}
		if v := c.Query("endDate"); v != "" {
			q = q.Where("date <= ?", v)
		}
		return q
	}

	var byWorker []workerStat
	err := scope().
		Select("name, COUNT(*) as days, SUM(total_hours) as total_hours, SUM(regular_hours) as regular_hours, SUM(overtime_hours) as overtime_hours, AVG(total_hours) as avg_hours").
		Group("name").Order("total_hours DESC").
		Scan(&byWorker).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	groupSelect := func(field string) string {
		return field + ", COUNT(*) as count, SUM(total_hours) as total_hours, SUM(regular_hours) as regular_hours, SUM(overtime_hours) as overtime_hours"
	}

	var byCategory []categoryStat
	if err := scope().Select(groupSelect("category")).Group("category").Scan(&byCategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var byDepartment []departmentStat
	if err := scope().Select(groupSelect("department")).Group("department").Scan(&byDepartment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var byWorkplace []workplaceStat
	if err := scope().Select(groupSelect("workplace")).Group("workplace").Scan(&byWorkplace).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var dailyTrend []dailyStat
	err = scope().
		Select("date, COUNT(*) as count, SUM(total_hours) as total_hours, SUM(overtime_hours) as overtime_hours").
		Group("date").Order("date ASC").
		Scan(&dailyTrend).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var monthlyTrend []monthlyStat
	err = scope().
		Select("SUBSTR(date, 1, 7) as month, COUNT(*) as count, SUM(total_hours) as total_hours, SUM(overtime_hours) as overtime_hours").
		Group("SUBSTR(date, 1, 7)").Order("month ASC").
		Scan(&monthlyTrend).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"byWorker":     byWorker,
		"byCategory":   byCategory,
		"byDepartment": byDepartment,
		"byWorkplace":  byWorkplace,
		"dailyTrend":   dailyTrend,
		"monthlyTrend": monthlyTrend,
	})
}

var (
	pivotFields = map[string]bool{
		"name": true, "category": true, "department": true,
		"workplace": true, "date": true, "annual_leave": true,
	}
	pivotValues = map[string]bool{
		"total_hours": true, "regular_hours": true,
		"overtime_hours": true, "break_time": true,
	}
	pivotAggs = map[string]string{
		"sum": "SUM", "avg": "AVG", "count": "COUNT",
		"min": "MIN", "max": "MAX",
	}
)

type pivotRow struct {
	RowKey string  `json:"row_key"`
	ColKey string  `json:"col_key"`
	Value  float64 `json:"value"`
}

// Pivot cross-tabulates one field against another with a chosen aggregate.
// Field and aggregate names are whitelisted before touching the query.
func (h *Handler) Pivot(c *gin.Context) {
	rowField := c.DefaultQuery("rowField", "name")
	colField := c.DefaultQuery("colField", "department")
	valueField := c.DefaultQuery("valueField", "total_hours")
	aggFunc := c.DefaultQuery("aggFunc", "sum")

	if !pivotFields[rowField] || !pivotFields[colField] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 필드입니다."})
		return
	}
	if !pivotValues[valueField] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 값 필드입니다."})
		return
	}
	agg, ok := pivotAggs[aggFunc]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 집계 함수입니다."})
		return
	}

	scope := func() *gorm.DB {
		q := h.DB.Model(&models.AttendanceRecord{})
		if v := c.Query("startDate"); v != "" {
			q = q.Where("date >= ?", v)
		}
		if v := c.Query("endDate"); v != "" {
			q = q.Where("date <= ?", v)
		}
		return q
	}

	var columns []string
	if err := scope().Distinct(colField).Order(colField).Pluck(colField, &columns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	aggExpr := fmt.Sprintf("%s(%s)", agg, valueField)
	if aggFunc == "count" {
		aggExpr = "COUNT(*)"
	}

	var rows []pivotRow
	err := scope().
		Select(fmt.Sprintf("%s as row_key, %s as col_key, %s as value", rowField, colField, aggExpr)).
		Group(fmt.Sprintf("%s, %s", rowField, colField)).
		Order(rowField).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data := make([]map[string]interface{}, 0)
	index := make(map[string]map[string]interface{})
	for _, r := range rows {
		entry, ok := index[r.RowKey]
		if !ok {
			entry = map[string]interface{}{"rowKey": r.RowKey}
			index[r.RowKey] = entry
			data = append(data, entry)
		}
		entry[r.ColKey] = math.Round(r.Value*100) / 100
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":    columns,
		"data":       data,
		"rowField":   rowField,
		"colField":   colField,
		"valueField": valueField,
		"aggFunc":    aggFunc,
	})
}

// Filters lists the distinct values the UI can filter on.
func (h *Handler) Filters(c *gin.Context) {
	records := func() *gorm.DB { return h.DB.Model(&models.AttendanceRecord{}) }

	var names, categories, departments, workplaces []string
	if err := records().Distinct("name").Order("name").Pluck("name", &names).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := records().Distinct("category").Where("category != ''").Order("category").Pluck("category", &categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := records().Distinct("department").Where("department != ''").Order("department").Pluck("department", &departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := records().Distinct("workplace").Where("workplace != ''").Order("workplace").Pluck("workplace", &workplaces).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var dateRange struct {
		MinDate string `json:"minDate"`
		MaxDate string `json:"maxDate"`
	}
	if err := records().Select("MIN(date) as min_date, MAX(date) as max_date").Scan(&dateRange).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"names":       names,
		"categories":  categories,
		"departments": departments,
		"workplaces":  workplaces,
		"dateRange":   dateRange,
	})
}

// monthRange returns the first and last day of a month as YYYY-MM-DD.
func monthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

type summaryRow struct {
	Department      string  `json:"department"`
	Workplace       string  `json:"workplace"`
	Category        string  `json:"category"`
	Shift           string  `json:"shift"`
	AttendanceCount int64   `json:"attendance_count"`
	UniqueWorkers   int64   `json:"unique_workers"`
	TotalHours      float64 `json:"total_hours"`
	RegularHours    float64 `json:"regular_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	AnnualLeaveDays int64   `json:"annual_leave_days"`
}

// Shifts starting at 14:00 or later count as 야간. The hour prefix goes
// through a numeric cast because unrecognized time strings pass through
// normalization unpadded ("9:00"). SIGNED casts to an integer on MySQL and
// carries numeric affinity on sqlite.
const summaryQuery = `
SELECT
  department,
  workplace,
  category,
  CASE WHEN clock_in != '' AND CAST(SUBSTR(clock_in, 1, 2) AS SIGNED) >= 14 THEN '야간' ELSE '주간' END as shift,
  COUNT(*) as attendance_count,
  COUNT(DISTINCT name) as unique_workers,
  ROUND(SUM(total_hours), 1) as total_hours,
  ROUND(SUM(regular_hours), 1) as regular_hours,
  ROUND(SUM(overtime_hours), 1) as overtime_hours,
  SUM(CASE WHEN annual_leave != '' AND annual_leave != '0' AND annual_leave != '미사용' THEN 1 ELSE 0 END) as annual_leave_days
FROM attendance_records
WHERE date >= ? AND date <= ?
GROUP BY department, workplace, category, shift
ORDER BY department, workplace, category, shift`

// ReportSummary compares the requested month against the previous one for
// the dashboard.
func (h *Handler) ReportSummary(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year와 month 파라미터가 필요합니다."})
		return
	}

	start, end := monthRange(year, month)
	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}
	prevStart, prevEnd := monthRange(prevYear, prevMonth)

	var current, previous []summaryRow
	if err := h.DB.Raw(summaryQuery, start, end).Scan(&current).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.Raw(summaryQuery, prevStart, prevEnd).Scan(&previous).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current":   current,
		"previous":  previous,
		"year":      year,
		"month":     month,
		"prevYear":  prevYear,
		"prevMonth": prevMonth,
	})
}

type dailyRow struct {
	Date       string  `json:"date"`
	Department string  `json:"department"`
	Workplace  string  `json:"workplace"`
	Category   string  `json:"category"`
	Count      int64   `json:"count"`
	TotalHours float64 `json:"total_hours"`
}

type groupRow struct {
	Department string `json:"department"`
	Workplace  string `json:"workplace"`
}

// ReportDaily breaks one month down per day and department/workplace group.
func (h *Handler) ReportDaily(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year와 month 파라미터가 필요합니다."})
		return
	}

	start, end := monthRange(year, month)
	ranged := func() *gorm.DB {
		return h.DB.Model(&models.AttendanceRecord{}).Where("date >= ? AND date <= ?", start, end)
	}

	var data []dailyRow
	err := ranged().
		Select("date, department, workplace, category, COUNT(*) as count, ROUND(SUM(total_hours), 1) as total_hours").
		Group("date, department, workplace, category").
		Order("date, department, workplace, category").
		Scan(&data).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var groups []groupRow
	err = ranged().
		Distinct("department, workplace").
		Order("department, workplace").
		Scan(&groups).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var categories []string
	err = ranged().
		Distinct("category").
		Where("category != ''").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       data,
		"groups":     groups,
		"categories": categories,
		"year":       year,
		"month":      month,
	})
}
