package attendancecontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"GEUNTAE/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T, records []models.AttendanceRecord) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	if len(records) > 0 {
		require.NoError(t, db.Create(&records).Error)
	}

	h := NewHandler(db)
	router := gin.New()
	router.GET("/api/attendance", h.List)
	router.GET("/api/attendance/stats", h.Stats)
	router.GET("/api/attendance/pivot", h.Pivot)
	router.GET("/api/attendance/filters", h.Filters)
	router.GET("/api/attendance/report/summary", h.ReportSummary)
	router.GET("/api/attendance/report/daily", h.ReportDaily)
	return router
}

func get(t *testing.T, router *gin.Engine, url string, out interface{}) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func sampleRecords() []models.AttendanceRecord {
	return []models.AttendanceRecord{
		{Date: "2024-01-05", Name: "김철수", ClockIn: "09:00", ClockOut: "18:00", Category: "정규직", Department: "생산1팀", Workplace: "본사", TotalHours: 8, RegularHours: 8, BreakTime: 1},
		{Date: "2024-01-05", Name: "이영희", ClockIn: "14:00", ClockOut: "23:00", Category: "정규직", Department: "생산2팀", Workplace: "본사", TotalHours: 8, RegularHours: 8, BreakTime: 1},
		{Date: "2024-01-06", Name: "김철수", ClockIn: "09:00", ClockOut: "20:00", Category: "정규직", Department: "생산1팀", Workplace: "본사", TotalHours: 10, RegularHours: 8, OvertimeHours: 2, BreakTime: 1},
		{Date: "2024-02-01", Name: "박민수", ClockIn: "09:00", ClockOut: "18:00", Category: "계약직", Department: "생산1팀", Workplace: "지사", TotalHours: 8, RegularHours: 8, BreakTime: 1, AnnualLeave: "사용"},
	}
}

func TestListFiltersAndPagination(t *testing.T) {
	router := setupRouter(t, sampleRecords())

	var resp struct {
		Records    []models.AttendanceRecord `json:"records"`
		Pagination struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}

	code := get(t, router, "/api/attendance?name=김철수", &resp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Records, 2)
	assert.EqualValues(t, 2, resp.Pagination.Total)
	// Newest date first.
	assert.Equal(t, "2024-01-06", resp.Records[0].Date)

	code = get(t, router, "/api/attendance?startDate=2024-01-06&endDate=2024-01-31", &resp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "2024-01-06", resp.Records[0].Date)

	code = get(t, router, "/api/attendance?page=2&limit=3", &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Records, 1)
	assert.EqualValues(t, 4, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestListClampsPagination(t *testing.T) {
	router := setupRouter(t, sampleRecords())

	var resp struct {
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}

	code := get(t, router, "/api/attendance?page=0&limit=5000", &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 1000, resp.Pagination.Limit)
}

func TestStats(t *testing.T) {
	router := setupRouter(t, sampleRecords())

	var resp struct {
		ByWorker []struct {
			Name       string  `json:"name"`
			Days       int64   `json:"days"`
			TotalHours float64 `json:"total_hours"`
			AvgHours   float64 `json:"avg_hours"`
		} `json:"byWorker"`
		ByDepartment []struct {
			Department string  `json:"department"`
			Count      int64   `json:"count"`
			TotalHours float64 `json:"total_hours"`
		} `json:"byDepartment"`
		DailyTrend []struct {
			Date  string `json:"date"`
			Count int64  `json:"count"`
		} `json:"dailyTrend"`
		MonthlyTrend []struct {
			Month string `json:"month"`
			Count int64  `json:"count"`
		} `json:"monthlyTrend"`
	}

	code := get(t, router, "/api/attendance/stats", &resp)
	require.Equal(t, http.StatusOK, code)

	require.NotEmpty(t, resp.ByWorker)
	// 김철수 has the most hours and comes first.
	assert.Equal(t, "김철수", resp.ByWorker[0].Name)
	assert.EqualValues(t, 2, resp.ByWorker[0].Days)
	assert.Equal(t, 18.0, resp.ByWorker[0].TotalHours)
	assert.Equal(t, 9.0, resp.ByWorker[0].AvgHours)

	require.Len(t, resp.ByDepartment, 2)
	require.Len(t, resp.DailyTrend, 3)
	assert.Equal(t, "2024-01-05", resp.DailyTrend[0].Date)

	require.Len(t, resp.MonthlyTrend, 2)
	assert.Equal(t, "2024-01", resp.MonthlyTrend[0].Month)
	assert.EqualValues(t, 3, resp.MonthlyTrend[0].Count)
}

func TestStatsDateRange(t *testing.T) {
	router := setupRouter(t, sampleRecords())

	var resp struct {
		DailyTrend []struct {
			Date string `json:"date"`
		} `json:"dailyTrend"`
	}

	code := get(t, router, "/api/attendance/stats?startDate=2024-02-01", &resp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.DailyTrend, 1)
	assert.Equal(t, "2024-02-01", resp.DailyTrend[0].Date)
}

func TestPivot(t *testing.T) {
	router := setupRouter(t, sampleRecords())

	var resp struct {
		Columns []string                 `json:"columns"`
		Data    []map[string]interface{} `json:"data"`
	}

	code := get(t, router, "/api/attendance/pivot?rowField=name&colField=department&valueField=total_hours&aggFunc=sum", &resp)
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []string{"생산1팀", "생산2팀"}, resp.Columns)

	require.NotEmpty(t, resp.Data)
	byName := make(map[string]map[string]interface{})
	for _, row := range resp.Data {
		byName[row["rowKey"].(string)] = row
	}
	assert.Equal(t, 18.0, byName["김철수"]["생산1팀"])
	assert.Equal(t, 8.0, byName["이영희"]["생산2팀"])
}

func TestPivotRejectsUnknownField(t *testing.T) {
	router := setupRouter(t, nil)

	assert.Equal(t, http.StatusBadRequest,
		get(t, router, "/api/attendance/pivot?rowField=id", nil))
	assert.Equal(t, http.StatusBadRequest,
		get(t, router, "/api/attendance/pivot?valueField=password", nil))
	assert.Equal(t, http.StatusBadRequest,
		get(t, router, "/api/attendance/pivot?aggFunc=drop", nil))
}

func TestFilters(t *testing.T) {
	records := sampleRecords()
	records = append(records, models.AttendanceRecord{Date: "2024-02-02", Name: "최수진"})
	router := setupRouter(t, records)

	var resp struct {
		Names       []string `json:"names"`
		Categories  []string `json:"categories"`
		Departments []string `json:"departments"`
		Workplaces  []string `json:"workplaces"`
		DateRange   struct {
			MinDate string `json:"minDate"`
			MaxDate string `json:"maxDate"`
		} `json:"dateRange"`
	}

	code := get(t, router, "/api/attendance/filters", &resp)
	require.Equal(t, http.StatusOK, code)

	assert.Len(t, resp.Names, 4)
	// Blank values never show up as filter options.
	assert.ElementsMatch(t, []string{"정규직", "계약직"}, resp.Categories)
	assert.ElementsMatch(t, []string{"생산1팀", "생산2팀"}, resp.Departments)
	assert.ElementsMatch(t, []string{"본사", "지사"}, resp.Workplaces)
	assert.Equal(t, "2024-01-05", resp.DateRange.MinDate)
	assert.Equal(t, "2024-02-02", resp.DateRange.MaxDate)
}

func TestReportSummary(t *testing.T) {
	// Unrecognized time strings pass through normalization without zero
	// padding, so the shift split must not compare hours lexically.
	records := append(sampleRecords(), models.AttendanceRecord{
		Date: "2024-01-07", Name: "정다은", ClockIn: "9:00", ClockOut: "18:00",
		Category: "정규직", Department: "생산1팀", Workplace: "본사",
		TotalHours: 8, RegularHours: 8, BreakTime: 1,
	})
	router := setupRouter(t, records)

	var resp struct {
		Current []struct {
			Department      string  `json:"department"`
			Shift           string  `json:"shift"`
			AttendanceCount int64   `json:"attendance_count"`
			UniqueWorkers   int64   `json:"unique_workers"`
			TotalHours      float64 `json:"total_hours"`
			AnnualLeaveDays int64   `json:"annual_leave_days"`
		} `json:"current"`
		Previous  []json.RawMessage `json:"previous"`
		PrevYear  int               `json:"prevYear"`
		PrevMonth int               `json:"prevMonth"`
	}

	code := get(t, router, "/api/attendance/report/summary?year=2024&month=1", &resp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Current, 2)
	assert.Equal(t, 2023, resp.PrevYear)
	assert.Equal(t, 12, resp.PrevMonth)

	shifts := map[string]int64{}
	for _, row := range resp.Current {
		shifts[row.Shift] += row.AttendanceCount
	}
	// Only the 14:00 clock-in lands in the night shift bucket; the
	// single-digit "9:00" start is a day shift.
	assert.EqualValues(t, 3, shifts["주간"])
	assert.EqualValues(t, 1, shifts["야간"])

	code = get(t, router, "/api/attendance/report/summary?year=2024&month=2", &resp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Current, 1)
	assert.EqualValues(t, 1, resp.Current[0].AnnualLeaveDays)
	assert.Len(t, resp.Previous, 2)
}

func TestReportSummaryRequiresYearMonth(t *testing.T) {
	router := setupRouter(t, nil)
	assert.Equal(t, http.StatusBadRequest,
		get(t, router, "/api/attendance/report/summary?year=2024", nil))
}

func TestReportDaily(t *testing.T) {
	router := setupRouter(t, sampleRecords())

	var resp struct {
		Data []struct {
			Date       string  `json:"date"`
			Department string  `json:"department"`
			Count      int64   `json:"count"`
			TotalHours float64 `json:"total_hours"`
		} `json:"data"`
		Groups []struct {
			Department string `json:"department"`
			Workplace  string `json:"workplace"`
		} `json:"groups"`
		Categories []string `json:"categories"`
	}

	code := get(t, router, "/api/attendance/report/daily?year=2024&month=1", &resp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "2024-01-05", resp.Data[0].Date)
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, []string{"정규직"}, resp.Categories)
}
