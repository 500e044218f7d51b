package plancontroller

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"GEUNTAE/helper"
	"GEUNTAE/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) List(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year와 month 파라미터가 필요합니다."})
		return
	}

	plans, err := h.fetchMonth(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

type planItem struct {
	Day          int     `json:"day"`
	WorkerType   string  `json:"worker_type"`
	PlannedHours float64 `json:"planned_hours"`
	Memo         string  `json:"memo"`
}

type batchRequest struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Plans []planItem `json:"plans"`
}

// BatchUpsert replaces a month's plan slots in one transaction. The
// (year, month, day, worker_type) key decides insert versus update.
func (h *Handler) BatchUpsert(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Year == 0 || req.Month == 0 || req.Plans == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year, month, plans 파라미터가 필요합니다."})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Plans {
			plan := models.WorkforcePlan{
				Year:         req.Year,
				Month:        req.Month,
				Day:          item.Day,
				WorkerType:   item.WorkerType,
				PlannedHours: item.PlannedHours,
				// Rough headcount estimate kept alongside the hours.
				PlannedCount: int(math.Ceil(item.PlannedHours)),
				Memo:         item.Memo,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "year"}, {Name: "month"}, {Name: "day"}, {Name: "worker_type"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"planned_hours", "planned_count", "memo", "updated_at"}),
			}).Create(&plan).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	plans, err := h.fetchMonth(req.Year, req.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

type suggestion struct {
	Day            int     `json:"day"`
	Weekday        string  `json:"weekday"`
	SuggestedHours float64 `json:"suggested_hours"`
}

// Suggest proposes planned hours for each day of the month by regressing
// the last 90 days of actual attendance on the weekday.
func (h *Handler) Suggest(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year와 month 파라미터가 필요합니다."})
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	historyStart := first.AddDate(0, 0, -90).Format("2006-01-02")
	historyEnd := first.AddDate(0, 0, -1).Format("2006-01-02")

	var days []struct {
		Date  string
		Hours float64
	}
	err := h.DB.Model(&models.AttendanceRecord{}).
		Select("date, SUM(total_hours) as hours").
		Where("date >= ? AND date <= ?", historyStart, historyEnd).
		Group("date").Order("date ASC").
		Scan(&days).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	history := make([]helper.DailyHours, 0, len(days))
	for _, d := range days {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		history = append(history, helper.DailyHours{Weekday: int(t.Weekday()), Hours: d.Hours})
	}
	if len(history) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "예측에 사용할 근태 데이터가 없습니다."})
		return
	}

	// One prediction per weekday, reused across the month.
	byWeekday := make(map[int]float64, 7)
	for wd := 0; wd < 7; wd++ {
		hours, err := helper.ForecastHours(history, wd)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		byWeekday[wd] = hours
	}

	last := first.AddDate(0, 1, -1)
	suggestions := make([]suggestion, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		suggestions = append(suggestions, suggestion{
			Day:            d.Day(),
			Weekday:        d.Format("Monday"),
			SuggestedHours: byWeekday[int(d.Weekday())],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"year":        year,
		"month":       month,
		"trained_on":  len(history),
		"suggestions": suggestions,
	})
}

func (h *Handler) fetchMonth(year, month int) ([]models.WorkforcePlan, error) {
	var plans []models.WorkforcePlan
	err := h.DB.Where("year = ? AND month = ?", year, month).
		Order("day ASC, worker_type ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	// Older rows only carried a headcount; surface it as hours.
	for i := range plans {
		if plans[i].PlannedHours == 0 && plans[i].PlannedCount > 0 {
			plans[i].PlannedHours = float64(plans[i].PlannedCount)
		}
	}
	return plans, nil
}
