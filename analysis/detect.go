package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"GEUNTAE/models"
)

// FindDuplicates groups records by exact (date, name) and reports every
// group with more than one member. Entries come out in first-seen order.
func FindDuplicates(records []models.AttendanceRecord) []models.DuplicateEntry {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, rec := range records {
		key := rec.Date + "|" + rec.Name
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	duplicates := []models.DuplicateEntry{}
	for _, key := range order {
		n := counts[key]
		if n <= 1 {
			continue
		}
		parts := strings.SplitN(key, "|", 2)
		date, name := parts[0], parts[1]
		duplicates = append(duplicates, models.DuplicateEntry{
			Date:    date,
			Name:    name,
			Count:   n,
			Details: fmt.Sprintf("%s님이 %s에 %d건 중복 등록되었습니다.", name, date, n),
		})
	}

	return duplicates
}

// FindWarnings applies the rule checks to each record independently. A
// single record can trigger several warnings.
func FindWarnings(records []models.AttendanceRecord) []models.WarningEntry {
	warnings := []models.WarningEntry{}

	for _, rec := range records {
		ref := []models.RecordRef{{Date: rec.Date, Name: rec.Name}}

		if rec.OvertimeHours > 4 {
			warnings = append(warnings, models.WarningEntry{
				Type:     models.WarningOvertime,
				Severity: models.SeverityHigh,
				Message: fmt.Sprintf("%s님이 %s에 연장근로 %v시간으로 과도한 초과근무가 감지되었습니다.",
					rec.Name, rec.Date, rec.OvertimeHours),
				RelatedRecords: ref,
			})
		}

		if rec.ClockIn == "" || rec.ClockOut == "" {
			missing := "퇴근시간"
			if rec.ClockIn == "" {
				missing = "출근시간"
			}
			warnings = append(warnings, models.WarningEntry{
				Type:     models.WarningMissingData,
				Severity: models.SeverityMedium,
				Message: fmt.Sprintf("%s님의 %s 기록에 %s이 누락되었습니다.",
					rec.Name, rec.Date, missing),
				RelatedRecords: ref,
			})
		}

		if rec.ClockIn != "" && rec.ClockOut != "" && rec.TotalHours > 0 {
			inHours, okIn := clockToHours(rec.ClockIn)
			outHours, okOut := clockToHours(rec.ClockOut)
			if okIn && okOut {
				// Naive subtraction: a shift crossing midnight computes
				// negative and gets flagged. Kept to match the source data
				// pipeline this replaces.
				worked := outHours - inHours
				expected := worked - rec.BreakTime
				if diff := expected - rec.TotalHours; diff > 0.5 || diff < -0.5 {
					warnings = append(warnings, models.WarningEntry{
						Type:     models.WarningInconsistency,
						Severity: models.SeverityMedium,
						Message: fmt.Sprintf("%s님의 %s 기록에서 출퇴근 시간 기준 예상 근로시간(%.1fh)과 기록된 총 근로시간(%vh)이 불일치합니다.",
							rec.Name, rec.Date, expected, rec.TotalHours),
						RelatedRecords: ref,
					})
				}
			}
		}

		if rec.TotalHours > 12 {
			warnings = append(warnings, models.WarningEntry{
				Type:     models.WarningPattern,
				Severity: models.SeverityHigh,
				Message: fmt.Sprintf("%s님이 %s에 총 %v시간 근무로 장시간 근로가 감지되었습니다.",
					rec.Name, rec.Date, rec.TotalHours),
				RelatedRecords: ref,
			})
		}
	}

	return warnings
}

// clockToHours turns "HH:MM" into fractional hours. Seconds, when present,
// are ignored.
func clockToHours(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}
