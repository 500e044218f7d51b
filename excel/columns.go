package excel

import (
	"fmt"
	"strings"
)

// Canonical field names of an attendance record.
const (
	FieldDate          = "date"
	FieldName          = "name"
	FieldClockIn       = "clock_in"
	FieldClockOut      = "clock_out"
	FieldCategory      = "category"
	FieldDepartment    = "department"
	FieldWorkplace     = "workplace"
	FieldTotalHours    = "total_hours"
	FieldRegularHours  = "regular_hours"
	FieldOvertimeHours = "overtime_hours"
	FieldBreakTime     = "break_time"
	FieldAnnualLeave   = "annual_leave"
)

// columnMap translates the header spellings seen in real attendance exports
// to canonical field names. Lookup happens after whitespace normalization,
// so "총  근로시간" and "총 근로시간" both resolve.
var columnMap = map[string]string{
	"날짜":      FieldDate,
	"이름":      FieldName,
	"출근시간":    FieldClockIn,
	"퇴근시간":    FieldClockOut,
	"구분":      FieldCategory,
	"부서":      FieldDepartment,
	"근무지":     FieldWorkplace,
	"총 근로시간":  FieldTotalHours,
	"총근로시간":   FieldTotalHours,
	"정규시간":    FieldRegularHours,
	"연장 근로시간": FieldOvertimeHours,
	"연장근로시간":  FieldOvertimeHours,
	"휴게시간":    FieldBreakTime,
	"연차 사용여부": FieldAnnualLeave,
	"연차사용여부":  FieldAnnualLeave,
	"연차":      FieldAnnualLeave,
}

// MissingColumnError reports a required column that could not be located in
// the header row. Ingestion stops entirely when this happens.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("필수 컬럼 '%s'을(를) 찾을 수 없습니다.", e.Column)
}

// normalizeColumnName collapses internal whitespace runs to a single space
// and trims the ends.
func normalizeColumnName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// MapColumns resolves a header row into a column-index → canonical-field
// mapping. Unknown headers are ignored. A date column and a name column are
// both mandatory; the date column is checked first.
func MapColumns(header []string) (map[int]string, error) {
	mapping := make(map[int]string)
	for i, name := range header {
		if field, ok := columnMap[normalizeColumnName(name)]; ok {
			mapping[i] = field
		}
	}

	found := make(map[string]bool, len(mapping))
	for _, field := range mapping {
		found[field] = true
	}
	if !found[FieldDate] {
		return nil, &MissingColumnError{Column: "날짜"}
	}
	if !found[FieldName] {
		return nil, &MissingColumnError{Column: "이름"}
	}

	return mapping, nil
}
