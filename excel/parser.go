package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"GEUNTAE/models"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyDataset means the spreadsheet held a header but no data rows.
var ErrEmptyDataset = errors.New("엑셀 파일에 데이터가 없습니다.")

// ErrUnsupportedFormat means the file extension is not one we can parse.
var ErrUnsupportedFormat = errors.New("지원하지 않는 파일 형식입니다. (.xlsx, .xls, .csv만 가능)")

// Parse reads raw spreadsheet bytes and produces the canonical record list.
// The second return value is the number of rows dropped for missing a date
// or name after normalization.
func Parse(data []byte, filename string) ([]models.AttendanceRecord, int, error) {
	var (
		grid [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		grid, err = readXLSX(data)
	case ".xls":
		grid, err = readXLS(data)
	case ".csv":
		grid, err = readCSV(data)
	default:
		return nil, 0, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, 0, err
	}

	return BuildRecords(grid)
}

// BuildRecords applies the column mapping and cell normalization to a parsed
// grid (header row first) and filters out rows without a date or name.
// Output order matches input row order; duplicates are kept for the anomaly
// detector to report.
func BuildRecords(grid [][]string) ([]models.AttendanceRecord, int, error) {
	if len(grid) < 2 {
		return nil, 0, ErrEmptyDataset
	}

	mapping, err := MapColumns(grid[0])
	if err != nil {
		return nil, 0, err
	}

	records := make([]models.AttendanceRecord, 0, len(grid)-1)
	dropped := 0
	for _, row := range grid[1:] {
		var rec models.AttendanceRecord
		for idx, field := range mapping {
			var raw string
			if idx < len(row) {
				raw = row[idx]
			}
			applyCell(&rec, field, raw)
		}

		if rec.Date == "" || rec.Name == "" {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	return records, dropped, nil
}

func applyCell(rec *models.AttendanceRecord, field, raw string) {
	switch field {
	case FieldDate:
		rec.Date = NormalizeDate(raw)
	case FieldName:
		rec.Name = NormalizeText(raw)
	case FieldClockIn:
		rec.ClockIn = NormalizeTime(raw)
	case FieldClockOut:
		rec.ClockOut = NormalizeTime(raw)
	case FieldCategory:
		rec.Category = NormalizeText(raw)
	case FieldDepartment:
		rec.Department = NormalizeText(raw)
	case FieldWorkplace:
		rec.Workplace = NormalizeText(raw)
	case FieldTotalHours:
		rec.TotalHours = NormalizeNumber(raw)
	case FieldRegularHours:
		rec.RegularHours = NormalizeNumber(raw)
	case FieldOvertimeHours:
		rec.OvertimeHours = NormalizeNumber(raw)
	case FieldBreakTime:
		rec.BreakTime = NormalizeNumber(raw)
	case FieldAnnualLeave:
		rec.AnnualLeave = NormalizeText(raw)
	}
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyDataset
	}

	// Raw cell values keep date serials and time fractions numeric instead
	// of applying the sheet's display format.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	rows := wb.ReadAllCells(1 << 20)
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
