package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDateSerial(t *testing.T) {
	assert.Equal(t, "2023-03-15", NormalizeDate("45000"))
	assert.Equal(t, "2024-01-01", NormalizeDate("45292"))
	// Fractional serials carry a time component; the date part wins.
	assert.Equal(t, "2023-03-15", NormalizeDate("45000.75"))
}

func TestNormalizeDateStrings(t *testing.T) {
	assert.Equal(t, "2024-01-05", NormalizeDate("2024-01-05"))
	assert.Equal(t, "2024-01-05", NormalizeDate("2024/01/05"))
	assert.Equal(t, "2024-01-05", NormalizeDate("2024.01.05"))
	assert.Equal(t, "2024-01-05", NormalizeDate("  2024-01-05  "))
}

func TestNormalizeDatePassThrough(t *testing.T) {
	// Unrecognized layouts are deliberately left alone.
	assert.Equal(t, "1월 5일", NormalizeDate("1월 5일"))
	assert.Equal(t, "05-01-2024", NormalizeDate("05-01-2024"))
	assert.Equal(t, "", NormalizeDate(""))
	assert.Equal(t, "", NormalizeDate("   "))
}

func TestNormalizeTimeFractions(t *testing.T) {
	assert.Equal(t, "12:00", NormalizeTime("0.5"))
	assert.Equal(t, "18:00", NormalizeTime("0.75"))
	assert.Equal(t, "09:00", NormalizeTime("0.375"))
	// A literal zero is an empty cell, not midnight.
	assert.Equal(t, "", NormalizeTime("0"))
}

func TestNormalizeTimeOverflow(t *testing.T) {
	// Values >= 1 keep only the fractional part.
	assert.Equal(t, "12:00", NormalizeTime("1.5"))
	assert.Equal(t, "06:00", NormalizeTime("3.25"))
}

func TestNormalizeTimeStrings(t *testing.T) {
	assert.Equal(t, "09:00", NormalizeTime(" 09:00 "))
	assert.Equal(t, "9시 30분", NormalizeTime("9시 30분"))
	assert.Equal(t, "", NormalizeTime(""))
}

func TestNormalizeTimeRoundsToMinute(t *testing.T) {
	// 08:30 stored as a fraction is not exact in binary.
	assert.Equal(t, "08:30", NormalizeTime("0.3541666666666667"))
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, 8.0, NormalizeNumber("8"))
	assert.Equal(t, 7.25, NormalizeNumber("7.25"))
	assert.Equal(t, 7.33, NormalizeNumber("7.3333"))
	assert.Equal(t, 0.0, NormalizeNumber(""))
	assert.Equal(t, 0.0, NormalizeNumber("여덟시간"))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "생산1팀", NormalizeText("  생산1팀  "))
	assert.Equal(t, "", NormalizeText("   "))
}
