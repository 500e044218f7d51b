package excel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumns(t *testing.T) {
	header := []string{"날짜", "이름", "출근시간", "퇴근시간", "부서", "비고"}

	mapping, err := MapColumns(header)
	require.NoError(t, err)

	assert.Equal(t, FieldDate, mapping[0])
	assert.Equal(t, FieldName, mapping[1])
	assert.Equal(t, FieldClockIn, mapping[2])
	assert.Equal(t, FieldClockOut, mapping[3])
	assert.Equal(t, FieldDepartment, mapping[4])
	_, ok := mapping[5] // unknown header is ignored
	assert.False(t, ok)
}

func TestMapColumnsWhitespaceVariants(t *testing.T) {
	header := []string{" 날짜 ", "이름", "총  근로시간", "연장\t근로시간", "연차  사용여부"}

	mapping, err := MapColumns(header)
	require.NoError(t, err)

	assert.Equal(t, FieldTotalHours, mapping[2])
	assert.Equal(t, FieldOvertimeHours, mapping[3])
	assert.Equal(t, FieldAnnualLeave, mapping[4])
}

func TestMapColumnsMissingDate(t *testing.T) {
	_, err := MapColumns([]string{"이름", "출근시간"})

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "날짜", missing.Column)
}

func TestMapColumnsMissingName(t *testing.T) {
	_, err := MapColumns([]string{"날짜", "출근시간"})

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "이름", missing.Column)
}

func TestMapColumnsSynonyms(t *testing.T) {
	for _, header := range []string{"연차", "연차사용여부", "연차 사용여부"} {
		mapping, err := MapColumns([]string{"날짜", "이름", header})
		require.NoError(t, err)
		assert.Equal(t, FieldAnnualLeave, mapping[2], "header %q", header)
	}
}
