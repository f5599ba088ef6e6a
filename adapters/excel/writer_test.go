package excel

import (
	"bytes"
	"testing"

	"attritionlens/domain/employee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook_KeepsTextColumns(t *testing.T) {
	header := []string{"EmployeeNumber", "Notes", string(employee.Age), string(employee.JobLevel), string(employee.Department), employee.AttritionBinaryColumn}
	rows := [][]string{{"007", "NaN", "35", "2", "Sales", "1"}}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, header, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, header, got[0])
	assert.Equal(t, rows[0], got[1])

	for cell, want := range map[string]excelize.CellType{
		"A2": excelize.CellTypeSharedString,
		"B2": excelize.CellTypeSharedString,
		"C2": excelize.CellTypeUnset,
		"D2": excelize.CellTypeUnset,
		"F2": excelize.CellTypeUnset,
	} {
		typ, err := f.GetCellType(DefaultSheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, typ, cell)
	}
}

func TestNumericColumns(t *testing.T) {
	header := []string{"EmployeeNumber", string(employee.MonthlyIncome), string(employee.Education), string(employee.Gender), employee.AttritionBinaryColumn}
	assert.Equal(t, []bool{false, true, true, false, true}, numericColumns(header))
}
