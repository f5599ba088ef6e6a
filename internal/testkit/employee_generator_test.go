package testkit

import (
	"bytes"
	"encoding/csv"
	"testing"

	"attritionlens/domain/employee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeGenerator_Deterministic(t *testing.T) {
	cfg := EmployeeGeneratorConfig{Rows: 50, BaseAttritionRate: 0.16, Seed: 7}

	a := NewEmployeeGenerator(cfg).GenerateRows()
	b := NewEmployeeGenerator(cfg).GenerateRows()

	assert.Equal(t, a, b)
	assert.Len(t, a, 51)
	assert.Equal(t, Headers(), a[0])
}

func TestEmployeeGenerator_ValuesInDomain(t *testing.T) {
	table := GeneratedTable(300, 11)
	require.Equal(t, 300, table.Len())

	yes := 0
	for _, r := range table.Records {
		assert.Contains(t, []string{employee.Yes, employee.No}, r.Attrition)
		assert.Contains(t, []string{employee.Yes, employee.No}, r.OverTime)
		assert.GreaterOrEqual(t, r.YearsAtCompany, 0.0)
		assert.Less(t, r.YearsAtCompany, 40.0)
		assert.LessOrEqual(t, r.YearsInCurrentRole, r.YearsAtCompany)
		assert.Contains(t, rolesByDept[r.Department], r.JobRole)
		yes += r.AttritionBinary
	}
	assert.Greater(t, yes, 0, "expected some attrition")
	assert.Less(t, yes, 300, "expected some retention")
}

func TestEmployeeGenerator_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	gen := NewEmployeeGenerator(EmployeeGeneratorConfig{Rows: 5, BaseAttritionRate: 0.2, Seed: 1})
	require.NoError(t, gen.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	assert.Equal(t, "EmployeeNumber", rows[0][0])
}
