package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldIsCaseSensitive(t *testing.T) {
	f, err := ParseField("JobRole")
	require.NoError(t, err)
	assert.Equal(t, JobRole, f)

	_, err = ParseField("jobrole")
	assert.Error(t, err)
}

func TestFieldKinds(t *testing.T) {
	assert.Equal(t, KindCategorical, Department.Kind())
	assert.Equal(t, KindCategorical, OverTime.Kind())
	assert.Equal(t, KindOrdinal, WorkLifeBalance.Kind())
	assert.Equal(t, KindNumeric, MonthlyIncome.Kind())
	assert.Len(t, Fields(), 22)
}

func TestRecordKeyAndValue(t *testing.T) {
	r := Record{
		Department:    "Sales",
		Education:     4,
		MonthlyIncome: 5993,
		Age:           41.5,
		Attrition:     Yes,
		Extra:         map[string]string{"EmployeeNumber": "1"},
	}
	r.AttritionBinary = 1

	assert.Equal(t, "Sales", r.Key(Department))
	assert.Equal(t, "4", r.Key(Education))
	assert.Equal(t, "5993", r.Key(MonthlyIncome))
	assert.Equal(t, "41.5", r.Key(Age))
	assert.Equal(t, "1", r.Value("EmployeeNumber"))
	assert.Equal(t, "1", r.Value(AttritionBinaryColumn))
	assert.Equal(t, "", r.Value("Unknown"))
}

func TestViewPreservesOrder(t *testing.T) {
	table := &Table{Records: []Record{{Department: "A"}, {Department: "B"}, {Department: "C"}}}

	full := FullView(table)
	assert.Equal(t, 3, full.Len())

	sub := NewView(table, []int{2, 0})
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, "C", sub.At(0).Department)
	assert.Equal(t, "A", sub.At(1).Department)
	assert.False(t, sub.IsEmpty())

	var nilView *View
	assert.True(t, nilView.IsEmpty())
}
