package filter

import (
	"testing"

	"attritionlens/domain/employee"
	"attritionlens/internal/errors"
	"attritionlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *employee.Table {
	a := testkit.Employee("Sales", employee.Yes)
	a.Age, a.MonthlyIncome, a.JobRole = 25, 2000, "Sales Representative"
	b := testkit.Employee("Sales", employee.No)
	b.Age, b.MonthlyIncome = 40, 6000
	c := testkit.Employee("Research & Development", employee.Yes)
	c.Age, c.MonthlyIncome, c.JobRole = 31, 4000, "Research Scientist"
	d := testkit.Employee("Human Resources", employee.No)
	d.Age, d.MonthlyIncome, d.JobRole = 55, 12000, "Manager"
	return testkit.NewTable(a, b, c, d)
}

func TestApply_DefaultsKeepEverything(t *testing.T) {
	table := testkit.GeneratedTable(250, 21)

	view, err := Apply(table, Defaults(table))
	require.NoError(t, err)
	assert.Equal(t, table.Len(), view.Len())
}

func TestApply_ZeroCriteriaKeepEverything(t *testing.T) {
	table := sampleTable()

	view, err := Apply(table, Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 4, view.Len())
}

func TestApply_EmptySetYieldsEmptyResult(t *testing.T) {
	table := sampleTable()
	c := Defaults(table)
	c.Select(employee.Department)

	view, err := Apply(table, c)
	require.Error(t, err)
	assert.True(t, errors.IsEmptyResult(err))
	assert.Equal(t, 0, view.Len())
}

func TestApply_ORWithinANDAcross(t *testing.T) {
	table := sampleTable()
	c := Defaults(table)
	c.Select(employee.Department, "Sales", "Human Resources")
	c.Select(employee.Attrition, employee.No)

	view, err := Apply(table, c)
	require.NoError(t, err)
	require.Equal(t, 2, view.Len())
	assert.Equal(t, "Sales", view.At(0).Department)
	assert.Equal(t, "Human Resources", view.At(1).Department)
}

func TestApply_RangesAreInclusive(t *testing.T) {
	table := sampleTable()
	c := Criteria{
		Age:           &Range{Min: 25, Max: 40},
		MonthlyIncome: &Range{Min: 2000, Max: 4000},
	}

	view, err := Apply(table, c)
	require.NoError(t, err)
	require.Equal(t, 2, view.Len())
	assert.Equal(t, 25.0, view.At(0).Age)
	assert.Equal(t, 4000.0, view.At(1).MonthlyIncome)
}

func TestApply_SubsetProperty(t *testing.T) {
	table := testkit.GeneratedTable(400, 8)
	opts := OptionsFor(table)

	for _, dept := range opts.Values[employee.Department] {
		for _, role := range opts.Values[employee.JobRole] {
			c := Defaults(table)
			c.Select(employee.Department, dept)
			c.Select(employee.JobRole, role)
			c.Age = &Range{Min: 30, Max: 50}

			view, err := Apply(table, c)
			if err != nil {
				require.True(t, errors.IsEmptyResult(err))
			}
			assert.LessOrEqual(t, view.Len(), table.Len())
			view.Each(func(r *employee.Record) {
				assert.Equal(t, dept, r.Department)
				assert.Equal(t, role, r.JobRole)
				assert.True(t, r.Age >= 30 && r.Age <= 50)
			})
		}
	}
}

func TestApply_RejectsInvalidCriteria(t *testing.T) {
	table := sampleTable()

	_, err := Apply(table, Criteria{Sets: map[employee.Field][]string{employee.Age: {"30"}}})
	assert.True(t, errors.IsInvalidInput(err))

	_, err = Apply(table, Criteria{Age: &Range{Min: 50, Max: 20}})
	assert.True(t, errors.IsInvalidInput(err))
}

func TestOptionsFor_FirstAppearanceOrder(t *testing.T) {
	table := sampleTable()
	opts := OptionsFor(table)

	assert.Equal(t, []string{"Sales", "Research & Development", "Human Resources"}, opts.Values[employee.Department])
	assert.Equal(t, []string{employee.Yes, employee.No}, opts.Values[employee.Attrition])
	assert.Equal(t, Range{Min: 25, Max: 55}, opts.Age)
	assert.Equal(t, Range{Min: 2000, Max: 12000}, opts.MonthlyIncome)
}

func TestCriteriaClone_IsDeep(t *testing.T) {
	c := Criteria{}
	c.Select(employee.Department, "Sales")
	c.Age = &Range{Min: 1, Max: 2}

	clone := c.Clone()
	clone.Sets[employee.Department][0] = "HR"
	clone.Age.Max = 99

	assert.Equal(t, "Sales", c.Sets[employee.Department][0])
	assert.Equal(t, 2.0, c.Age.Max)
}
