package aggregate

import (
	"testing"

	"attritionlens/domain/employee"
	"attritionlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rateFields are the eighteen fields charted as attrition rate by dimension.
var rateFields = []employee.Field{
	employee.Department, employee.JobRole, employee.Gender, employee.MaritalStatus,
	employee.EducationField, employee.Education, employee.JobLevel, employee.BusinessTravel,
	employee.OverTime, employee.YearsInCurrentRole, employee.NumCompaniesWorked,
	employee.YearsSinceLastPromotion, employee.EnvironmentSatisfaction, employee.JobSatisfaction,
	employee.RelationshipSatisfaction, employee.WorkLifeBalance, employee.PerformanceRating,
	employee.JobInvolvement,
}

func TestRateBy_ThreeRowExample(t *testing.T) {
	table := testkit.NewTable(
		testkit.Employee("Sales", employee.Yes),
		testkit.Employee("Sales", employee.No),
		testkit.Employee("RnD", employee.Yes),
	)

	result := RateBy(employee.FullView(table), employee.Department, SortByKey)

	assert.Equal(t, map[string]float64{"Sales": 50.0, "RnD": 100.0}, result.Map())
	assert.Equal(t, []string{"RnD", "Sales"}, result.Keys())
	assert.Equal(t, MetricAttritionRate, result.Metric)

	sales, ok := result.Lookup("Sales")
	require.True(t, ok)
	assert.Equal(t, 2, sales.Count)
}

func TestRateBy_SortPolicies(t *testing.T) {
	mk := func(level int, attrition string) employee.Record {
		r := testkit.Employee("Sales", attrition)
		r.JobLevel = level
		return r
	}
	table := testkit.NewTable(
		mk(10, employee.No), mk(2, employee.Yes), mk(2, employee.No), mk(1, employee.Yes), mk(10, employee.No),
	)
	view := employee.FullView(table)

	byKey := RateBy(view, employee.JobLevel, SortByKey)
	assert.Equal(t, []string{"1", "2", "10"}, byKey.Keys(), "ordinal keys sort numerically")

	byRate := RateBy(view, employee.JobLevel, SortByRateDesc)
	assert.Equal(t, []string{"1", "2", "10"}, byRate.Keys())
	assert.Equal(t, []float64{100, 50, 0}, []float64{byRate.Points[0].Value, byRate.Points[1].Value, byRate.Points[2].Value})
}

func TestRateBy_RangeAndWeightedMeanIdentity(t *testing.T) {
	table := testkit.GeneratedTable(600, 17)
	view := employee.FullView(table)
	overall, ok := OverallRate(view)
	require.True(t, ok)

	for _, f := range rateFields {
		for _, policy := range []SortPolicy{SortByKey, SortByRateDesc} {
			result := RateBy(view, f, policy)
			total, weighted := 0, 0.0
			for _, p := range result.Points {
				assert.GreaterOrEqual(t, p.Value, 0.0, f)
				assert.LessOrEqual(t, p.Value, 100.0, f)
				total += p.Count
				weighted += float64(p.Count) * p.Value
			}
			assert.Equal(t, view.Len(), total, f)
			assert.InDelta(t, overall, weighted/float64(total), 1e-9, f)
		}
	}
}

func TestRateBy_Idempotent(t *testing.T) {
	view := employee.FullView(testkit.GeneratedTable(300, 4))

	for _, f := range rateFields {
		assert.Equal(t, RateBy(view, f, SortByRateDesc), RateBy(view, f, SortByRateDesc), f)
	}
	assert.Equal(t, RateByTenure(view), RateByTenure(view))
	assert.Equal(t, MeanIncomeByEducationAttrition(view), MeanIncomeByEducationAttrition(view))
	assert.Equal(t, ComputeKPIs(view), ComputeKPIs(view))
	assert.Equal(t, BuildHistogram(view, employee.Age, 20, true), BuildHistogram(view, employee.Age, 20, true))
}

func TestRateBy_DoesNotMutateView(t *testing.T) {
	table := testkit.GeneratedTable(50, 2)
	before := append([]employee.Record(nil), table.Records...)
	view := employee.FullView(table)

	RateBy(view, employee.JobRole, SortByRateDesc)
	RateByTenure(view)
	MeanIncomeByEducationAttrition(view)

	assert.Equal(t, before, table.Records)
}

func TestOverallRate_Empty(t *testing.T) {
	_, ok := OverallRate(employee.NewView(testkit.NewTable(), nil))
	assert.False(t, ok)
}
