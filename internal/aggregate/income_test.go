package aggregate

import (
	"testing"

	"attritionlens/domain/employee"
	"attritionlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanIncomeByEducationAttrition(t *testing.T) {
	mk := func(edu int, attrition string, income float64) employee.Record {
		r := testkit.Employee("Sales", attrition)
		r.Education = edu
		r.MonthlyIncome = income
		return r
	}
	table := testkit.NewTable(
		mk(3, employee.Yes, 3000),
		mk(1, employee.No, 4000),
		mk(3, employee.No, 6000),
		mk(3, employee.Yes, 5000),
		mk(1, employee.No, 2000),
	)

	result := MeanIncomeByEducationAttrition(employee.FullView(table))
	require.Len(t, result.Points, 3)

	assert.Equal(t, "1", result.Points[0].First)
	assert.Equal(t, "No", result.Points[0].Second)
	assert.Equal(t, 3000.0, result.Points[0].Value)

	assert.Equal(t, "3", result.Points[1].First)
	assert.Equal(t, "No", result.Points[1].Second)
	assert.Equal(t, 6000.0, result.Points[1].Value)

	yes, ok := result.Lookup("3", "Yes")
	require.True(t, ok)
	assert.Equal(t, 4000.0, yes.Value)
	assert.Equal(t, 2, yes.Count)
	assert.Equal(t, MetricMeanIncome, result.Metric)
}

func TestComputeKPIs(t *testing.T) {
	table := testkit.GeneratedTable(1470, 42)
	k := ComputeKPIs(employee.FullView(table))

	assert.Equal(t, 1470, k.Total)
	assert.Equal(t, "1,470", k.TotalLabel)
	assert.True(t, k.RateAvailable)
	assert.InDelta(t, float64(k.AttritionCount)/1470*100, k.Rate, 1e-12)
	assert.Regexp(t, `^\d+\.\d{2}%$`, k.RateLabel)
}

func TestComputeKPIs_EmptyIsNotAvailable(t *testing.T) {
	k := ComputeKPIs(employee.NewView(testkit.NewTable(), nil))

	assert.Equal(t, 0, k.Total)
	assert.Equal(t, 0, k.AttritionCount)
	assert.False(t, k.RateAvailable)
	assert.Equal(t, NotAvailable, k.RateLabel)
	assert.Equal(t, 0.0, k.Rate)
}

func TestDistribution_MostFrequentFirst(t *testing.T) {
	table := testkit.NewTable(
		testkit.Employee("Sales", employee.No),
		testkit.Employee("Sales", employee.Yes),
		testkit.Employee("Sales", employee.No),
	)

	result := Distribution(employee.FullView(table), employee.Attrition)
	assert.Equal(t, []string{"No", "Yes"}, result.Keys())
	assert.Equal(t, map[string]float64{"No": 2, "Yes": 1}, result.Map())
}

func TestBuildHistogram(t *testing.T) {
	mk := func(age float64, attrition string) employee.Record {
		r := testkit.Employee("Sales", attrition)
		r.Age = age
		return r
	}
	table := testkit.NewTable(mk(20, employee.Yes), mk(30, employee.No), mk(40, employee.No), mk(40, employee.Yes))
	view := employee.FullView(table)

	h := BuildHistogram(view, employee.Age, 2, false)
	assert.Equal(t, []float64{20, 30, 40}, h.Edges)
	require.Len(t, h.Series, 1)
	assert.Equal(t, []float64{1, 3}, h.Series[0].Counts)

	split := BuildHistogram(view, employee.Age, 2, true)
	require.Len(t, split.Series, 2)
	assert.Equal(t, "No", split.Series[0].Name)
	assert.Equal(t, []float64{0, 2}, split.Series[0].Counts)
	assert.Equal(t, []float64{1, 1}, split.Series[1].Counts)
}

func TestBuildHistogram_SingleValue(t *testing.T) {
	table := testkit.NewTable(testkit.Employee("Sales", employee.No), testkit.Employee("HR", employee.No))

	h := BuildHistogram(employee.FullView(table), employee.Age, 20, false)
	require.Len(t, h.Series, 1)
	assert.Equal(t, []float64{2}, h.Series[0].Counts)
}

func TestScatter(t *testing.T) {
	table := testkit.NewTable(testkit.Employee("Sales", employee.Yes))
	points := Scatter(employee.FullView(table), employee.YearsAtCompany, employee.MonthlyIncome)

	require.Len(t, points, 1)
	assert.Equal(t, ScatterPoint{X: 5, Y: 5000, Attrition: employee.Yes}, points[0])
}
