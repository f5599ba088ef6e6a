package aggregate

import (
	"testing"

	"attritionlens/domain/employee"
	"attritionlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinTenure_Boundaries(t *testing.T) {
	cases := []struct {
		years float64
		label string
		ok    bool
	}{
		{0, "<1", true},
		{0.5, "<1", true},
		{1, "1-3", true},
		{2.99, "1-3", true},
		{3, "3-5", true},
		{5, "5-10", true},
		{10, "10-15", true},
		{15, "15-20", true},
		{20, "20-30", true},
		{29, "20-30", true},
		{30, "30+", true},
		{39.9, "30+", true},
		{40, "", false},
		{-1, "", false},
	}
	for _, tc := range cases {
		label, _, ok := BinTenure(tc.years)
		assert.Equal(t, tc.ok, ok, "years=%v", tc.years)
		assert.Equal(t, tc.label, label, "years=%v", tc.years)
	}
}

func TestBinTenure_ExactlyOneBin(t *testing.T) {
	for y := -5.0; y < 45; y += 0.25 {
		matches := 0
		for _, b := range TenureBins {
			if y >= b.Lower && y < b.Upper {
				matches++
			}
		}
		_, _, ok := BinTenure(y)
		if ok {
			assert.Equal(t, 1, matches, "years=%v", y)
		} else {
			assert.Equal(t, 0, matches, "years=%v", y)
		}
	}
}

func TestRateByTenure_OrderAndOutOfRange(t *testing.T) {
	mk := func(years float64, attrition string) employee.Record {
		r := testkit.Employee("Sales", attrition)
		r.YearsAtCompany = years
		return r
	}
	table := testkit.NewTable(
		mk(32, employee.No),
		mk(0, employee.Yes),
		mk(0, employee.No),
		mk(7, employee.Yes),
		mk(41, employee.Yes),
		mk(-2, employee.No),
	)

	result := RateByTenure(employee.FullView(table))

	assert.Equal(t, []string{"<1", "5-10", "30+"}, result.Keys())
	assert.Equal(t, map[string]float64{"<1": 50, "5-10": 100, "30+": 0}, result.Map())
	assert.Equal(t, 2, result.OutOfRange)
	assert.Equal(t, TenureBinnedField, result.Field)

	total := 0
	for _, p := range result.Points {
		total += p.Count
	}
	require.Equal(t, table.Len(), total+result.OutOfRange)
}
