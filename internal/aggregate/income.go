package aggregate

import (
	"sort"

	"attritionlens/domain/employee"

	"github.com/montanaflynn/stats"
)

// Point2 is one (first, second) group of a two-key aggregation
type Point2 struct {
	First  string  `json:"first"`
	Second string  `json:"second"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`

	order float64
}

// Result2 is a two-key aggregation sorted by first key then second key
type Result2 struct {
	First  employee.Field `json:"first"`
	Second employee.Field `json:"second"`
	Metric string         `json:"metric"`
	Points []Point2       `json:"points"`
}

// Lookup returns the point for (first, second)
func (r Result2) Lookup(first, second string) (Point2, bool) {
	for _, p := range r.Points {
		if p.First == first && p.Second == second {
			return p, true
		}
	}
	return Point2{}, false
}

// MeanBy2 groups by two fields and averages a numeric measure per group.
func MeanBy2(view *employee.View, first, second, measure employee.Field) Result2 {
	firstKey, secondKey := fieldKey(first), fieldKey(second)
	const sep = "\x00"

	type pair struct{ a, b string }
	pairs := make(map[string]pair)
	keyOf := func(r *employee.Record) (string, float64, bool) {
		a, order, _ := firstKey(r)
		b, _, _ := secondKey(r)
		k := a + sep + b
		pairs[k] = pair{a, b}
		return k, order, true
	}
	measureOf := func(r *employee.Record) float64 {
		v, _ := r.Number(measure)
		return v
	}

	groups := groupBy(view, keyOf, measureOf)
	points := make([]Point2, 0, len(groups))
	for _, g := range groups {
		mean, err := stats.Mean(g.values)
		if err != nil {
			continue
		}
		p := pairs[g.key]
		points = append(points, Point2{First: p.a, Second: p.b, Value: mean, Count: len(g.values), order: g.order})
	}

	numericFirst := first.Kind() != employee.KindCategorical
	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.First != b.First {
			if numericFirst {
				return a.order < b.order
			}
			return a.First < b.First
		}
		return a.Second < b.Second
	})

	metric := "mean_" + string(measure)
	if measure == employee.MonthlyIncome {
		metric = MetricMeanIncome
	}
	return Result2{First: first, Second: second, Metric: metric, Points: points}
}

// MeanIncomeByEducationAttrition averages MonthlyIncome per (Education, Attrition).
func MeanIncomeByEducationAttrition(view *employee.View) Result2 {
	return MeanBy2(view, employee.Education, employee.Attrition, employee.MonthlyIncome)
}
