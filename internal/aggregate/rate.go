package aggregate

import (
	"sort"

	"attritionlens/domain/employee"

	"github.com/montanaflynn/stats"
)

// ============================================================================
// RATE BY DIMENSION
// ============================================================================
// One grouping primitive serves every "attrition rate by X" chart:
// group -> mean(Attrition_Binary) * 100 -> sort.
// ============================================================================

// groupFn maps a record to its group key and a numeric order; ok=false drops the record.
type groupFn func(r *employee.Record) (key string, order float64, ok bool)

type group struct {
	key    string
	order  float64
	values []float64
}

// groupBy buckets measure values by key, keeping first-appearance order.
func groupBy(view *employee.View, keyOf groupFn, measure func(r *employee.Record) float64) []*group {
	index := make(map[string]*group)
	var groups []*group
	view.Each(func(r *employee.Record) {
		key, order, ok := keyOf(r)
		if !ok {
			return
		}
		g, exists := index[key]
		if !exists {
			g = &group{key: key, order: order}
			index[key] = g
			groups = append(groups, g)
		}
		g.values = append(g.values, measure(r))
	})
	return groups
}

func attritionBinary(r *employee.Record) float64 { return float64(r.AttritionBinary) }

func fieldKey(f employee.Field) groupFn {
	return func(r *employee.Record) (string, float64, bool) {
		if f.Kind() == employee.KindCategorical {
			return r.Text(f), 0, true
		}
		v, _ := r.Number(f)
		return employee.FormatNumber(v), v, true
	}
}

// RateBy groups the view by field and reports the attrition rate (percent) per group.
func RateBy(view *employee.View, field employee.Field, policy SortPolicy) Result {
	points := ratePoints(view, fieldKey(field))
	sortPoints(points, policy, field.Kind() != employee.KindCategorical)
	return Result{Field: field, Metric: MetricAttritionRate, Points: points}
}

func ratePoints(view *employee.View, keyOf groupFn) []Point {
	groups := groupBy(view, keyOf, attritionBinary)
	points := make([]Point, 0, len(groups))
	for _, g := range groups {
		mean, err := stats.Mean(g.values)
		if err != nil {
			continue
		}
		points = append(points, Point{Key: g.key, Value: mean * 100, Count: len(g.values), order: g.order})
	}
	return points
}

func sortPoints(points []Point, policy SortPolicy, numericKeys bool) {
	byKey := func(a, b Point) bool {
		if numericKeys {
			return a.order < b.order
		}
		return a.Key < b.Key
	}
	switch policy {
	case SortByRateDesc:
		sort.SliceStable(points, func(i, j int) bool {
			if points[i].Value != points[j].Value {
				return points[i].Value > points[j].Value
			}
			return byKey(points[i], points[j])
		})
	default:
		sort.SliceStable(points, func(i, j int) bool { return byKey(points[i], points[j]) })
	}
}

// OverallRate returns the attrition rate of the whole view, or false when it is empty.
func OverallRate(view *employee.View) (float64, bool) {
	if view.IsEmpty() {
		return 0, false
	}
	values := make([]float64, 0, view.Len())
	view.Each(func(r *employee.Record) { values = append(values, attritionBinary(r)) })
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return mean * 100, true
}
