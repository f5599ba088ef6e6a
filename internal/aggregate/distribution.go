package aggregate

import (
	"math"
	"sort"

	"attritionlens/domain/employee"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribution counts records per value of field, most frequent first
// (ties keep key order).
func Distribution(view *employee.View, field employee.Field) Result {
	keyOf := fieldKey(field)
	groups := groupBy(view, keyOf, func(*employee.Record) float64 { return 1 })
	points := make([]Point, 0, len(groups))
	for _, g := range groups {
		points = append(points, Point{Key: g.key, Value: float64(len(g.values)), Count: len(g.values), order: g.order})
	}
	sortPoints(points, SortByRateDesc, field.Kind() != employee.KindCategorical)
	return Result{Field: field, Metric: MetricCount, Points: points}
}

// HistogramSeries is one set of bin counts
type HistogramSeries struct {
	Name   string    `json:"name"`
	Counts []float64 `json:"counts"`
}

// Histogram holds equal-width bin edges shared by every series
type Histogram struct {
	Field  employee.Field    `json:"field"`
	Edges  []float64         `json:"edges"`
	Series []HistogramSeries `json:"series"`
}

// BuildHistogram splits the observed range of field into nbins equal-width
// bins. With splitByAttrition the counts are reported per attrition status
// over the same edges, otherwise as a single "All" series.
func BuildHistogram(view *employee.View, field employee.Field, nbins int, splitByAttrition bool) Histogram {
	h := Histogram{Field: field}
	if view.IsEmpty() || nbins < 1 {
		return h
	}

	all := make([]float64, 0, view.Len())
	byStatus := map[string][]float64{}
	var statuses []string
	view.Each(func(r *employee.Record) {
		v, _ := r.Number(field)
		all = append(all, v)
		if _, seen := byStatus[r.Attrition]; !seen {
			statuses = append(statuses, r.Attrition)
		}
		byStatus[r.Attrition] = append(byStatus[r.Attrition], v)
	})

	lo, hi := floats.Min(all), floats.Max(all)
	if lo == hi {
		nbins = 1
	}
	edges := make([]float64, nbins+1)
	floats.Span(edges, lo, hi)
	h.Edges = append([]float64(nil), edges...)

	// The final divider must exceed the maximum for it to be counted.
	dividers := append([]float64(nil), edges...)
	dividers[nbins] = math.Nextafter(hi, math.Inf(1))
	if lo == hi {
		dividers[0] = lo
	}

	if !splitByAttrition {
		h.Series = []HistogramSeries{{Name: "All", Counts: countBins(all, dividers)}}
		return h
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		h.Series = append(h.Series, HistogramSeries{Name: s, Counts: countBins(byStatus[s], dividers)})
	}
	return h
}

func countBins(values, dividers []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Histogram(nil, dividers, sorted, nil)
}

// ScatterPoint is one employee in the income vs tenure plot
type ScatterPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Attrition string  `json:"attrition"`
}

// Scatter returns (x, y, attrition) for every record in view order.
func Scatter(view *employee.View, x, y employee.Field) []ScatterPoint {
	points := make([]ScatterPoint, 0, view.Len())
	view.Each(func(r *employee.Record) {
		xv, _ := r.Number(x)
		yv, _ := r.Number(y)
		points = append(points, ScatterPoint{X: xv, Y: yv, Attrition: r.Attrition})
	})
	return points
}
