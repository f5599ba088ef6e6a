package aggregate

import "attritionlens/domain/employee"

// SortPolicy decides the order of grouped results
type SortPolicy string

const (
	// SortByKey orders groups by their natural key order: numerically for
	// ordinal and numeric fields, lexically for categorical ones, and in
	// interval order for tenure bins.
	SortByKey SortPolicy = "key"
	// SortByRateDesc orders groups by value, highest first; ties fall back to key order.
	SortByRateDesc SortPolicy = "rate_desc"
)

// ParseSortPolicy accepts "key" and "rate_desc".
func ParseSortPolicy(s string) (SortPolicy, bool) {
	switch SortPolicy(s) {
	case SortByKey, SortByRateDesc:
		return SortPolicy(s), true
	}
	return "", false
}

// Metric names
const (
	MetricAttritionRate = "attrition_rate"
	MetricMeanIncome    = "mean_monthly_income"
	MetricCount         = "count"
)

// Point is one group of an aggregation
type Point struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`

	order float64
}

// Result is an ordered list of (key, value) pairs for one grouping field
type Result struct {
	Field  employee.Field `json:"field"`
	Metric string         `json:"metric"`
	Points []Point        `json:"points"`
}

// Keys returns the group keys in result order
func (r Result) Keys() []string {
	keys := make([]string, len(r.Points))
	for i, p := range r.Points {
		keys[i] = p.Key
	}
	return keys
}

// Lookup returns the point for key
func (r Result) Lookup(key string) (Point, bool) {
	for _, p := range r.Points {
		if p.Key == key {
			return p, true
		}
	}
	return Point{}, false
}

// Map returns key -> value
func (r Result) Map() map[string]float64 {
	out := make(map[string]float64, len(r.Points))
	for _, p := range r.Points {
		out[p.Key] = p.Value
	}
	return out
}
