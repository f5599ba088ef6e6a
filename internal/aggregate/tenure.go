package aggregate

import (
	"attritionlens/domain/employee"
)

// Bin is a half-open interval [Lower, Upper) with a display label
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Label string  `json:"label"`
}

// TenureBins partition YearsAtCompany into the dashboard's eight tenure groups.
var TenureBins = []Bin{
	{0, 1, "<1"},
	{1, 3, "1-3"},
	{3, 5, "3-5"},
	{5, 10, "5-10"},
	{10, 15, "10-15"},
	{15, 20, "15-20"},
	{20, 30, "20-30"},
	{30, 40, "30+"},
}

// TenureBinnedField names the synthetic grouping column produced by binning.
const TenureBinnedField employee.Field = "YearsAtCompany_Binned"

// BinTenure returns the label and index of the bin containing years.
// Values below 0 or at/above 40 fall outside every bin and report ok=false.
func BinTenure(years float64) (label string, index int, ok bool) {
	for i, b := range TenureBins {
		if years >= b.Lower && years < b.Upper {
			return b.Label, i, true
		}
	}
	return "", -1, false
}

// TenureResult is the binned attrition rate plus the rows no bin could hold
type TenureResult struct {
	Result
	OutOfRange int `json:"out_of_range"`
}

// RateByTenure bins YearsAtCompany and reports the attrition rate per bin in
// interval order. Empty bins are omitted; rows outside [0,40) are excluded
// from the rates and counted in OutOfRange.
func RateByTenure(view *employee.View) TenureResult {
	outOfRange := 0
	keyOf := func(r *employee.Record) (string, float64, bool) {
		label, idx, ok := BinTenure(r.YearsAtCompany)
		if !ok {
			outOfRange++
			return "", 0, false
		}
		return label, float64(idx), true
	}

	points := ratePoints(view, keyOf)
	sortPoints(points, SortByKey, true)
	return TenureResult{
		Result:     Result{Field: TenureBinnedField, Metric: MetricAttritionRate, Points: points},
		OutOfRange: outOfRange,
	}
}
