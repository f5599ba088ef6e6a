package filter

import (
	"attritionlens/domain/employee"
	"attritionlens/internal/errors"
)

// ============================================================================
// FILTER ENGINE
// ============================================================================
// Single pass over the table. Values inside one field are OR-combined, fields
// and ranges are AND-combined. The view keeps table order.
// ============================================================================

// Apply returns the records of table that satisfy every predicate of c.
// When nothing matches, the (empty) view is returned together with an
// EMPTY_RESULT warning so callers can skip aggregation.
func Apply(table *employee.Table, c Criteria) (*employee.View, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	fields := c.SortedFields()
	sets := make([]map[string]bool, len(fields))
	for i, f := range fields {
		sets[i] = toSet(c.Sets[f])
	}

	indices := make([]int, 0, table.Len())
	for i := range table.Records {
		r := &table.Records[i]
		if matches(r, fields, sets, c) {
			indices = append(indices, i)
		}
	}

	view := employee.NewView(table, indices)
	if view.IsEmpty() {
		return view, errors.EmptyResultWarning()
	}
	return view, nil
}

func matches(r *employee.Record, fields []employee.Field, sets []map[string]bool, c Criteria) bool {
	for i, f := range fields {
		if !sets[i][r.Text(f)] {
			return false
		}
	}
	if c.Age != nil && !c.Age.Contains(r.Age) {
		return false
	}
	if c.MonthlyIncome != nil && !c.MonthlyIncome.Contains(r.MonthlyIncome) {
		return false
	}
	return true
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
