package filter

import (
	"fmt"
	"sort"

	"attritionlens/domain/employee"
	"attritionlens/internal/errors"
)

// Dimensions are the categorical fields the dashboard sidebar exposes by default.
var Dimensions = []employee.Field{
	employee.Attrition,
	employee.Department,
	employee.JobRole,
	employee.EducationField,
}

// Range is an inclusive numeric interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether min <= v <= max
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Criteria is the conjunction of selected sets and numeric ranges.
// A field absent from Sets is unrestricted; a field present with an
// empty set admits no record at all.
type Criteria struct {
	Sets          map[employee.Field][]string `json:"sets"`
	Age           *Range                      `json:"age,omitempty"`
	MonthlyIncome *Range                      `json:"monthly_income,omitempty"`
}

// Validate checks that only categorical fields are used as sets and that ranges are ordered.
func (c Criteria) Validate() error {
	for f := range c.Sets {
		if !f.Valid() || f.Kind() != employee.KindCategorical {
			return errors.InvalidInput(fmt.Sprintf("%q is not a categorical field", f))
		}
	}
	if c.Age != nil && c.Age.Min > c.Age.Max {
		return errors.InvalidInput("age range min is greater than max")
	}
	if c.MonthlyIncome != nil && c.MonthlyIncome.Min > c.MonthlyIncome.Max {
		return errors.InvalidInput("monthly income range min is greater than max")
	}
	return nil
}

// Clone returns a deep copy so sessions never share slices or ranges.
func (c Criteria) Clone() Criteria {
	out := Criteria{}
	if c.Sets != nil {
		out.Sets = make(map[employee.Field][]string, len(c.Sets))
		for f, vals := range c.Sets {
			out.Sets[f] = append(make([]string, 0, len(vals)), vals...)
		}
	}
	if c.Age != nil {
		r := *c.Age
		out.Age = &r
	}
	if c.MonthlyIncome != nil {
		r := *c.MonthlyIncome
		out.MonthlyIncome = &r
	}
	return out
}

// Select sets the selected values for a field, replacing any previous selection.
func (c *Criteria) Select(f employee.Field, values ...string) {
	if c.Sets == nil {
		c.Sets = make(map[employee.Field][]string)
	}
	c.Sets[f] = append(make([]string, 0, len(values)), values...)
}

// Options describes the values and ranges available for filtering a table
type Options struct {
	Values        map[employee.Field][]string `json:"values"`
	Age           Range                       `json:"age"`
	MonthlyIncome Range                       `json:"monthly_income"`
}

// OptionsFor collects distinct values for each field in first-appearance order
// and the observed Age and MonthlyIncome ranges.
func OptionsFor(table *employee.Table, fields ...employee.Field) Options {
	if len(fields) == 0 {
		fields = Dimensions
	}
	opts := Options{Values: make(map[employee.Field][]string, len(fields))}
	seen := make(map[employee.Field]map[string]bool, len(fields))
	for _, f := range fields {
		seen[f] = make(map[string]bool)
		opts.Values[f] = []string{}
	}

	for i := range table.Records {
		r := &table.Records[i]
		for _, f := range fields {
			v := r.Key(f)
			if !seen[f][v] {
				seen[f][v] = true
				opts.Values[f] = append(opts.Values[f], v)
			}
		}
		if i == 0 {
			opts.Age = Range{Min: r.Age, Max: r.Age}
			opts.MonthlyIncome = Range{Min: r.MonthlyIncome, Max: r.MonthlyIncome}
			continue
		}
		opts.Age = widen(opts.Age, r.Age)
		opts.MonthlyIncome = widen(opts.MonthlyIncome, r.MonthlyIncome)
	}
	return opts
}

func widen(r Range, v float64) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Defaults returns criteria that select every value and the full observed ranges,
// so applying them keeps every record.
func Defaults(table *employee.Table) Criteria {
	opts := OptionsFor(table)
	c := Criteria{Sets: make(map[employee.Field][]string, len(opts.Values))}
	for f, vals := range opts.Values {
		c.Sets[f] = vals
	}
	age, income := opts.Age, opts.MonthlyIncome
	c.Age = &age
	c.MonthlyIncome = &income
	return c
}

// SortedFields returns the fields named in Sets in a stable order.
func (c Criteria) SortedFields() []employee.Field {
	fields := make([]employee.Field, 0, len(c.Sets))
	for f := range c.Sets {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
