package employee

// View is an ordered subset of a table's records, referenced by index.
// Views never copy or mutate records.
type View struct {
	table   *Table
	indices []int
}

// NewView creates a view over the given table indices, kept in the order supplied.
func NewView(table *Table, indices []int) *View {
	return &View{table: table, indices: indices}
}

// FullView returns a view containing every record of the table.
func FullView(table *Table) *View {
	indices := make([]int, table.Len())
	for i := range indices {
		indices[i] = i
	}
	return NewView(table, indices)
}

// Len returns the number of records in the view
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.indices)
}

// IsEmpty reports whether the view has no records
func (v *View) IsEmpty() bool { return v.Len() == 0 }

// At returns the i-th record of the view
func (v *View) At(i int) *Record {
	return &v.table.Records[v.indices[i]]
}

// Table returns the underlying table
func (v *View) Table() *Table { return v.table }

// Records copies the view's records into a new slice.
func (v *View) Records() []Record {
	out := make([]Record, v.Len())
	for i := range out {
		out[i] = *v.At(i)
	}
	return out
}

// Each calls fn for every record in view order.
func (v *View) Each(fn func(r *Record)) {
	for i := 0; i < v.Len(); i++ {
		fn(v.At(i))
	}
}
