package postgres

import (
	"context"
	"fmt"

	"attritionlens/domain/employee"
	"attritionlens/internal/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// EmployeeImporter bulk-loads records into the employees table
type EmployeeImporter struct {
	db    *sqlx.DB
	table string
}

// NewEmployeeImporter creates an importer for the given table
func NewEmployeeImporter(db *sqlx.DB, table string) *EmployeeImporter {
	return &EmployeeImporter{db: db, table: table}
}

// Import copies records into the table in one transaction. With replace the
// table is truncated first so the import becomes its full contents.
func (i *EmployeeImporter) Import(ctx context.Context, records []employee.Record, replace bool) (int, error) {
	tx, err := i.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin import transaction")
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY", pq.QuoteIdentifier(i.table))); err != nil {
			return 0, errors.Wrap(err, "failed to truncate "+i.table)
		}
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(i.table, ImportColumns()...))
	if err != nil {
		return 0, errors.Wrap(err, "failed to prepare COPY")
	}
	for n := range records {
		if _, err := stmt.ExecContext(ctx, RecordValues(&records[n])...); err != nil {
			stmt.Close()
			return 0, errors.Wrap(err, fmt.Sprintf("failed to copy row %d", n+1))
		}
	}
	// an argument-less Exec flushes the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, errors.Wrap(err, "failed to flush COPY")
	}
	if err := stmt.Close(); err != nil {
		return 0, errors.Wrap(err, "failed to close COPY")
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit import")
	}
	return len(records), nil
}

// ImportColumns are the table columns written by Import, in field order.
func ImportColumns() []string {
	cols := make([]string, 0, len(employee.Fields()))
	for _, f := range employee.Fields() {
		cols = append(cols, string(f))
	}
	return cols
}

// RecordValues returns the typed column values of r in ImportColumns order.
func RecordValues(r *employee.Record) []interface{} {
	values := make([]interface{}, 0, len(employee.Fields()))
	for _, f := range employee.Fields() {
		switch f.Kind() {
		case employee.KindCategorical:
			values = append(values, r.Text(f))
		case employee.KindOrdinal:
			v, _ := r.Number(f)
			values = append(values, int64(v))
		default:
			v, _ := r.Number(f)
			values = append(values, v)
		}
	}
	return values
}
