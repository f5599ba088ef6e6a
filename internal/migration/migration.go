package migration

import (
	"context"
	"fmt"
	"strings"

	"attritionlens/domain/employee"
	"attritionlens/internal/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the employees table the postgres source reads from
type MigrationRunner struct {
	version string
	table   string
}

// NewRunner creates a migration runner for the given employees table name.
func NewRunner(table string) *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		table:   table,
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createEmployeesTable(ctx, db); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to create %s table", r.table))
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createEmployeesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, EmployeesTableDDL(r.table))
	return err
}

// Filter dimensions are the columns queried most, so they get indexes.
func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	for _, f := range []employee.Field{employee.Attrition, employee.Department, employee.JobRole} {
		name := pq.QuoteIdentifier(fmt.Sprintf("idx_%s_%s", r.table, strings.ToLower(string(f))))
		_, err := db.ExecContext(ctx, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			name, pq.QuoteIdentifier(r.table), pq.QuoteIdentifier(string(f)),
		))
		if err != nil {
			return err
		}
	}
	return nil
}

// ColumnType maps a field kind to its postgres column type.
func ColumnType(f employee.Field) string {
	switch f.Kind() {
	case employee.KindOrdinal:
		return "INTEGER"
	case employee.KindNumeric:
		return "DOUBLE PRECISION"
	}
	return "TEXT"
}

// EmployeesTableDDL renders CREATE TABLE for the employees table. Column names
// are quoted so they keep the dataset's header spelling.
func EmployeesTableDDL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", pq.QuoteIdentifier(table))
	b.WriteString("\tid BIGSERIAL PRIMARY KEY")
	for _, f := range employee.Fields() {
		fmt.Fprintf(&b, ",\n\t%s %s NOT NULL", pq.QuoteIdentifier(string(f)), ColumnType(f))
	}
	b.WriteString("\n)")
	return b.String()
}
