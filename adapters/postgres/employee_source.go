package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"attritionlens/domain/employee"
	"attritionlens/internal/errors"
	"attritionlens/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// undefinedTable is the SQLSTATE postgres reports for a missing relation
const undefinedTable = "42P01"

// EmployeeSource implements DatasetSource over a postgres table
type EmployeeSource struct {
	db    *sqlx.DB
	table string
}

var _ ports.DatasetSource = (*EmployeeSource)(nil)

// NewEmployeeSource creates a source reading the given table
func NewEmployeeSource(db *sqlx.DB, table string) *EmployeeSource {
	return &EmployeeSource{db: db, table: table}
}

// Key identifies the table for caching
func (s *EmployeeSource) Key() string {
	return "postgres:" + s.table
}

// Signature changes whenever any row of the table changes: it combines the
// row count with an md5 over every row in id order.
func (s *EmployeeSource) Signature(ctx context.Context) (string, error) {
	query := fmt.Sprintf(
		`SELECT count(*)::text || '-' || coalesce(md5(string_agg(t::text, ',' ORDER BY t.id)), '') FROM %s t`,
		pq.QuoteIdentifier(s.table),
	)
	var sig string
	if err := s.db.GetContext(ctx, &sig, query); err != nil {
		return "", s.translate(err)
	}
	return sig, nil
}

// Read returns every employee row as text, in id order.
func (s *EmployeeSource) Read(ctx context.Context) (*employee.RawTable, error) {
	headers := make([]string, 0, len(employee.Fields()))
	quoted := make([]string, 0, len(employee.Fields()))
	for _, f := range employee.Fields() {
		headers = append(headers, string(f))
		quoted = append(quoted, pq.QuoteIdentifier(string(f)))
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(quoted, ", "), pq.QuoteIdentifier(s.table))

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, s.translate(err)
	}
	defer rows.Close()

	raw := &employee.RawTable{Headers: headers}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.LoadError(fmt.Sprintf("failed to scan %s row", s.table), err)
		}
		row := make(map[string]string, len(headers))
		for i, v := range values {
			row[headers[i]] = columnText(v)
		}
		raw.Rows = append(raw.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, s.translate(err)
	}
	return raw, nil
}

func (s *EmployeeSource) translate(err error) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && string(pqErr.Code) == undefinedTable {
		return errors.NotFound(fmt.Sprintf("table '%s'", s.table))
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(fmt.Sprintf("table '%s'", s.table))
	}
	return errors.LoadError(fmt.Sprintf("failed to query %s", s.table), err)
}

// columnText renders a scanned driver value the way it would appear in a CSV export.
func columnText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return employee.FormatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
