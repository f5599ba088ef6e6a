package ports

import (
	"context"

	"attritionlens/domain/employee"
)

// DatasetSource is anything the employee table can be loaded from.
// Key identifies the source for caching; Signature changes whenever the
// underlying data changes, and a missing source reports a NOT_FOUND error.
type DatasetSource interface {
	Key() string
	Signature(ctx context.Context) (string, error)
	Read(ctx context.Context) (*employee.RawTable, error)
}
