/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/entitymapper/storagemodels"
)

// Executor writes converted rows to storage. It is consumed by the commit
// pipeline and implemented per backend.
type Executor interface {
	// ExecuteInsert writes one row.
	ExecuteInsert(ctx context.Context, row storagemodels.Row) error

	// ExecuteBulkInsert writes all rows as one unit and returns the affected count.
	// Either every row is written or none is.
	ExecuteBulkInsert(ctx context.Context, rows []storagemodels.Row) (int64, error)
}
