/*
Package datastore defines the storage executor consumed by the commit pipeline.

	type Executor interface {
	    ExecuteInsert(ctx context.Context, row storagemodels.Row) error
	    ExecuteBulkInsert(ctx context.Context, rows []storagemodels.Row) (int64, error)
	}

Rows arrive keyed and converted; executors never generate keys or apply
converters themselves.

Implementations:
  - pg: PostgreSQL via pgx/v5, INSERT per row and COPY for bulk loads
  - ddb: DynamoDB, PutItem per row and one TransactWriteItems for bulk loads
  - mock: in-memory executor with failure injection for testing

Transaction boundaries belong to the caller. The pg executor runs on whatever
DBTX it is given, typically a pgx.Tx the caller commits or rolls back.
*/
package datastore
