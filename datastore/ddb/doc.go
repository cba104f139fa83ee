/*
Package ddb provides a DynamoDB implementation of datastore.Executor.

The DynamodbExecutor supports:
  - Single-table design: every item carries an EntityType attribute
  - Macro-based key expansion (e.g., "PERSON#{Id}") from the row's stored values
  - Conditional writes that surface existing items as ErrAlreadyExists
  - Atomic bulk loads through TransactWriteItems

Key Features:

Macro Expansion:
Keys can use macros that are replaced with column values after conversion:

	exec := ddb.New(client, "app-table",
	    ddb.WithIndexMap("people", map[string]string{
	        "PK":     "PERSON#{Id}",   // Becomes "PERSON#1"
	        "SK":     "PROFILE",       // Static value
	        "GSI1PK": "NAME#{FirstName}",
	    }),
	    ddb.WithConditionAttribute("PK"),
	)

Bulk Loads:
ExecuteBulkInsert issues one TransactWriteItems call, so a batch succeeds or fails
as a unit. DynamoDB limits transactions to 100 items; larger batches are rejected
before any request is sent. Use the row strategy for larger loads.
*/
package ddb
