/*
Package storagemodels defines the data structures shared between the tracker,
the id generators and the storage executors.

Key Types:

Row:
One converted entity, ready for storage. Columns and values are parallel and keep
the entity's declared field order:

	row := storagemodels.Row{
	    Entity:  "people",
	    Columns: []string{"Id", "FirstName", "Tags"},
	    Values:  []any{int64(1), "Milan", "a;b"},
	}
	v, ok := row.Value("FirstName")

Strategy:
The key generation policy of an entity type: StrategyNone, StrategyCustom or
StrategyStoreManaged. Only the latter two reserve keys.

KeyBlock:
A contiguous range [Start, Start+Count) handed out by one reservation.

These types are storage agnostic; each executor maps a Row to its own wire format.
*/
package storagemodels
