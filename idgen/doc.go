/*
Package idgen defines the surrogate key reservation capability used by the
key generation planner.

	type Generator interface {
	    Reserve(ctx context.Context, entityKey string, count int64) (int64, error)
	}

Reserve hands out the block [start, start+count). Every backend performs the
reservation as one atomic increment-and-fetch on an externally persisted counter
that holds the last issued key, so concurrent callers in any number of processes
never receive overlapping blocks:

  - ddb:   UpdateItem "ADD #v :n" returning UPDATED_NEW
  - pg:    single-statement upsert "... last_value + excluded.last_value RETURNING last_value"
  - redis: INCRBY
  - mock:  in-process counter for tests

A zero count is answered locally. Provisioning the counter table or keyspace is
left to the caller. Reserved keys are never returned to the store; a block that is
only partly used because a later commit step failed stays retired.
*/
package idgen
