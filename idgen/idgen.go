/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package idgen

import (
	"context"
	"fmt"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/storagemodels"
)

// Generator reserves contiguous blocks of surrogate keys.
type Generator interface {
	// Reserve atomically reserves count keys for entityKey and returns the first one.
	// The block [start, start+count) never overlaps a block returned to any other
	// caller for the same entityKey. A count of zero returns (0, nil) without
	// contacting the store.
	Reserve(ctx context.Context, entityKey string, count int64) (int64, error)
}

// CheckCount validates a reservation request. It reports false for an empty
// request, which callers answer without a store round trip.
func CheckCount(entityKey string, count int64) (bool, error) {
	if count < 0 {
		return false, errors.NewValidationError("count", fmt.Sprintf("negative key count %d for %q", count, entityKey))
	}
	if entityKey == "" {
		return false, errors.NewValidationError("entityKey", "entity key is required")
	}
	return count > 0, nil
}

// BlockFromLast converts the counter value after an increment of count into the reserved block.
// Counters store the last issued key, so a fresh counter hands out 1 first.
func BlockFromLast(last, count int64) storagemodels.KeyBlock {
	return storagemodels.KeyBlock{Start: last - count + 1, Count: count}
}
