/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen"
	"github.com/suparena/entitymapper/registry"
	"github.com/suparena/entitymapper/storagemodels"
)

var errNoGenerator = stderrors.New("no id generator configured")

// planKeys assigns surrogate keys to the items of batch whose key is still zero.
// It makes one pass over batch and at most one Reserve call sized to the number
// of distinct items needing a key. On error no item is modified.
func planKeys[T any](ctx context.Context, gen idgen.Generator, meta *registry.EntityMetadata, batch []*T) (storagemodels.KeyBlock, error) {
	key := meta.Key
	if !key.Strategy.Generates() {
		return storagemodels.KeyBlock{}, nil
	}

	var needing []*T
	seen := make(map[*T]struct{}, len(batch))
	for _, item := range batch {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		if key.IsDefault(item) {
			needing = append(needing, item)
		}
	}
	count := int64(len(needing))
	if count == 0 {
		return storagemodels.KeyBlock{}, nil
	}
	if gen == nil {
		return storagemodels.KeyBlock{}, errors.NewGenerationError(meta.Name, count, errNoGenerator)
	}

	start, err := gen.Reserve(ctx, meta.Name, count)
	if err != nil {
		if errors.IsGenerationError(err) {
			return storagemodels.KeyBlock{}, err
		}
		return storagemodels.KeyBlock{}, errors.NewGenerationError(meta.Name, count, err)
	}

	block := storagemodels.KeyBlock{Start: start, Count: count}
	if block.Start < 1 {
		return storagemodels.KeyBlock{}, errors.NewGenerationError(meta.Name, count,
			fmt.Errorf("generator returned invalid block start %d", block.Start))
	}
	if last := block.End() - 1; last < block.Start || !key.Fits(last) {
		return storagemodels.KeyBlock{}, errors.NewGenerationError(meta.Name, count,
			fmt.Errorf("block [%d, %d) overflows key field %s", block.Start, block.End(), key.Field))
	}

	next := block.Start
	for _, item := range needing {
		key.Set(item, next)
		next++
	}
	return block, nil
}
