/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	stderrors "errors"
	"sort"
	"sync"
	"testing"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen/mock"
	"github.com/suparena/entitymapper/storagemodels"
)

func TestMockGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("ContiguousBlocks", func(t *testing.T) {
		gen := mock.New()

		start, err := gen.Reserve(ctx, "Person", 3)
		if err != nil {
			t.Fatalf("Reserve failed: %v", err)
		}
		if start != 1 {
			t.Fatalf("Expected first block to start at 1, got %d", start)
		}

		start, err = gen.Reserve(ctx, "Person", 2)
		if err != nil {
			t.Fatalf("Reserve failed: %v", err)
		}
		if start != 4 {
			t.Fatalf("Expected second block to start at 4, got %d", start)
		}

		start, err = gen.Reserve(ctx, "Order", 1)
		if err != nil {
			t.Fatalf("Reserve failed: %v", err)
		}
		if start != 1 {
			t.Fatalf("Counters are per entity key, expected 1, got %d", start)
		}
	})

	t.Run("ZeroCountIsNoop", func(t *testing.T) {
		gen := mock.New()

		start, err := gen.Reserve(ctx, "Person", 0)
		if err != nil || start != 0 {
			t.Fatalf("Expected (0, nil), got (%d, %v)", start, err)
		}
		if gen.CallCount() != 0 {
			t.Fatalf("Zero count must not reach the store, got %d calls", gen.CallCount())
		}
	})

	t.Run("SeededCounter", func(t *testing.T) {
		gen := mock.New().WithLast("Person", 100)

		start, err := gen.Reserve(ctx, "Person", 1)
		if err != nil {
			t.Fatalf("Reserve failed: %v", err)
		}
		if start != 101 {
			t.Fatalf("Expected 101, got %d", start)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		cause := stderrors.New("store unreachable")
		gen := mock.New().WithReserveError(cause)

		_, err := gen.Reserve(ctx, "Person", 2)
		if !errors.IsGenerationError(err) {
			t.Fatalf("Expected generation error, got: %v", err)
		}
		if !stderrors.Is(err, cause) {
			t.Fatalf("Expected wrapped cause, got: %v", err)
		}
		if gen.Last("Person") != 0 {
			t.Fatal("A failed reservation must not consume keys")
		}
	})

	t.Run("ConcurrentReservationsNeverOverlap", func(t *testing.T) {
		gen := mock.New()

		const workers = 16
		const perWorker = 50

		var mu sync.Mutex
		var blocks []storagemodels.KeyBlock
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					count := int64(w%3 + 1)
					start, err := gen.Reserve(ctx, "Person", count)
					if err != nil {
						t.Errorf("Reserve failed: %v", err)
						return
					}
					mu.Lock()
					blocks = append(blocks, storagemodels.KeyBlock{Start: start, Count: count})
					mu.Unlock()
				}
			}(w)
		}
		wg.Wait()

		sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })
		next := int64(1)
		for _, b := range blocks {
			if b.Start != next {
				t.Fatalf("Expected block at %d, got %+v", next, b)
			}
			next = b.End()
		}
		if gen.Last("Person") != next-1 {
			t.Errorf("Expected counter %d, got %d", next-1, gen.Last("Person"))
		}
	})
}
