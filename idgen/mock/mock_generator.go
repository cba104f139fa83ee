/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-process implementation of idgen.Generator for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen"
)

// Call records one store round trip made by Reserve
type Call struct {
	EntityKey string
	Count     int64
	Start     int64
}

// Generator is a mock implementation of idgen.Generator backed by an in-memory counter
type Generator struct {
	mu         sync.Mutex
	counters   map[string]int64
	calls      []Call
	reserveErr error
	badStart   bool
}

// New creates a new mock Generator whose counters start at zero
func New() *Generator {
	return &Generator{
		counters: make(map[string]int64),
	}
}

// WithLast seeds the counter of entityKey, so the next reservation starts at last+1
func (g *Generator) WithLast(entityKey string, last int64) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[entityKey] = last
	return g
}

// WithReserveError makes Reserve operations fail with err
func (g *Generator) WithReserveError(err error) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reserveErr = err
	return g
}

// WithBrokenBlocks makes Reserve return a non-positive start without consuming keys,
// simulating a store that broke its reservation semantics
func (g *Generator) WithBrokenBlocks() *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.badStart = true
	return g
}

// Reserve reserves count keys for entityKey
func (g *Generator) Reserve(ctx context.Context, entityKey string, count int64) (int64, error) {
	proceed, err := idgen.CheckCount(entityKey, count)
	if err != nil || !proceed {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, errors.NewGenerationError(entityKey, count, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.reserveErr != nil {
		g.calls = append(g.calls, Call{EntityKey: entityKey, Count: count})
		return 0, errors.NewGenerationError(entityKey, count, g.reserveErr)
	}
	if g.badStart {
		g.calls = append(g.calls, Call{EntityKey: entityKey, Count: count})
		return 0, nil
	}

	g.counters[entityKey] += count
	block := idgen.BlockFromLast(g.counters[entityKey], count)
	g.calls = append(g.calls, Call{EntityKey: entityKey, Count: count, Start: block.Start})
	return block.Start, nil
}

// Helper methods for testing

// Calls returns a copy of the recorded store round trips
func (g *Generator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}

// CallCount returns the number of store round trips
func (g *Generator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// Last returns the last key issued for entityKey
func (g *Generator) Last(entityKey string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counters[entityKey]
}
