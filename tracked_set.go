/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen"
	"github.com/suparena/entitymapper/registry"
)

// Set tracks entities of type T pending insertion. Items keep the order in
// which they were added, through key assignment and into storage.
//
// A Set is safe for concurrent use. Commits on one Set are serialized.
type Set[T any] struct {
	mu      sync.Mutex
	meta    *registry.EntityMetadata
	gen     idgen.Generator
	exec    datastore.Executor
	logger  *slog.Logger
	pending []*T
}

// SetOption configures a Set.
type SetOption func(*setOptions)

type setOptions struct {
	logger *slog.Logger
}

// WithSetLogger sets the logger of a Set. The default is slog.Default().
func WithSetLogger(logger *slog.Logger) SetOption {
	return func(o *setOptions) {
		o.logger = logger
	}
}

// NewSet creates an empty Set for T. It fails with a MetadataError when T has
// no resolvable key. gen may be nil for entity types that never generate keys.
func NewSet[T any](gen idgen.Generator, exec datastore.Executor, opts ...SetOption) (*Set[T], error) {
	if exec == nil {
		return nil, errors.NewValidationError("exec", "an executor is required")
	}
	meta, err := registry.ResolveFor[T]()
	if err != nil {
		return nil, err
	}

	o := setOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Set[T]{
		meta:   meta,
		gen:    gen,
		exec:   exec,
		logger: o.logger.With("entity", meta.Name),
	}, nil
}

// Metadata returns the resolved mapping of T.
func (s *Set[T]) Metadata() *registry.EntityMetadata {
	return s.meta
}

// Add appends items to the pending batch without inspecting their fields.
// Nil items and items already pending are rejected and nothing is appended.
func (s *Set[T]) Add(items ...*T) error {
	for i, item := range items {
		if item == nil {
			return errors.NewValidationError("items", fmt.Sprintf("item %d is nil", i))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkDistinct(s.pending, items); err != nil {
		return err
	}
	s.pending = append(s.pending, items...)
	return nil
}

// AddRange consumes seq exactly once and appends what it yields.
// If seq yields a nil item or an item already pending nothing is appended.
func (s *Set[T]) AddRange(seq iter.Seq[*T]) error {
	batch, err := collect(seq)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkDistinct(s.pending, batch); err != nil {
		return err
	}
	s.pending = append(s.pending, batch...)
	return nil
}

// Pending returns a copy of the pending batch.
func (s *Set[T]) Pending() []*T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*T, len(s.pending))
	copy(out, s.pending)
	return out
}

// Len returns the number of pending items.
func (s *Set[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Clear discards the pending batch. Keys already assigned to its items are not reclaimed.
func (s *Set[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// checkDistinct rejects items that repeat a pointer of pending or of items itself.
// A repeated pointer would be written twice under one key.
func checkDistinct[T any](pending, items []*T) error {
	seen := make(map[*T]struct{}, len(pending)+len(items))
	for _, item := range pending {
		seen[item] = struct{}{}
	}
	for i, item := range items {
		if _, dup := seen[item]; dup {
			return errors.NewValidationError("items", fmt.Sprintf("item %d is already tracked", i))
		}
		seen[item] = struct{}{}
	}
	return nil
}

// collect copies seq into an owned buffer. seq is ranged over exactly once.
// Nil and repeated items are rejected.
func collect[T any](seq iter.Seq[*T]) ([]*T, error) {
	if seq == nil {
		return nil, nil
	}
	var batch []*T
	var nilAt = -1
	for item := range seq {
		if item == nil && nilAt < 0 {
			nilAt = len(batch)
		}
		batch = append(batch, item)
	}
	if nilAt >= 0 {
		return nil, errors.NewValidationError("items", fmt.Sprintf("item %d is nil", nilAt))
	}
	if err := checkDistinct(nil, batch); err != nil {
		return nil, err
	}
	return batch, nil
}
