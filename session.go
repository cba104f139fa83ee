/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen"
	"github.com/suparena/entitymapper/registry"
)

// Session hands out one tracked Set per entity type and routes each entity
// to its executor. It is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	gen       idgen.Generator
	exec      datastore.Executor
	executors map[string]datastore.Executor
	sets      map[reflect.Type]any
	logger    *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger passed on to every Set of the session.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithExecutor routes entity to exec instead of the session's default executor.
func WithExecutor(entity string, exec datastore.Executor) SessionOption {
	return func(s *Session) {
		s.executors[entity] = exec
	}
}

// NewSession creates a session. gen may be nil when no entity generates keys;
// exec is the default executor and may be nil if every entity is routed.
func NewSession(gen idgen.Generator, exec datastore.Executor, opts ...SessionOption) *Session {
	s := &Session{
		gen:       gen,
		exec:      exec,
		executors: make(map[string]datastore.Executor),
		sets:      make(map[reflect.Type]any),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterExecutor routes entity to exec. Routes cannot be replaced.
func (s *Session) RegisterExecutor(entity string, exec datastore.Executor) error {
	if exec == nil {
		return errors.NewValidationError("exec", "executor is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.executors[entity]; exists {
		return fmt.Errorf("executor for entity %q already registered", entity)
	}
	s.executors[entity] = exec
	return nil
}

// Executor returns the executor serving entity.
func (s *Session) Executor(entity string) (datastore.Executor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.executorLocked(entity)
}

func (s *Session) executorLocked(entity string) (datastore.Executor, error) {
	if exec, ok := s.executors[entity]; ok {
		return exec, nil
	}
	if s.exec == nil {
		return nil, fmt.Errorf("no executor for entity %q", entity)
	}
	return s.exec, nil
}

// Entities returns the storage names of the entity types tracked so far, sorted.
func (s *Session) Entities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sets))
	for typ := range s.sets {
		meta, err := registry.Resolve(typ)
		if err == nil {
			names = append(names, meta.Name)
		}
	}
	sort.Strings(names)
	return names
}

// SetFor returns the tracked Set of T in s, creating it on first use.
func SetFor[T any](s *Session) (*Set[T], error) {
	typ := reflect.TypeFor[T]()

	s.mu.RLock()
	if set, ok := s.sets[typ]; ok {
		s.mu.RUnlock()
		return set.(*Set[T]), nil
	}
	s.mu.RUnlock()

	meta, err := registry.ResolveFor[T]()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if set, ok := s.sets[typ]; ok {
		return set.(*Set[T]), nil
	}

	exec, err := s.executorLocked(meta.Name)
	if err != nil {
		return nil, err
	}
	set, err := NewSet[T](s.gen, exec, WithSetLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.sets[typ] = set
	return set, nil
}
