/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Executor for testing
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/storagemodels"
)

// DataStore is a mock implementation of datastore.Executor that keeps rows in insertion order
type DataStore struct {
	mu          sync.RWMutex
	rows        map[string][]storagemodels.Row
	unique      map[string]string
	insertError error
	failAt      int
	bulkError   error
	insertCalls int
	bulkCalls   int
}

// New creates a new mock DataStore
func New() *DataStore {
	return &DataStore{
		rows:   make(map[string][]storagemodels.Row),
		unique: make(map[string]string),
		failAt: -1,
	}
}

// WithUniqueColumn rejects rows of entity that repeat a value of column
func (m *DataStore) WithUniqueColumn(entity, column string) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unique[entity] = column
	return m
}

// WithInsertError makes every ExecuteInsert operation return err
func (m *DataStore) WithInsertError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertError = err
	m.failAt = -1
	return m
}

// WithInsertErrorAt makes the n-th ExecuteInsert call (0-based) return err
func (m *DataStore) WithInsertErrorAt(n int, err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertError = err
	m.failAt = n
	return m
}

// WithBulkError makes ExecuteBulkInsert operations return err
func (m *DataStore) WithBulkError(err error) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulkError = err
	return m
}

// ExecuteInsert stores one row
func (m *DataStore) ExecuteInsert(ctx context.Context, row storagemodels.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := m.insertCalls
	m.insertCalls++

	if m.insertError != nil && (m.failAt < 0 || m.failAt == call) {
		return m.insertError
	}
	if err := m.checkUnique(row.Entity, []storagemodels.Row{row}); err != nil {
		return err
	}

	m.rows[row.Entity] = append(m.rows[row.Entity], cloneRow(row))
	return nil
}

// ExecuteBulkInsert stores all rows or none
func (m *DataStore) ExecuteBulkInsert(ctx context.Context, rows []storagemodels.Row) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bulkCalls++

	if m.bulkError != nil {
		return 0, m.bulkError
	}

	byEntity := make(map[string][]storagemodels.Row)
	for _, r := range rows {
		byEntity[r.Entity] = append(byEntity[r.Entity], r)
	}
	for entity, batch := range byEntity {
		if err := m.checkUnique(entity, batch); err != nil {
			return 0, err
		}
	}

	for _, r := range rows {
		m.rows[r.Entity] = append(m.rows[r.Entity], cloneRow(r))
	}
	return int64(len(rows)), nil
}

// checkUnique verifies batch against stored rows and itself. Callers hold m.mu.
func (m *DataStore) checkUnique(entity string, batch []storagemodels.Row) error {
	column, ok := m.unique[entity]
	if !ok {
		return nil
	}

	seen := make(map[any]bool)
	for _, r := range m.rows[entity] {
		if v, ok := r.Value(column); ok {
			seen[v] = true
		}
	}
	for _, r := range batch {
		v, ok := r.Value(column)
		if !ok {
			return errors.NewValidationError(column, "missing unique column")
		}
		if seen[v] {
			return errors.NewAlreadyExistsError(entity, fmt.Sprintf("%v", v))
		}
		seen[v] = true
	}
	return nil
}

// Helper methods for testing

// Rows returns a copy of the rows stored for entity, in insertion order
func (m *DataStore) Rows(entity string) []storagemodels.Row {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]storagemodels.Row, len(m.rows[entity]))
	for i, r := range m.rows[entity] {
		out[i] = cloneRow(r)
	}
	return out
}

// Count returns the number of rows stored for entity
func (m *DataStore) Count(entity string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows[entity])
}

// InsertCalls returns the number of ExecuteInsert calls
func (m *DataStore) InsertCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.insertCalls
}

// BulkCalls returns the number of ExecuteBulkInsert calls
func (m *DataStore) BulkCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bulkCalls
}

// Clear removes all rows and failure injections
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[string][]storagemodels.Row)
	m.insertError = nil
	m.bulkError = nil
	m.failAt = -1
}

func cloneRow(r storagemodels.Row) storagemodels.Row {
	return storagemodels.Row{
		Entity:  r.Entity,
		Columns: append([]string(nil), r.Columns...),
		Values:  append([]any(nil), r.Values...),
	}
}
