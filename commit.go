/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"context"
	"fmt"
	"iter"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/registry"
	"github.com/suparena/entitymapper/storagemodels"
)

// CommitChanges writes the pending batch one row at a time, in order, and
// returns the number of rows written.
//
// Keys are planned once before the first insert. If a row is rejected the
// rows before it stay written and leave the batch; the rejected row and
// everything after it remain pending, keeping the keys they were assigned.
// The returned error is a *errors.PersistenceError naming the failing row.
func (s *Set[T]) CommitChanges(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return 0, nil
	}

	rows, err := s.prepare(ctx, s.pending)
	if err != nil {
		return 0, err
	}

	for i, row := range rows {
		if err := s.exec.ExecuteInsert(ctx, row); err != nil {
			s.pending = append([]*T(nil), s.pending[i:]...)
			s.logger.Warn("row insert failed",
				"row", i,
				"written", i,
				"pending", len(s.pending),
				"error", err)
			return int64(i), errors.NewPersistenceError(s.meta.Name, i, int64(i), err)
		}
	}

	s.pending = nil
	s.logger.Info("changes committed", "strategy", "row", "rows", len(rows))
	return int64(len(rows)), nil
}

// BulkInsert writes the pending batch with a single bulk load and returns the
// number of rows the store reports. The load succeeds or fails as a unit; on
// failure the whole batch remains pending.
func (s *Set[T]) BulkInsert(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return 0, nil
	}

	n, err := s.bulk(ctx, s.pending)
	if err != nil {
		return 0, err
	}
	s.pending = nil
	return n, nil
}

// BulkInsertFrom consumes seq exactly once and bulk loads what it yields.
// The pending batch of the Set is neither used nor changed.
func (s *Set[T]) BulkInsertFrom(ctx context.Context, seq iter.Seq[*T]) (int64, error) {
	batch, err := collect(seq)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulk(ctx, batch)
}

func (s *Set[T]) bulk(ctx context.Context, batch []*T) (int64, error) {
	rows, err := s.prepare(ctx, batch)
	if err != nil {
		return 0, err
	}

	n, err := s.exec.ExecuteBulkInsert(ctx, rows)
	if err != nil {
		s.logger.Warn("bulk insert failed", "rows", len(rows), "error", err)
		return 0, errors.NewPersistenceError(s.meta.Name, -1, 0, err)
	}

	s.logger.Info("changes committed", "strategy", "bulk", "rows", n)
	return n, nil
}

// prepare plans keys for batch and converts every item into a row.
// Nothing is written to storage if it fails.
func (s *Set[T]) prepare(ctx context.Context, batch []*T) ([]storagemodels.Row, error) {
	block, err := planKeys(ctx, s.gen, s.meta, batch)
	if err != nil {
		s.logger.Warn("key planning failed", "items", len(batch), "error", err)
		return nil, err
	}
	if block.Count > 0 {
		s.logger.Debug("keys assigned",
			"start", block.Start,
			"count", block.Count,
			"items", len(batch))
	}

	rows := make([]storagemodels.Row, len(batch))
	for i, item := range batch {
		row, err := buildRow(s.meta, item)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", i, s.meta.Name, err)
		}
		rows[i] = row
	}
	return rows, nil
}

// buildRow reads every column of entity, applying the column's converter.
func buildRow(meta *registry.EntityMetadata, entity any) (storagemodels.Row, error) {
	row := storagemodels.Row{
		Entity:  meta.Name,
		Columns: meta.ColumnNames(),
		Values:  make([]any, len(meta.Columns)),
	}
	for i, col := range meta.Columns {
		v := col.FieldOf(entity).Interface()
		if col.Converter != nil {
			converted, err := col.Converter.Convert(v)
			if err != nil {
				return storagemodels.Row{}, fmt.Errorf("convert column %s: %w", col.Name, err)
			}
			v = converted
		}
		row.Values[i] = v
	}
	return row, nil
}
