/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "fmt"

// Strategy is the surrogate key generation policy of an entity type.
type Strategy int

const (
	// StrategyNone never generates keys; key values are stored as provided.
	StrategyNone Strategy = iota
	// StrategyCustom reserves keys from the configured id generator.
	StrategyCustom
	// StrategyStoreManaged reserves keys from the id generator on behalf of the store.
	StrategyStoreManaged
)

// String returns the tag spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyCustom:
		return "custom"
	case StrategyStoreManaged:
		return "store"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Generates reports whether the strategy requires keys from the id generator.
func (s Strategy) Generates() bool {
	return s == StrategyCustom || s == StrategyStoreManaged
}

// ParseStrategy parses the tag spelling of a strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "none":
		return StrategyNone, nil
	case "custom":
		return StrategyCustom, nil
	case "store", "storemanaged":
		return StrategyStoreManaged, nil
	default:
		return StrategyNone, fmt.Errorf("unknown generation strategy %q", s)
	}
}

// Row is one converted entity ready to be handed to storage.
// Columns and Values are parallel and follow the entity's declared field order.
type Row struct {
	// Entity is the storage name of the entity type (table name).
	Entity string
	// Columns are the storage column names.
	Columns []string
	// Values are the storage representations, after forward conversion.
	Values []any
}

// Value returns the value stored under column.
func (r Row) Value(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Map returns the row as a column -> value map.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		m[c] = r.Values[i]
	}
	return m
}

// KeyBlock is a contiguous range of reserved keys: [Start, Start+Count).
type KeyBlock struct {
	Start int64
	Count int64
}

// End returns the first value past the block.
func (b KeyBlock) End() int64 {
	return b.Start + b.Count
}

// Contains reports whether v falls inside the block.
func (b KeyBlock) Contains(v int64) bool {
	return v >= b.Start && v < b.End()
}

// Overlaps reports whether the two blocks share at least one key.
func (b KeyBlock) Overlaps(o KeyBlock) bool {
	if b.Count == 0 || o.Count == 0 {
		return false
	}
	return b.Start < o.End() && o.Start < b.End()
}
