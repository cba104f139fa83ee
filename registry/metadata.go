/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"

	"github.com/suparena/entitymapper/converter"
	"github.com/suparena/entitymapper/storagemodels"
)

// EntityNamer lets an entity type choose its storage name. Types that do not
// implement it are stored under their Go type name.
type EntityNamer interface {
	EntityName() string
}

// EntityMetadata is the resolved, immutable mapping of one entity type.
type EntityMetadata struct {
	// Type is the struct type (never a pointer type).
	Type reflect.Type
	// Name is the storage name, also used as the id generator's entity key.
	Name string
	// Key describes the surrogate key.
	Key *PrimaryKeyMetadata
	// Columns lists every stored field, the key included, in declaration order.
	Columns []ColumnMetadata
}

// ColumnNames returns the column names in declaration order.
func (m *EntityMetadata) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given storage name.
func (m *EntityMetadata) Column(name string) (ColumnMetadata, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnMetadata{}, false
}

// ColumnMetadata maps one struct field to a storage column.
type ColumnMetadata struct {
	Name      string
	Field     string
	Index     []int
	Converter converter.Converter
}

// FieldOf returns the addressable field value of entity, which must be a *T of the resolved type.
func (c ColumnMetadata) FieldOf(entity any) reflect.Value {
	return reflect.ValueOf(entity).Elem().FieldByIndex(c.Index)
}

// PrimaryKeyMetadata describes an entity's surrogate key and its generation strategy.
type PrimaryKeyMetadata struct {
	EntityType reflect.Type
	Column     string
	Field      string
	Strategy   storagemodels.Strategy

	get  func(entity any) int64
	set  func(entity any, v int64)
	fits func(v int64) bool
}

// Get returns the current key of entity, a *T of the resolved type.
func (k *PrimaryKeyMetadata) Get(entity any) int64 {
	return k.get(entity)
}

// Set assigns v to the key of entity. Callers check Fits first.
func (k *PrimaryKeyMetadata) Set(entity any, v int64) {
	k.set(entity, v)
}

// IsDefault reports whether the key of entity still holds the zero value.
func (k *PrimaryKeyMetadata) IsDefault(entity any) bool {
	return k.get(entity) == 0
}

// Fits reports whether v is representable by the key field.
func (k *PrimaryKeyMetadata) Fits(v int64) bool {
	return k.fits(v)
}
