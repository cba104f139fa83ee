/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/singleflight"

	"github.com/suparena/entitymapper/converter"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/storagemodels"
)

// TagName is the struct tag read by the resolver.
//
//	type Person struct {
//	    ID        int64    `entity:"Id,key,gen=custom"`
//	    FirstName string
//	    Tags      []string `entity:"Tags,conv=stringlist"`
//	    Scratch   string   `entity:"-"`
//	}
const TagName = "entity"

type keyAccessor struct {
	get  func(any) int64
	set  func(any, int64)
	fits func(int64) bool
}

var (
	metadataCache sync.Map // reflect.Type -> *EntityMetadata
	resolveGroup  singleflight.Group
	typeIDs       sync.Map // reflect.Type -> string
	nextTypeID    atomic.Uint64

	overrideMu   sync.RWMutex
	keyAccessors = make(map[reflect.Type]keyAccessor)
	bindings     = make(map[reflect.Type]map[string]converter.Converter)
)

// ResolveFor returns the metadata of entity type T.
func ResolveFor[T any]() (*EntityMetadata, error) {
	return Resolve(reflect.TypeFor[T]())
}

// Resolve returns the metadata of the struct type t (or the type t points to).
// The result is computed once per type and cached process-wide; concurrent
// first calls share one resolution.
func Resolve(t reflect.Type) (*EntityMetadata, error) {
	if t == nil {
		return nil, errors.NewMetadataError("<nil>", "no entity type")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if m, ok := metadataCache.Load(t); ok {
		return m.(*EntityMetadata), nil
	}

	v, err, _ := resolveGroup.Do(typeKey(t), func() (any, error) {
		// Registrations take the write lock, so they either land before this
		// resolution or observe its cached result.
		overrideMu.RLock()
		defer overrideMu.RUnlock()

		if m, ok := metadataCache.Load(t); ok {
			return m, nil
		}
		m, err := resolve(t)
		if err != nil {
			return nil, err
		}
		metadataCache.Store(t, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*EntityMetadata), nil
}

// RegisterKeyAccessor replaces reflective key access for T with typed accessors,
// such as generated code. The key column and strategy still come from T's tags.
func RegisterKeyAccessor[T any, K constraints.Integer](get func(*T) K, set func(*T, K)) error {
	t := reflect.TypeFor[T]()

	overrideMu.Lock()
	defer overrideMu.Unlock()

	if _, resolved := metadataCache.Load(t); resolved {
		return fmt.Errorf("registry: %s already resolved, register accessors before first use", t)
	}
	keyAccessors[t] = keyAccessor{
		get: func(entity any) int64 { return int64(get(entity.(*T))) },
		set: func(entity any, v int64) { set(entity.(*T), K(v)) },
		fits: func(v int64) bool {
			k := K(v)
			return int64(k) == v && (k >= 0) == (v >= 0)
		},
	}
	return nil
}

// BindConverter binds c to column of T, overriding any `conv=` tag option.
func BindConverter[T any](column string, c converter.Converter) error {
	t := reflect.TypeFor[T]()

	overrideMu.Lock()
	defer overrideMu.Unlock()

	if _, resolved := metadataCache.Load(t); resolved {
		return fmt.Errorf("registry: %s already resolved, bind converters before first use", t)
	}
	if bindings[t] == nil {
		bindings[t] = make(map[string]converter.Converter)
	}
	bindings[t][column] = c
	return nil
}

// typeKey returns a process-unique key for t. Type names are not unique:
// function-local types of the same package can share one.
func typeKey(t reflect.Type) string {
	if id, ok := typeIDs.Load(t); ok {
		return id.(string)
	}
	id, _ := typeIDs.LoadOrStore(t, strconv.FormatUint(nextTypeID.Add(1), 10))
	return id.(string)
}

type tagOptions struct {
	column   string
	skip     bool
	key      bool
	strategy storagemodels.Strategy
	conv     string
}

func parseTag(field reflect.StructField) (tagOptions, error) {
	opts := tagOptions{column: field.Name}
	tag, ok := field.Tag.Lookup(TagName)
	if !ok {
		return opts, nil
	}
	if tag == "-" {
		opts.skip = true
		return opts, nil
	}

	parts := strings.Split(tag, ",")
	if name := strings.TrimSpace(parts[0]); name != "" {
		opts.column = name
	}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		switch {
		case p == "key":
			opts.key = true
		case strings.HasPrefix(p, "gen="):
			s, err := storagemodels.ParseStrategy(strings.TrimPrefix(p, "gen="))
			if err != nil {
				return opts, err
			}
			opts.strategy = s
		case strings.HasPrefix(p, "conv="):
			opts.conv = strings.TrimPrefix(p, "conv=")
		case p == "":
		default:
			return opts, fmt.Errorf("unknown tag option %q", p)
		}
	}
	if opts.strategy != storagemodels.StrategyNone && !opts.key {
		return opts, fmt.Errorf("gen= is only valid on the key field")
	}
	return opts, nil
}

// resolve builds the metadata of t. Callers hold overrideMu.
func resolve(t reflect.Type) (*EntityMetadata, error) {
	typeName := t.String()
	if t.Kind() != reflect.Struct {
		return nil, errors.NewMetadataError(typeName, "entity type must be a struct")
	}

	accessor, hasAccessor := keyAccessors[t]
	bound := bindings[t]

	meta := &EntityMetadata{Type: t, Name: t.Name()}
	if namer, ok := reflect.New(t).Interface().(EntityNamer); ok {
		meta.Name = namer.EntityName()
	}

	seen := make(map[string]bool)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		opts, err := parseTag(f)
		if err != nil {
			return nil, errors.NewMetadataError(typeName, fmt.Sprintf("field %s: %v", f.Name, err))
		}
		if opts.skip {
			continue
		}
		if viaPointer(t, f.Index) {
			return nil, errors.NewMetadataError(typeName,
				fmt.Sprintf("field %s is promoted through an embedded pointer, embed the struct by value", f.Name))
		}
		if seen[opts.column] {
			return nil, errors.NewMetadataError(typeName, fmt.Sprintf("duplicate column %q", opts.column))
		}
		seen[opts.column] = true

		col := ColumnMetadata{Name: opts.column, Field: f.Name, Index: f.Index}
		if opts.conv != "" {
			c, err := LookupConverter(opts.conv)
			if err != nil {
				return nil, errors.NewMetadataError(typeName, fmt.Sprintf("field %s: %v", f.Name, err))
			}
			col.Converter = c
		}
		if c, ok := bound[opts.column]; ok {
			col.Converter = c
		}

		if opts.key {
			if meta.Key != nil {
				return nil, errors.NewMetadataError(typeName, "more than one key field")
			}
			if col.Converter != nil {
				return nil, errors.NewMetadataError(typeName, "key field cannot have a converter")
			}
			key, err := newKeyMetadata(t, f, opts)
			if err != nil {
				return nil, errors.NewMetadataError(typeName, err.Error())
			}
			if hasAccessor {
				key.get, key.set, key.fits = accessor.get, accessor.set, accessor.fits
			}
			meta.Key = key
		}
		meta.Columns = append(meta.Columns, col)
	}

	for column := range bound {
		if !seen[column] {
			return nil, errors.NewMetadataError(typeName, fmt.Sprintf("converter bound to unknown column %q", column))
		}
	}
	if meta.Key == nil {
		return nil, errors.NewMetadataError(typeName, "entity declares no key property")
	}
	return meta, nil
}

// viaPointer reports whether the field at index is reached through an embedded pointer.
func viaPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Pointer {
			return true
		}
	}
	return false
}

func newKeyMetadata(t reflect.Type, f reflect.StructField, opts tagOptions) (*PrimaryKeyMetadata, error) {
	key := &PrimaryKeyMetadata{
		EntityType: t,
		Column:     opts.column,
		Field:      f.Name,
		Strategy:   opts.strategy,
	}
	index := f.Index

	switch f.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		key.get = func(entity any) int64 {
			return reflect.ValueOf(entity).Elem().FieldByIndex(index).Int()
		}
		key.set = func(entity any, v int64) {
			reflect.ValueOf(entity).Elem().FieldByIndex(index).SetInt(v)
		}
		key.fits = func(v int64) bool {
			return !reflect.Zero(f.Type).OverflowInt(v)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		key.get = func(entity any) int64 {
			return int64(reflect.ValueOf(entity).Elem().FieldByIndex(index).Uint())
		}
		key.set = func(entity any, v int64) {
			reflect.ValueOf(entity).Elem().FieldByIndex(index).SetUint(uint64(v))
		}
		key.fits = func(v int64) bool {
			return v >= 0 && !reflect.Zero(f.Type).OverflowUint(uint64(v))
		}
	default:
		return nil, fmt.Errorf("key field %s must be an integer, got %s", f.Name, f.Type)
	}
	return key, nil
}
