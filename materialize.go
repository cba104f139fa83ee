/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"fmt"
	"math"
	"reflect"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/registry"
	"github.com/suparena/entitymapper/storagemodels"
)

// Materialize builds a *T from a stored row, applying each column's inverse
// conversion. Columns unknown to T are ignored; columns missing from the row
// keep their zero value.
func Materialize[T any](row storagemodels.Row) (*T, error) {
	meta, err := registry.ResolveFor[T]()
	if err != nil {
		return nil, err
	}
	if len(row.Columns) != len(row.Values) {
		return nil, errors.NewValidationError("row",
			fmt.Sprintf("%d columns but %d values", len(row.Columns), len(row.Values)))
	}

	entity := new(T)
	for i, name := range row.Columns {
		col, ok := meta.Column(name)
		if !ok {
			continue
		}
		v := row.Values[i]
		if col.Converter != nil {
			if v, err = col.Converter.ConvertBack(v); err != nil {
				return nil, fmt.Errorf("convert back column %s: %w", name, err)
			}
		}
		if err := assign(col.FieldOf(entity), v); err != nil {
			return nil, errors.NewValidationError(name, err.Error())
		}
	}
	return entity, nil
}

// MaterializeAll builds one *T per row, in order.
func MaterializeAll[T any](rows []storagemodels.Row) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for i, row := range rows {
		e, err := Materialize[T](row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func assign(field reflect.Value, v any) error {
	if v == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	rv := reflect.ValueOf(v)
	ft := field.Type()
	switch {
	case rv.Type().AssignableTo(ft):
		field.Set(rv)
	case rv.Kind() == reflect.Pointer && rv.Type().Elem().AssignableTo(ft):
		if rv.IsNil() {
			field.Set(reflect.Zero(ft))
		} else {
			field.Set(rv.Elem())
		}
	case isNumeric(rv.Kind()) && isNumeric(ft.Kind()):
		if err := checkRepresentable(rv, ft); err != nil {
			return err
		}
		field.Set(rv.Convert(ft))
	default:
		return fmt.Errorf("cannot assign %T to field of type %s", v, ft)
	}
	return nil
}

// checkRepresentable reports an error when converting rv to ft would change its value.
func checkRepresentable(rv reflect.Value, ft reflect.Type) error {
	target := reflect.New(ft).Elem()
	fail := func() error {
		return fmt.Errorf("value %v of type %s does not fit field of type %s", rv.Interface(), rv.Type(), ft)
	}

	switch {
	case target.CanInt():
		switch {
		case rv.CanInt():
			if target.OverflowInt(rv.Int()) {
				return fail()
			}
		case rv.CanUint():
			if u := rv.Uint(); u > math.MaxInt64 || target.OverflowInt(int64(u)) {
				return fail()
			}
		case rv.CanFloat():
			f := rv.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f)) {
				return fail()
			}
		}
	case target.CanUint():
		switch {
		case rv.CanInt():
			if i := rv.Int(); i < 0 || target.OverflowUint(uint64(i)) {
				return fail()
			}
		case rv.CanUint():
			if target.OverflowUint(rv.Uint()) {
				return fail()
			}
		case rv.CanFloat():
			f := rv.Float()
			if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f)) {
				return fail()
			}
		}
	case target.CanFloat():
		if rv.CanFloat() && target.OverflowFloat(rv.Float()) {
			return fail()
		}
	}
	return nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
