/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"fmt"

	"github.com/suparena/entitymapper/errors"
)

// Converter translates a property between its domain and storage representations.
// Implementations must be deterministic and round-trip stable for every value
// Convert accepts: ConvertBack(Convert(v)) is equivalent to v.
type Converter interface {
	// Convert maps a domain value to its storage representation.
	Convert(v any) (any, error)
	// ConvertBack maps a storage value to its domain representation.
	ConvertBack(v any) (any, error)
}

type funcConverter[D, S any] struct {
	to   func(D) (S, error)
	from func(S) (D, error)
}

// Func builds a Converter from a typed pair of transforms.
// A nil input is passed to the transform as the zero value of its type.
func Func[D, S any](to func(D) (S, error), from func(S) (D, error)) Converter {
	return &funcConverter[D, S]{to: to, from: from}
}

func (c *funcConverter[D, S]) Convert(v any) (any, error) {
	d, err := as[D](v)
	if err != nil {
		return nil, err
	}
	return c.to(d)
}

func (c *funcConverter[D, S]) ConvertBack(v any) (any, error) {
	s, err := as[S](v)
	if err != nil {
		return nil, err
	}
	return c.from(s)
}

// as asserts v to T, treating nil as the zero T.
func as[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.NewValidationError("", fmt.Sprintf("expected %T, got %T", zero, v))
	}
	return t, nil
}
