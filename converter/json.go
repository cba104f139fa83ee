/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/suparena/entitymapper/errors"
)

type jsonConverter[T any] struct{}

// JSON converts a *T to its JSON text. A nil pointer is stored as nil and read back as a nil *T.
// Convert also accepts a T value; ConvertBack always yields *T.
func JSON[T any]() Converter {
	return jsonConverter[T]{}
}

func (jsonConverter[T]) Convert(v any) (any, error) {
	var target any
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case *T:
		if tv == nil {
			return nil, nil
		}
		target = tv
	case T:
		target = tv
	default:
		var zero T
		return nil, errors.NewValidationError("", fmt.Sprintf("expected *%T, got %T", zero, v))
	}

	b, err := json.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("json convert: %w", err)
	}
	return string(b), nil
}

func (jsonConverter[T]) ConvertBack(v any) (any, error) {
	var data []byte
	switch tv := v.(type) {
	case nil:
		return (*T)(nil), nil
	case string:
		data = []byte(tv)
	case []byte:
		data = tv
	default:
		return nil, errors.NewValidationError("", fmt.Sprintf("expected JSON text, got %T", v))
	}
	if len(data) == 0 {
		return (*T)(nil), nil
	}

	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("json convert back: %w", err)
	}
	return out, nil
}
