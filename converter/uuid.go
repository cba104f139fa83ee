/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"github.com/google/uuid"
)

// UUID converts uuid.UUID to its canonical string form. uuid.Nil maps to "".
func UUID() Converter {
	return Func(
		func(in uuid.UUID) (string, error) {
			if in == uuid.Nil {
				return "", nil
			}
			return in.String(), nil
		},
		func(in string) (uuid.UUID, error) {
			if in == "" {
				return uuid.Nil, nil
			}
			return uuid.Parse(in)
		},
	)
}
