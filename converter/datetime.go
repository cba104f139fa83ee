/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// DateTime converts strfmt.DateTime to an RFC3339 string with nanosecond precision.
// The zero DateTime is stored as "" and "" reads back as the zero DateTime.
func DateTime() Converter {
	return Func(
		func(in strfmt.DateTime) (string, error) {
			t := time.Time(in)
			if t.IsZero() {
				return "", nil
			}
			return t.Format(time.RFC3339Nano), nil
		},
		func(in string) (strfmt.DateTime, error) {
			if in == "" {
				return strfmt.DateTime{}, nil
			}
			return strfmt.ParseDateTime(in)
		},
	)
}
