/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"strings"

	"github.com/suparena/entitymapper/errors"
)

// DefaultSeparator is the element separator used by the registered "stringlist" converter.
const DefaultSeparator = ';'

const escape = '\\'

// StringList converts []string to a single delimited string.
//
// A nil slice and an empty slice both encode to "". Decoding "" yields an empty,
// non-nil slice. Separators and backslashes inside elements are escaped with a
// backslash. Empty elements are rejected because they cannot survive a round trip.
func StringList(sep rune) Converter {
	if sep == escape {
		panic("converter: backslash cannot be used as a list separator")
	}
	return Func(
		func(in []string) (string, error) { return encodeList(in, sep) },
		func(in string) ([]string, error) { return decodeList(in, sep), nil },
	)
}

func encodeList(in []string, sep rune) (string, error) {
	var b strings.Builder
	for i, s := range in {
		if s == "" {
			return "", errors.NewValidationError("", "string list elements must not be empty")
		}
		if i > 0 {
			b.WriteRune(sep)
		}
		for _, r := range s {
			if r == sep || r == escape {
				b.WriteRune(escape)
			}
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func decodeList(in string, sep rune) []string {
	out := []string{}
	if in == "" {
		return out
	}
	var cur strings.Builder
	escaped := false
	for _, r := range in {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == escape:
			escaped = true
		case r == sep:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(out, cur.String())
}
