/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sync"

	"github.com/suparena/entitymapper/converter"
)

var (
	convMu     sync.RWMutex
	converters = make(map[string]converter.Converter)
)

func init() {
	RegisterConverter("stringlist", converter.StringList(converter.DefaultSeparator))
	RegisterConverter("datetime", converter.DateTime())
	RegisterConverter("uuid", converter.UUID())
}

// RegisterConverter registers a converter under name, for use with the `conv=<name>` tag option.
// If a converter is already registered under name, it panics to prevent accidental overrides.
func RegisterConverter(name string, c converter.Converter) {
	convMu.Lock()
	defer convMu.Unlock()

	if _, exists := converters[name]; exists {
		panic(fmt.Sprintf("converter registry: converter %q already registered", name))
	}
	converters[name] = c
}

// LookupConverter returns the converter registered under name.
func LookupConverter(name string) (converter.Converter, error) {
	convMu.RLock()
	defer convMu.RUnlock()

	c, ok := converters[name]
	if !ok {
		return nil, fmt.Errorf("converter registry: no converter registered as %q", name)
	}
	return c, nil
}
