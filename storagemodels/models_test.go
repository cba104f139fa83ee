/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"reflect"
	"testing"
)

func TestRowAccessors(t *testing.T) {
	row := Row{
		Entity:  "people",
		Columns: []string{"Id", "FirstName", "Nickname"},
		Values:  []any{int64(7), "Milada", nil},
	}

	if v, ok := row.Value("FirstName"); !ok || v != "Milada" {
		t.Errorf("Expected FirstName Milada, got %v (%v)", v, ok)
	}
	if _, ok := row.Value("Missing"); ok {
		t.Error("Missing column should not be found")
	}

	want := map[string]any{"Id": int64(7), "FirstName": "Milada", "Nickname": nil}
	if got := row.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}
}

func TestKeyBlock(t *testing.T) {
	b := KeyBlock{Start: 11, Count: 3}
	if b.End() != 14 {
		t.Errorf("Expected end 14, got %d", b.End())
	}
	if !b.Contains(11) || !b.Contains(13) || b.Contains(14) || b.Contains(10) {
		t.Error("Contains should cover exactly [11, 14)")
	}
	if !b.Overlaps(KeyBlock{Start: 13, Count: 5}) {
		t.Error("Blocks sharing key 13 should overlap")
	}
	if b.Overlaps(KeyBlock{Start: 14, Count: 5}) {
		t.Error("Adjacent blocks should not overlap")
	}
	if b.Overlaps(KeyBlock{Start: 12}) {
		t.Error("An empty block overlaps nothing")
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"", StrategyNone},
		{"none", StrategyNone},
		{"custom", StrategyCustom},
		{"store", StrategyStoreManaged},
		{"storemanaged", StrategyStoreManaged},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseStrategy("uuid"); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}
