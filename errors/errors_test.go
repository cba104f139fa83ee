/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMetadataError(t *testing.T) {
	err := NewMetadataError("Person", "no key field")

	expected := "metadata for Person: no key field"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrMetadata) {
		t.Error("MetadataError should match ErrMetadata")
	}

	if !IsMetadataError(err) {
		t.Error("IsMetadataError should return true for MetadataError")
	}
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewGenerationError("Person", 3, cause)

	expected := `reserve 3 keys for "Person" failed: connection refused`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsGenerationError(err) {
		t.Error("IsGenerationError should return true for GenerationError")
	}

	if !errors.Is(err, cause) {
		t.Error("GenerationError should unwrap to its cause")
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("unique violation")

	tests := []struct {
		name     string
		index    int
		affected int64
		expected string
	}{
		{
			name:     "row",
			index:    2,
			affected: 2,
			expected: "insert into people failed at row 2 (2 rows written): unique violation",
		},
		{
			name:     "bulk",
			index:    -1,
			affected: 0,
			expected: "bulk insert into people failed: unique violation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPersistenceError("people", tt.index, tt.affected, cause)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsPersistenceError(err) {
				t.Error("IsPersistenceError should return true for PersistenceError")
			}

			if !errors.Is(err, cause) {
				t.Error("PersistenceError should unwrap to its cause")
			}
		})
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("Product", "ABC")

	expected := `Product with key "ABC" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "tags",
			message:  "empty element",
			expected: `validation failed for field "tags": empty element`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "negative count",
			expected: "validation failed: negative count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewPersistenceError("people", 0, 0, NewAlreadyExistsError("people", "1"))
	wrapped := fmt.Errorf("commit failed: %w", original)

	if !IsPersistenceError(wrapped) {
		t.Error("Wrapped PersistenceError should still match ErrPersistence")
	}

	if !IsAlreadyExists(wrapped) {
		t.Error("IsAlreadyExists should see through PersistenceError")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrMetadata,
		ErrGeneration,
		ErrPersistence,
		ErrAlreadyExists,
		ErrInvalidInput,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
