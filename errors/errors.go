/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrMetadata is returned when an entity type has no resolvable key metadata
	ErrMetadata = errors.New("entity metadata unavailable")

	// ErrGeneration is returned when a key block could not be reserved atomically
	ErrGeneration = errors.New("key generation failed")

	// ErrPersistence is returned when storage rejects one or more rows
	ErrPersistence = errors.New("persistence failed")

	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// MetadataError reports an entity type whose key or column metadata cannot be resolved.
type MetadataError struct {
	Type   string
	Reason string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata for %s: %s", e.Type, e.Reason)
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrMetadata
}

// GenerationError wraps a failed key reservation. No keys are assigned when it is returned.
type GenerationError struct {
	EntityKey string
	Count     int64
	Err       error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("reserve %d keys for %q failed", e.Count, e.EntityKey)
	}
	return fmt.Sprintf("reserve %d keys for %q failed: %v", e.Count, e.EntityKey, e.Err)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a storage failure during commit.
// Index is the position of the rejected row in the batch, or -1 when the
// whole bulk operation was rejected. Affected counts rows written before the failure.
type PersistenceError struct {
	Entity   string
	Index    int
	Affected int64
	Err      error
}

func (e *PersistenceError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("bulk insert into %s failed: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("insert into %s failed at row %d (%d rows written): %v", e.Entity, e.Index, e.Affected, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewMetadataError creates a new MetadataError
func NewMetadataError(entityType, reason string) error {
	return &MetadataError{Type: entityType, Reason: reason}
}

// NewGenerationError creates a new GenerationError wrapping cause
func NewGenerationError(entityKey string, count int64, cause error) error {
	return &GenerationError{EntityKey: entityKey, Count: count, Err: cause}
}

// NewPersistenceError creates a new PersistenceError wrapping cause
func NewPersistenceError(entity string, index int, affected int64, cause error) error {
	return &PersistenceError{Entity: entity, Index: index, Affected: affected, Err: cause}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsMetadataError checks if an error is a metadata error
func IsMetadataError(err error) bool {
	return errors.Is(err, ErrMetadata)
}

// IsGenerationError checks if an error is a key generation error
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGeneration)
}

// IsPersistenceError checks if an error is a persistence error
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
