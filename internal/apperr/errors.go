// Package apperr defines the error kinds the store layer reports. Handlers
// map each kind to its own HTTP status, so no two kinds may collapse into
// one representation.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity id did not resolve.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// DuplicateNameError reports a collision on a uniqueness-constrained name.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Name)
}

func DuplicateName(entity, name string) error {
	return &DuplicateNameError{Entity: entity, Name: name}
}

func IsDuplicateName(err error) bool {
	var target *DuplicateNameError
	return errors.As(err, &target)
}

// DuplicateAssociationError reports that a composite-key association row
// already exists for the given pair.
type DuplicateAssociationError struct {
	Entity string
}

func (e *DuplicateAssociationError) Error() string {
	return fmt.Sprintf("%s already exists", e.Entity)
}

func DuplicateAssociation(entity string) error {
	return &DuplicateAssociationError{Entity: entity}
}

func IsDuplicateAssociation(err error) bool {
	var target *DuplicateAssociationError
	return errors.As(err, &target)
}

// ReferentialIntegrityError reports a hard delete blocked by a row that is
// still required elsewhere.
type ReferentialIntegrityError struct {
	Entity string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s is still referenced and cannot be removed", e.Entity)
}

func ReferentialIntegrity(entity string) error {
	return &ReferentialIntegrityError{Entity: entity}
}

func IsReferentialIntegrity(err error) bool {
	var target *ReferentialIntegrityError
	return errors.As(err, &target)
}

// ValidationError reports a required-field or business-rule violation caught
// before reaching the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
