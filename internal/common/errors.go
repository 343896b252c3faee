package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crichq/pavilion/pkg/responses"
	"github.com/gin-gonic/gin"
)

// Domain error taxonomy. Services return these; controllers map them to
// HTTP status codes without inspecting message text.

// NotFoundError signals a referenced id that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError signals malformed or out-of-range input, rejected before
// any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// StateError signals an operation attempted against an entity in the wrong
// lifecycle state. No partial mutation occurs.
type StateError struct {
	Entity    string
	State     string
	Attempted string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s: %s is %s", e.Attempted, e.Entity, e.State)
}

// ConflictError signals a uniqueness or replay violation, e.g. a duplicate
// delivery key or a second active contract.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func NewNotFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func NewState(entity, state, attempted string) error {
	return &StateError{Entity: entity, State: state, Attempted: attempted}
}

func NewConflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// RespondError maps a domain error onto the standard JSON error envelope.
func RespondError(c *gin.Context, err error) {
	var nf *NotFoundError
	var ve *ValidationError
	var se *StateError
	var ce *ConflictError

	switch {
	case errors.As(err, &nf):
		responses.ErrorResponse(c, http.StatusNotFound, nf.Error())
	case errors.As(err, &ve):
		responses.ErrorResponse(c, http.StatusBadRequest, ve.Error())
	case errors.As(err, &se):
		responses.ErrorResponse(c, http.StatusConflict, se.Error())
	case errors.As(err, &ce):
		responses.ErrorResponse(c, http.StatusConflict, ce.Error())
	default:
		responses.ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
