// Package errors provides the structured error types used across bigboost.
//
// Every error constructed here carries a stack trace via cockroachdb/errors
// and implements zerolog.LogObjectMarshaler so that pipeline failures log as
// structured events rather than flat strings.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ConfigError reports an invalid configuration parameter (row counts,
// block sizes, column selectors). Configuration errors fail before any
// partial state is created.
type ConfigError struct {
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bigboost: invalid parameter '%s': %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *ConfigError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigError")
}

// NewConfigError creates a ConfigError with a stack trace attached.
func NewConfigError(param, reason string, value interface{}) error {
	err := &ConfigError{Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DimensionError reports a shape mismatch between two arrays or matrices.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("bigboost: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// MissingContainerError reports a write attempted against a store path
// whose group layout was never created.
type MissingContainerError struct {
	Path  string
	Group string
}

func (e *MissingContainerError) Error() string {
	return fmt.Sprintf("bigboost: group '%s' does not exist under '%s'. Call Create() before writing", e.Group, e.Path)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *MissingContainerError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("group", e.Group).
		Str("type", "MissingContainerError")
}

// NewMissingContainerError creates a MissingContainerError with a stack trace attached.
func NewMissingContainerError(path, group string) error {
	err := &MissingContainerError{Path: path, Group: group}
	return errors.WithStack(err)
}

// NotFoundError reports a read of a group or array that does not exist.
type NotFoundError struct {
	Path  string
	Group string
	Array string
}

func (e *NotFoundError) Error() string {
	if e.Array == "" {
		return fmt.Sprintf("bigboost: group '%s' not found under '%s'", e.Group, e.Path)
	}
	return fmt.Sprintf("bigboost: array '%s/%s' not found under '%s'", e.Group, e.Array, e.Path)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *NotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("group", e.Group).
		Str("array", e.Array).
		Str("type", "NotFoundError")
}

// NewNotFoundError creates a NotFoundError with a stack trace attached.
func NewNotFoundError(path, group, array string) error {
	err := &NotFoundError{Path: path, Group: group, Array: array}
	return errors.WithStack(err)
}

// ConflictError reports a write against an array that is already populated.
// The store does not coordinate concurrent writers; a second writer (or a
// repeated populate of the same path) is detected best-effort through the
// committed metadata file.
type ConflictError struct {
	Path  string
	Group string
	Array string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("bigboost: array '%s/%s' under '%s' is already populated", e.Group, e.Array, e.Path)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *ConflictError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("group", e.Group).
		Str("array", e.Array).
		Str("type", "ConflictError")
}

// NewConflictError creates a ConflictError with a stack trace attached.
func NewConflictError(path, group, array string) error {
	err := &ConflictError{Path: path, Group: group, Array: array}
	return errors.WithStack(err)
}

// NotFittedError is returned when Predict or Score is called on a model
// that has not been fitted.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("bigboost: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("bigboost: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a matrix cannot be inverted.
	ErrSingularMatrix = New("singular matrix")

	// ErrStoreClosed is returned when a write is attempted after Close.
	ErrStoreClosed = New("store closed")
)
