// Package errors provides the error taxonomy of the tourvault system.
// Input problems are reported as ValidationError and never reach the network;
// failures at or beyond the remote store boundary are reported as RemoteError,
// tagged with a RemoteKind so callers can branch without string matching.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors used with errors.Is.
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNetwork indicates the remote store could not be reached or answered unintelligibly
	ErrNetwork = errors.New("network failure")

	// ErrRejected indicates the remote store refused the request
	ErrRejected = errors.New("rejected")

	// ErrPending indicates a conflicting operation is still in flight
	ErrPending = errors.New("operation pending")
)

// RemoteKind classifies a RemoteError.
type RemoteKind int

const (
	// KindNetwork covers transport failures, timeouts and undecodable responses.
	KindNetwork RemoteKind = iota
	// KindRejected means the store answered with a non-success status.
	KindRejected
	// KindNotFound means the store does not know the addressed record.
	KindNotFound
)

// String returns the kind name.
func (k RemoteKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	case KindNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("RemoteKind(%d)", int(k))
	}
}

// RemoteError is a failure reported by, or on the way to, the remote store.
type RemoteError struct {
	Kind       RemoteKind
	Op         string // "list", "create", "delete"
	ID         string // record id or submitted url, when relevant
	StatusCode int
	Detail     string // human readable detail supplied by the store
	Err        error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	msg := e.Detail
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	target := e.Op
	if e.ID != "" {
		target = e.Op + " " + e.ID
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (status %d): %s", target, e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: %s", target, e.Kind, msg)
}

// Unwrap implements errors.Unwrap
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RemoteError) Is(target error) bool {
	switch e.Kind {
	case KindNetwork:
		return target == ErrNetwork
	case KindRejected:
		return target == ErrRejected
	case KindNotFound:
		return target == ErrNotFound
	}
	return false
}

// NewNetworkError creates a RemoteError of kind KindNetwork.
func NewNetworkError(op, id string, err error) *RemoteError {
	return &RemoteError{Kind: KindNetwork, Op: op, ID: id, Err: err}
}

// NewRejectedError creates a RemoteError of kind KindRejected.
func NewRejectedError(op, id string, status int, detail string) *RemoteError {
	return &RemoteError{Kind: KindRejected, Op: op, ID: id, StatusCode: status, Detail: detail}
}

// NewRemoteNotFoundError creates a RemoteError of kind KindNotFound.
func NewRemoteNotFoundError(op, id, detail string) *RemoteError {
	return &RemoteError{Kind: KindNotFound, Op: op, ID: id, StatusCode: 404, Detail: detail}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AlreadyExistsError represents an attempt to create a duplicate resource
type AlreadyExistsError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with ID %s already exists", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(resource, id string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
// Value keeps the rejected input so it can be offered back for correction.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// PendingError reports that an operation was refused because a conflicting
// one is still in flight.
type PendingError struct {
	Operation string
	Key       string // correlation key of the in-flight operation
	Input     string // the input of the refused call
}

// Error implements the error interface
func (e *PendingError) Error() string {
	return fmt.Sprintf("%s already in progress (%s)", e.Operation, e.Key)
}

// Is implements errors.Is support
func (e *PendingError) Is(target error) bool {
	return target == ErrPending
}

// OperationError reports a failed catalog operation together with the
// input that triggered it, so the caller can offer it back for a retry.
type OperationError struct {
	Operation string // "load", "add", "remove"
	Input     string
	Err       error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s %s: %v", e.Operation, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *OperationError) Unwrap() error {
	return e.Err
}

// InputOf returns the input preserved by an OperationError in err's chain.
func InputOf(err error) (string, bool) {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe.Input, true
	}
	return "", false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "start"
	Resource  string // "client", "gateway", "server"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error, local or remote
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNetwork checks if an error is a network failure at the gateway
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsRejected checks if the remote store rejected the request
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

// IsPending checks if an error reports a conflicting in-flight operation
func IsPending(err error) bool {
	return errors.Is(err, ErrPending)
}

// AsRemote returns the RemoteError in err's chain, if any.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: err.Error(), Err: err}
}

// AsNotFound returns the NotFoundError in err's chain, if any.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}
