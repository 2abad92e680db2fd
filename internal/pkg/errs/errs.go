package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound          = errors.New("object not found")
	ErrValueIsInvalid          = errors.New("value is invalid")
	ErrValueIsOutOfRange       = errors.New("value is out of range")
	ErrValueIsRequired         = errors.New("value is required")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrConcurrencyConflict     = errors.New("concurrency conflict")
	ErrCompensatedCreation     = errors.New("creation failed and was compensated")
	ErrInvoiceNotAllowed       = errors.New("invoice not allowed")
	ErrInvoiceGenerationFailed = errors.New("invoice generation failed")
	ErrUpstream                = errors.New("upstream failure")
)

// IsValidation reports whether err belongs to the validation family. A stock
// shortage is a validation failure of the requested quantities.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause))
}

// ObjectNotFoundError is returned when an entity cannot be found by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
	}
	return withCause(
		fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
		e.Cause,
	)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InsufficientStockError is returned when a product cannot cover the requested quantity.
type InsufficientStockError struct {
	ProductID any
	Requested int
	Available int
}

func NewInsufficientStockError(productID any, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("%s: product %s, requested %d", ErrInsufficientStock, sanitize(e.ProductID), e.Requested)
	}
	return fmt.Sprintf("%s: product %s, requested %d, available %d",
		ErrInsufficientStock, sanitize(e.ProductID), e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InvalidTransitionError is returned when a status change is not an edge of the order graph.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConcurrencyConflictError is returned when a conditional write keeps losing to
// concurrent writers.
type ConcurrencyConflictError struct {
	ParamName string
	ID        any
	Attempts  int
}

func NewConcurrencyConflictError(paramName string, id any, attempts int) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, Attempts: attempts}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s changed concurrently, gave up after %d attempts",
		ErrConcurrencyConflict, e.ParamName, sanitize(e.ID), e.Attempts)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// CompensatedCreationError is returned when a multi-step creation failed part way
// and its completed steps were undone.
type CompensatedCreationError struct {
	ID    any
	Cause error
}

func NewCompensatedCreationError(id any, cause error) *CompensatedCreationError {
	return &CompensatedCreationError{ID: id, Cause: cause}
}

func (e *CompensatedCreationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrCompensatedCreation, sanitize(e.ID)), e.Cause)
}

func (e *CompensatedCreationError) Unwrap() error {
	return ErrCompensatedCreation
}

// InvoiceNotAllowedError is returned when an order's status forbids invoicing.
type InvoiceNotAllowedError struct {
	ID     any
	Status string
}

func NewInvoiceNotAllowedError(id any, status fmt.Stringer) *InvoiceNotAllowedError {
	return &InvoiceNotAllowedError{ID: id, Status: status.String()}
}

func (e *InvoiceNotAllowedError) Error() string {
	return fmt.Sprintf("%s: order %s is %s", ErrInvoiceNotAllowed, sanitize(e.ID), e.Status)
}

func (e *InvoiceNotAllowedError) Unwrap() error {
	return ErrInvoiceNotAllowed
}

// InvoiceGenerationFailedError is returned when rendering fails or times out.
// Callers may retry it.
type InvoiceGenerationFailedError struct {
	ID    any
	Cause error
}

func NewInvoiceGenerationFailedError(id any, cause error) *InvoiceGenerationFailedError {
	return &InvoiceGenerationFailedError{ID: id, Cause: cause}
}

func (e *InvoiceGenerationFailedError) Error() string {
	return withCause(fmt.Sprintf("%s: order %s", ErrInvoiceGenerationFailed, sanitize(e.ID)), e.Cause)
}

func (e *InvoiceGenerationFailedError) Unwrap() error {
	return ErrInvoiceGenerationFailed
}

// UpstreamError is returned when the store or another collaborator is unreachable.
type UpstreamError struct {
	Operation string
	Cause     error
}

func NewUpstreamError(operation string, cause error) *UpstreamError {
	return &UpstreamError{Operation: operation, Cause: cause}
}

func (e *UpstreamError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUpstream, e.Operation), e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
