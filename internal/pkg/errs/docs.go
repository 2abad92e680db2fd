// Package errs provides the typed errors shared by the storefront order engine.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrObjectNotFound) that callers match with errors.Is
//   - a struct carrying the details (parameter name, entity id, cause)
//   - constructors with and without a cause
//   - Error() for a single-line message and Unwrap() returning the sentinel
//
// The families map onto the order engine taxonomy:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError, InsufficientStockError
//   - lookup: ObjectNotFoundError
//   - lifecycle: InvalidTransitionError, ConcurrencyConflictError, InvoiceNotAllowedError
//   - failures: CompensatedCreationError, InvoiceGenerationFailedError, UpstreamError
//
// Causes are kept on the struct for logging. Transport code must not render them
// to end users.
package errs
