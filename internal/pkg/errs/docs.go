// Package errs provides the typed errors shared by the order service.
//
// Every kind pairs a sentinel with a struct that carries the details:
//   - ValueIsRequiredError (ErrValueIsRequired): a mandatory value is missing
//   - ValueIsInvalidError (ErrValueIsInvalid): a value is malformed or unsupported
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange): a number falls outside its bounds
//   - ObjectNotFoundError (ErrObjectNotFound): a lookup by identity found nothing
//   - VersionIsInvalidError (ErrVersionIsInvalid): an optimistic lock check failed
//
// Each struct unwraps to its sentinel and keeps the optional cause in a field, so
// callers match with errors.Is and read details with errors.As. IsValidation
// groups the three input validation kinds.
package errs
