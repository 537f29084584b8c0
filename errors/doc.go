// Package errors provides the structured error type shared by the query
// engine, the catalog and the CLI.
//
// Every failure carries a machine-readable ErrorCode. Element-access and
// aggregate operators report EMPTY_SEQUENCE and MULTIPLE_MATCHES; record
// provisioning reports INVALID_INPUT, MISSING_FIELD and ALREADY_EXISTS.
//
// Codes compare with the standard library:
//
//	if errors.Is(err, apperrors.ErrEmptySequence) { ... }
package errors
