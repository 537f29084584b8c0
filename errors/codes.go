package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Evaluation errors raised by element-access and aggregate operators.
const (
	// ErrCodeEmptySequence indicates an operator needed at least one element and found none.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
	// ErrCodeMultipleMatches indicates a single-result operator found more than one match.
	ErrCodeMultipleMatches ErrorCode = "MULTIPLE_MATCHES"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// ErrCodeInternal indicates an unexpected internal failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var evaluationCodes = map[ErrorCode]bool{
	ErrCodeEmptySequence:   true,
	ErrCodeMultipleMatches: true,
}

// IsEvaluationCode returns true if the code is raised while a sequence is
// being evaluated, as opposed to while records are provisioned.
func IsEvaluationCode(code ErrorCode) bool {
	return evaluationCodes[code]
}
