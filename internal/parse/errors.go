package parse

import "errors"

// Error kinds. All of them are recovered within the pipeline; none escapes
// to the caller of Pipeline.Run. They exist so the recovery stages can be
// tested independently and so logs can name the failure cause.
var (
	// ErrDecode means the text is not valid JSON as-is.
	ErrDecode = errors.New("response is not valid JSON")

	// ErrTruncation means the text ends mid-string or with unbalanced
	// braces, the specific cause the repairer targets.
	ErrTruncation = errors.New("response truncated")

	// ErrSchemaViolation means a required field is absent even after
	// repair or fallback extraction.
	ErrSchemaViolation = errors.New("required field missing")
)
