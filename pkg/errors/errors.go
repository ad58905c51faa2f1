package errors

import "fmt"

// Error codes
const (
	CodeSchema  = "SCHEMA_ERROR"
	CodeIO      = "IO_ERROR"
	CodeBackend = "BACKEND_ERROR"
	CodeCache   = "CACHE_ERROR"
)

type ConvError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ConvError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConvError) Unwrap() error {
	return e.Cause
}

// SchemaError is a fatal input validation failure. Index is the position of
// the offending record in the input array, Field the missing or malformed key.
type SchemaError struct {
	*ConvError
	Field string
	Index int
}

func NewSchemaError(message, field string, index int) *SchemaError {
	return &SchemaError{
		ConvError: &ConvError{
			Message: fmt.Sprintf("%s (record %d, field %q)", message, index, field),
			Code:    CodeSchema,
			Context: map[string]any{
				"field": field,
				"index": index,
			},
		},
		Field: field,
		Index: index,
	}
}

func (e *SchemaError) WithCause(cause error) *SchemaError {
	e.Cause = cause
	return e
}

type IOError struct {
	*ConvError
	Operation string
	Path      string
}

func NewIOError(message, operation, path string, cause error) *IOError {
	return &IOError{
		ConvError: &ConvError{
			Message: message,
			Code:    CodeIO,
			Context: map[string]any{
				"operation": operation,
				"path":      path,
			},
			Cause: cause,
		},
		Operation: operation,
		Path:      path,
	}
}

// BackendError wraps a translation backend failure. Always non-fatal: callers
// fall back to the original text.
type BackendError struct {
	*ConvError
	Provider  string
	Operation string
}

func NewBackendError(message, provider, operation string, cause error) *BackendError {
	return &BackendError{
		ConvError: &ConvError{
			Message: message,
			Code:    CodeBackend,
			Context: map[string]any{
				"provider":  provider,
				"operation": operation,
			},
			Cause: cause,
		},
		Provider:  provider,
		Operation: operation,
	}
}

type CacheError struct {
	*ConvError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		ConvError: &ConvError{
			Message: message,
			Code:    CodeCache,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}
