// internal/types.go - Common types for internal packages
package internal

// SourceType represents the container format of a tile data source
type SourceType string

const (
	SourceTypeMBTiles SourceType = "mbtiles"
	SourceTypeUnknown SourceType = "unknown"
)

// String returns the string representation of the source type
func (s SourceType) String() string {
	return string(s)
}

// IsValid checks if the source type is a supported container format
func (s SourceType) IsValid() bool {
	return s == SourceTypeMBTiles
}

// Error represents application-specific errors
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new application error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode constants for common error types
const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeConfig     = "CONFIG_ERROR"
	ErrorCodeNotFound   = "NOT_FOUND"
	ErrorCodeSource     = "SOURCE_ERROR"
	ErrorCodeFileSystem = "FILESYSTEM_ERROR"
	ErrorCodeBounds     = "BOUNDS_ERROR"
)
