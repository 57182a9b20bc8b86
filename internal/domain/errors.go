package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeBackend      ErrorCode = "BACKEND_ERROR"

	// Import specific errors
	CodeParse            ErrorCode = "PARSE_ERROR"
	CodeNoValidRows      ErrorCode = "NO_VALID_ROWS"
	CodeSubmission       ErrorCode = "SUBMISSION_ERROR"
	CodeSubmitInProgress ErrorCode = "SUBMIT_IN_PROGRESS"
	CodeLoadSuperseded   ErrorCode = "LOAD_SUPERSEDED"
	CodeImportCancelled  ErrorCode = "IMPORT_CANCELLED"
	CodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	CodeTestNotFound     ErrorCode = "TEST_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code, so the
// sentinel values below can be used with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithContext attaches a detail that is rendered in API error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// Sentinels for errors.Is matching. Never mutate these; use the constructors.
var (
	ErrParse            = &DomainError{Code: CodeParse, Message: "failed to parse CSV file"}
	ErrNoValidRows      = &DomainError{Code: CodeNoValidRows, Message: "no valid rows to submit"}
	ErrSubmission       = &DomainError{Code: CodeSubmission, Message: "bulk upload failed"}
	ErrSubmitInProgress = &DomainError{Code: CodeSubmitInProgress, Message: "a submission is already in progress"}
	ErrLoadSuperseded   = &DomainError{Code: CodeLoadSuperseded, Message: "file load superseded by a newer selection"}
	ErrImportCancelled  = &DomainError{Code: CodeImportCancelled, Message: "import was cancelled"}
	ErrSessionNotFound  = &DomainError{Code: CodeSessionNotFound, Message: "import session not found"}
	ErrTestNotFound     = &DomainError{Code: CodeTestNotFound, Message: "test not found"}
	ErrBackend          = &DomainError{Code: CodeBackend, Message: "backend request failed"}
)

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

// NewParseError is returned when an uploaded file cannot be read as CSV at all.
func NewParseError(message string, cause error) *DomainError {
	return NewError(CodeParse, message, cause)
}

// NewNoValidRowsError is returned when a submit finds nothing to send.
func NewNoValidRowsError(totalRows int) *DomainError {
	return NewError(CodeNoValidRows, "no valid rows to submit", nil).
		WithContext("total_rows", totalRows)
}

// NewSubmissionError wraps a failed batch request. message should be the
// backend's own diagnostic text when there is one.
func NewSubmissionError(message string, cause error) *DomainError {
	if strings.TrimSpace(message) == "" {
		message = ErrSubmission.Message
	}
	return NewError(CodeSubmission, message, cause)
}

func NewBackendError(status int, message string, cause error) *DomainError {
	if strings.TrimSpace(message) == "" {
		message = ErrBackend.Message
	}
	err := NewError(CodeBackend, message, cause)
	if status > 0 {
		err.WithContext("backend_status", status)
	}
	return err
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("import session not found: %s", sessionID), nil)
}

func NewTestNotFoundError(testID string) *DomainError {
	return NewError(CodeTestNotFound, fmt.Sprintf("test not found with ID: %s", testID), nil)
}

// ValidationError describes one invalid field of a request.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is returned by request validation and rendered as 400.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the human-readable message of every entry in order.
func (v ValidationErrors) Messages() []string {
	if len(v) == 0 {
		return nil
	}
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return msgs
}
