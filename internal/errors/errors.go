package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthNotLoggedIn  ErrorCode = "AUTH-001"
	ErrCodeAuthLoginFailed  ErrorCode = "AUTH-002"
	ErrCodeAuthTokenMissing ErrorCode = "AUTH-003"
	ErrCodeAuthSessionDead  ErrorCode = "AUTH-004"
	ErrCodeAuthForbidden    ErrorCode = "AUTH-005"
	ErrCodeAuthRoleSwitch   ErrorCode = "AUTH-006"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest   ErrorCode = "API-001"
	ErrCodeAPIResponse  ErrorCode = "API-002"
	ErrCodeAPINotFound  ErrorCode = "API-003"
	ErrCodeAPIServer    ErrorCode = "API-004"
	ErrCodeAPITransport ErrorCode = "API-005"
	ErrCodeAPIEnvelope  ErrorCode = "API-006"

	// Credential store errors (CRED-001 to CRED-099)
	ErrCodeCredRead  ErrorCode = "CRED-001"
	ErrCodeCredWrite ErrorCode = "CRED-002"
	ErrCodeCredClear ErrorCode = "CRED-003"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"
	ErrCodeConfigMarshal   ErrorCode = "CONFIG-004"

	// Export errors (EXPORT-001 to EXPORT-099)
	ErrCodeExportFormat   ErrorCode = "EXPORT-001"
	ErrCodeExportDownload ErrorCode = "EXPORT-002"
	ErrCodeExportWrite    ErrorCode = "EXPORT-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// OpsdeskError represents an enhanced error with code, suggestions, and documentation
type OpsdeskError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *OpsdeskError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *OpsdeskError) Unwrap() error {
	return e.Cause
}

// New creates a new OpsdeskError
func New(code ErrorCode, message string) *OpsdeskError {
	return &OpsdeskError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new OpsdeskError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *OpsdeskError {
	return &OpsdeskError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *OpsdeskError) WithSuggestion(suggestion string) *OpsdeskError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *OpsdeskError) WithSuggestions(suggestions ...string) *OpsdeskError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *OpsdeskError) WithDocs(url string) *OpsdeskError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates an error for commands that need a session
func NewNotLoggedInError() *OpsdeskError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'opsdesk auth login' to authenticate").
		WithSuggestion("Check 'opsdesk auth status' for the current session")
}

// NewLoginFailedError creates a login failure error
func NewLoginFailedError(cause error) *OpsdeskError {
	return Wrap(ErrCodeAuthLoginFailed, "login failed", cause).
		WithSuggestion("Verify your email and password").
		WithSuggestion("Check the backend origin with 'opsdesk config get api_url'")
}

// NewTokenMissingError creates an error for login responses without a token
func NewTokenMissingError() *OpsdeskError {
	return New(ErrCodeAuthTokenMissing, "login response contained no token in any recognized shape").
		WithSuggestion("Expected token, data.token, or accessToken in the response body").
		WithSuggestion("The backend may be misconfigured; inspect the response with --verbose")
}

// NewSessionExpiredError creates an error for an invalidated session
func NewSessionExpiredError() *OpsdeskError {
	return New(ErrCodeAuthSessionDead, "session expired or invalid").
		WithSuggestion("Run 'opsdesk auth login' to start a new session")
}

// NewForbiddenError creates an error for missing capabilities
func NewForbiddenError(capability string) *OpsdeskError {
	return New(ErrCodeAuthForbidden, fmt.Sprintf("your role does not grant: %s", capability)).
		WithSuggestion("Ask an administrator to adjust your role").
		WithSuggestion("Run 'opsdesk auth status' to see your role and capabilities")
}

// NewConfigUnmarshalError creates a config parse error
func NewConfigUnmarshalError(path string, cause error) *OpsdeskError {
	return Wrap(ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config file: %s", path), cause).
		WithSuggestion("Check the YAML syntax").
		WithSuggestion("Run 'opsdesk config path' to locate the file")
}

// NewExportFormatError creates an unsupported export format error
func NewExportFormatError(format string) *OpsdeskError {
	return New(ErrCodeExportFormat, fmt.Sprintf("unsupported export format: %s", format)).
		WithSuggestion("Use one of: csv, xlsx, pdf")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *OpsdeskError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
