package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/opsdeskhq/opsdesk/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure (no session, expired session)
	AuthError = 3

	// ForbiddenError indicates the session is valid but the role lacks the capability
	ForbiddenError = 4

	// NetworkError indicates a network connectivity issue
	NetworkError = 5

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var opsErr *errors.OpsdeskError
	if stderrors.As(err, &opsErr) {
		switch opsErr.Code {
		case errors.ErrCodeAuthForbidden:
			return ForbiddenError
		case errors.ErrCodeAuthNotLoggedIn, errors.ErrCodeAuthLoginFailed,
			errors.ErrCodeAuthTokenMissing, errors.ErrCodeAuthSessionDead:
			return AuthError
		case errors.ErrCodeAPITransport:
			return NetworkError
		}
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication errors
	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "not logged in") {
		return AuthError
	}

	// Authorization errors
	if strings.Contains(errMsg, "forbidden") || strings.Contains(errMsg, "permission denied") {
		return ForbiddenError
	}

	// Network errors
	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "required flag") ||
		strings.Contains(errMsg, "invalid flag") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case ForbiddenError:
		return "Permission denied"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
