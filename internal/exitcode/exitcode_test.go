package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdeskhq/opsdesk/internal/errors"
)

func TestDetermineExitCodeFromTypedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"forbidden", errors.NewForbiddenError("manage_payroll"), ForbiddenError},
		{"not logged in", errors.NewNotLoggedInError(), AuthError},
		{"login failed", errors.NewLoginFailedError(stderrors.New("401")), AuthError},
		{"token missing", errors.NewTokenMissingError(), AuthError},
		{"session expired", errors.NewSessionExpiredError(), AuthError},
		{"transport", errors.New(errors.ErrCodeAPITransport, "network down"), NetworkError},
		{"generic", stderrors.New("something else"), GeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestDetermineExitCodeFromWrappedTypedError(t *testing.T) {
	wrapped := fmt.Errorf("command failed: %w", errors.NewForbiddenError("manage_staff"))
	assert.Equal(t, ForbiddenError, DetermineExitCode(wrapped))
}

func TestDetermineExitCodeStringFallback(t *testing.T) {
	tests := []struct {
		msg  string
		want int
	}{
		{"server said Unauthorized", AuthError},
		{"forbidden resource", ForbiddenError},
		{"connection refused", NetworkError},
		{"request timeout", NetworkError},
		{"unknown command \"foo\"", UsageError},
		{"required flag --period not set", UsageError},
		{"disk full", GeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(stderrors.New(tt.msg)))
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	assert.Equal(t, "Success", GetExitCodeDescription(Success))
	assert.Equal(t, "Interrupted", GetExitCodeDescription(Interrupted))
	assert.Equal(t, "Unknown error", GetExitCodeDescription(42))
}
