package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeAuthNotLoggedIn, "not logged in")
	assert.Contains(t, err.Error(), "[AUTH-001]")
	assert.Contains(t, err.Error(), "not logged in")
}

func TestErrorIncludesSuggestionsAndDocs(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad config").
		WithSuggestion("check the file").
		WithDocs("https://example.com/docs")

	msg := err.Error()
	assert.Contains(t, msg, "Suggestions:")
	assert.Contains(t, msg, "check the file")
	assert.Contains(t, msg, "https://example.com/docs")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeCredRead, "read failed", cause)

	assert.Contains(t, err.Error(), "underlying")
	assert.ErrorIs(t, err, cause)
}

func TestErrorsAsFindsTypedError(t *testing.T) {
	var target *OpsdeskError
	err := NewForbiddenError("manage_payroll")

	require.True(t, stderrors.As(err, &target))
	assert.Equal(t, ErrCodeAuthForbidden, target.Code)
	assert.Contains(t, target.Message, "manage_payroll")
}

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		err  *OpsdeskError
		code ErrorCode
	}{
		{NewNotLoggedInError(), ErrCodeAuthNotLoggedIn},
		{NewLoginFailedError(stderrors.New("x")), ErrCodeAuthLoginFailed},
		{NewTokenMissingError(), ErrCodeAuthTokenMissing},
		{NewSessionExpiredError(), ErrCodeAuthSessionDead},
		{NewForbiddenError("cap"), ErrCodeAuthForbidden},
		{NewExportFormatError("docx"), ErrCodeExportFormat},
		{NewFileNotFoundError("/tmp/x"), ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
	}
}

func TestNotLoggedInSuggestsLogin(t *testing.T) {
	err := NewNotLoggedInError()
	require.NotEmpty(t, err.Suggestions)
	assert.Contains(t, err.Suggestions[0], "auth login")
}
