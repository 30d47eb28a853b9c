package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "boom", New(ErrCodeInternal, "boom").Error())

	wrapped := Wrap(errors.New("dial tcp: refused"), ErrCodeFederation, "assume role")
	assert.Equal(t, "assume role: dial tcp: refused", wrapped.Error())
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestWrap_PreservesCauseChain(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, ErrCodeTokenExchange, "exchange code")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeTokenExchange, GetCode(err))
}

func TestCodeHelpers_SeeThroughWrapping(t *testing.T) {
	inner := Deny(ErrCodePathTraversal, "path escapes prefix")
	outer := fmt.Errorf("list documents: %w", inner)

	assert.True(t, IsDenial(outer))
	assert.Equal(t, ErrCodePathTraversal, GetCode(outer))
	assert.False(t, IsFederation(outer))
}

func TestIsDenial(t *testing.T) {
	assert.True(t, IsDenial(Deny(ErrCodePathTraversal, "x")))
	assert.True(t, IsDenial(Deny(ErrCodeRoleNotPermitted, "x")))
	assert.False(t, IsDenial(New(ErrCodeUnauthenticated, "x")))
	assert.False(t, IsDenial(errors.New("plain")))
}

func TestMissingField(t *testing.T) {
	err := MissingField("customer.client_id")
	require.True(t, IsConfig(err))
	assert.Equal(t, "customer.client_id", GetField(err))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("contact_email", "must be a valid email")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "contact_email", GetField(err))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, "", GetField(errors.New("plain")))
}
