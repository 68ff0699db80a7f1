package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatusAndCode(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
		code   string
	}{
		{KindBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{KindUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{KindInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{KindInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{KindForbidden, http.StatusForbidden, "FORBIDDEN"},
		{KindNotFound, http.StatusNotFound, "NOT_FOUND"},
		{KindConflict, http.StatusConflict, "CONFLICT"},
		{KindUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{KindInternal, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.kind.Status())
			assert.Equal(t, tc.code, tc.kind.Code())
		})
	}
}

func TestNewDefaultsMessageFromKind(t *testing.T) {
	e := New(KindInvalidToken, "")
	assert.Equal(t, "invalid token", e.Message)

	e = New(KindInvalidToken, "custom")
	assert.Equal(t, "custom", e.Message)
}

func TestOperationalFlags(t *testing.T) {
	assert.True(t, InvalidCredentials("").Operational)
	assert.True(t, UserAlreadyExists("").Operational)
	assert.True(t, BadRequest("").Operational)
	assert.False(t, Internal("boom", nil).Operational)
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	e := Internal("failed to connect to authentication service", cause)

	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "failed to connect to authentication service")
	assert.Contains(t, e.Error(), "connection refused")
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	var target *Error
	wrapped := Wrap(KindUserAlreadyExists, "user with this cpf already exists", errors.New("409"))

	require.ErrorAs(t, error(wrapped), &target)
	assert.Equal(t, KindUserAlreadyExists, target.Kind)
	assert.Equal(t, http.StatusConflict, target.Status())
}

func TestFromError(t *testing.T) {
	t.Run("typed error passes through", func(t *testing.T) {
		orig := InvalidToken("malformed token")
		got := FromError(orig)
		assert.Same(t, orig, got)
	})

	t.Run("untyped error becomes internal", func(t *testing.T) {
		got := FromError(errors.New("boom"))
		assert.Equal(t, KindInternal, got.Kind)
		assert.False(t, got.Operational)
		assert.Equal(t, "internal server error", got.Message)
	})
}
