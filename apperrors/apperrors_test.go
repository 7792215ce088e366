package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{ErrAllFieldsRequired, http.StatusBadRequest},
		{ErrUserExists, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrUserNotFound, http.StatusNotFound},
		{UploadFailed("Image upload failed", nil), http.StatusInternalServerError},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.err.HTTPStatus(), c.err.Message)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeInternal, "saving failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "saving failed")
}

func TestFromError(t *testing.T) {
	app := FromError(fmt.Errorf("request: %w", ErrUserExists))
	require.NotNil(t, app)
	assert.Equal(t, CodeAlreadyExists, app.Code)

	unknown := FromError(errors.New("pq: connection refused"))
	assert.Equal(t, CodeInternal, unknown.Code)
	assert.Equal(t, "Internal server error", unknown.Message)
}
