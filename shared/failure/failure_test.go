package failure_test

import (
	"errors"
	"net/http"
	"testing"

	pkgErrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"curtainraiser/shared/failure"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid credentials", failure.InvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"not an image", failure.NotAnImage, http.StatusBadRequest, "Only image files are allowed!"},
		{"unexpected field", failure.UnexpectedField, http.StatusBadRequest, "File upload error: Unexpected field"},
		{"bad request from string", failure.BadRequestFromString("title is required"), http.StatusBadRequest, "title is required"},
		{"unauthorized", failure.Unauthorized("no session"), http.StatusUnauthorized, "no session"},
		{"internal", failure.InternalError(cause), http.StatusInternalServerError, "boom"},
		{"not found", failure.NotFound("Service not found"), http.StatusNotFound, "Service not found"},
		{"too large", failure.EntityTooLarge("File too large"), http.StatusRequestEntityTooLarge, "File too large"},
		{"upload", failure.Upload(cause), http.StatusBadRequest, "File upload error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestConstructors_NilCause(t *testing.T) {
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.Upload(nil))
}

func TestGetCode(t *testing.T) {
	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	})

	t.Run("wrapped failure keeps its code", func(t *testing.T) {
		err := pkgErrors.Wrap(failure.NotFound("Announcement not found"), "update")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, failure.IsNotFound(failure.NotFound("Gallery item not found")))
	assert.True(t, failure.IsNotFound(pkgErrors.WithStack(failure.NotFound("x"))))
	assert.False(t, failure.IsNotFound(failure.BadRequestFromString("x")))
	assert.False(t, failure.IsNotFound(nil))
}
