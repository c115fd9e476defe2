package failure

import (
	"errors"
	"net/http"
)

// Failure carries the HTTP status a handler should answer with and the text shown to the admin.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidCredentials = &Failure{Code: http.StatusUnauthorized, Message: "Invalid username or password"}
	NotAnImage         = &Failure{Code: http.StatusBadRequest, Message: "Only image files are allowed!"}
	UnexpectedField    = &Failure{Code: http.StatusBadRequest, Message: "File upload error: Unexpected field"}
)

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequestFromString is the failure for a rejected form.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// EntityTooLarge returns a new Failure for payloads above the configured ceiling.
func EntityTooLarge(msg string) error {
	return &Failure{
		Code:    http.StatusRequestEntityTooLarge,
		Message: msg,
	}
}

// Upload returns a new Failure for media host rejections and transport errors.
func Upload(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: "File upload error: " + err.Error(),
		}
	}

	return nil
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsNotFound reports whether err carries a not found code.
func IsNotFound(err error) bool {
	return err != nil && GetCode(err) == http.StatusNotFound
}
