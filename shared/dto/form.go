package dto

import (
	"net/http"

	"curtainraiser/shared/constant"
)

// FormValue returns the submitted value of key, or nil when the form did not carry the field.
func FormValue(r *http.Request, key string) *string {
	if r.PostForm == nil {
		// ErrNotMultipart is expected for urlencoded bodies, which ParseForm has already read.
		_ = r.ParseMultipartForm(constant.RequestMaxMemory)
	}

	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}

	value := values[0]

	return &value
}

// FormString is FormValue with absent fields read as empty.
func FormString(r *http.Request, key string) string {
	if value := FormValue(r, key); value != nil {
		return *value
	}

	return constant.Empty
}
