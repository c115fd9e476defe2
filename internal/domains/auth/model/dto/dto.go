package dto

import (
	"net/http"
	"strings"
	"time"
)

type LoginRequest struct {
	Username string `form:"username" validate:"required,notblank"`
	Password string `form:"password" validate:"required"`
}

// FromRequest reads the login form; the username is trimmed, the password is taken verbatim.
func (l *LoginRequest) FromRequest(r *http.Request) {
	l.Username = strings.TrimSpace(r.PostFormValue("username"))
	l.Password = r.PostFormValue("password")
}

type LoginResponse struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}
