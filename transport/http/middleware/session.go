package middleware

import (
	"net/http"
	"time"

	"curtainraiser/config"
	"curtainraiser/infras/otel"
	authService "curtainraiser/internal/domains/auth/service"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/session"
	"curtainraiser/transport/http/response"

	"github.com/rs/zerolog/log"
)

// SessionGate admits only requests carrying a live admin session.
type SessionGate interface {
	RequireSession(next http.Handler) http.Handler
}

type sessionGate struct {
	auth authService.Auth
	otel otel.Otel
	cfg  *config.Config
}

func NewSessionGate(auth authService.Auth, otel otel.Otel, cfg *config.Config) SessionGate {
	return &sessionGate{
		auth: auth,
		otel: otel,
		cfg:  cfg,
	}
}

// RequireSession redirects anonymous requests to the login page without running next.
func (g *sessionGate) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := g.otel.NewScope(r.Context(), constant.OtelSessionScopeName, constant.OtelSessionScopeName+".RequireSession")
		defer scope.End()

		token := SessionToken(r, g.cfg)
		if token == constant.Empty {
			response.Found(w, r, constant.RouteLogin)

			return
		}

		sess, err := g.auth.Authenticate(ctx, token)
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected admin request")
			response.Found(w, r, constant.RouteLogin)

			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	})
}

// SessionToken reads the signed session cookie, empty when absent.
func SessionToken(r *http.Request, cfg *config.Config) string {
	cookie, err := r.Cookie(cfg.Session.CookieName)
	if err != nil {
		return constant.Empty
	}

	return cookie.Value
}

func SetSessionCookie(w http.ResponseWriter, cfg *config.Config, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    token,
		Path:     constant.RouteHome,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    constant.Empty,
		Path:     constant.RouteHome,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
