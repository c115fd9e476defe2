package auth

import (
	"errors"
	"net/http"

	"curtainraiser/config"
	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/auth/model/dto"
	"curtainraiser/internal/domains/auth/service"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/failure"
	"curtainraiser/transport/http/middleware"
	"curtainraiser/transport/http/response"
	"curtainraiser/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const loginTitle = "Admin Login"

type Handler struct {
	service  service.Auth
	renderer view.Renderer
	app      middleware.AppMiddleware
	otel     otel.Otel
	cfg      *config.Config
}

func New(service service.Auth, renderer view.Renderer, app middleware.AppMiddleware, otel otel.Otel, cfg *config.Config) Handler {
	return Handler{
		service:  service,
		renderer: renderer,
		app:      app,
		otel:     otel,
		cfg:      cfg,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get(constant.RouteLogin, handler.LoginPage)
	r.With(handler.app.RateLimit()).Post(constant.RouteLogin, handler.Login)
	r.Get("/logout", handler.Logout)
}

func (handler *Handler) LoginPage(w http.ResponseWriter, _ *http.Request) {
	handler.renderer.Render(w, http.StatusOK, view.PageLogin, view.Page{Title: loginTitle})
}

// Login starts an admin session and sets the signed cookie.
// Bad credentials re-render the form with 401.
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}
	req.FromRequest(r)

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		message := constant.ResponseErrorInternal

		var fail *failure.Failure
		if errors.As(err, &fail) {
			message = fail.Message
		} else {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to log in")
		}

		handler.renderer.Render(w, failure.GetCode(err), view.PageLogin, view.Page{Title: loginTitle, Error: message})

		return
	}

	middleware.SetSessionCookie(w, handler.cfg, res.Token, res.ExpiresAt)

	response.SeeOther(w, r, constant.RouteAdminDashboard)
}

// Logout ends the session behind the cookie, if any, and clears it.
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	if token := middleware.SessionToken(r, handler.cfg); token != constant.Empty {
		if err := handler.service.Logout(ctx, token); err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Msg("failed to delete session on logout")
		}
	}

	middleware.ClearSessionCookie(w, handler.cfg)

	response.Found(w, r, constant.RouteLogin)
}
