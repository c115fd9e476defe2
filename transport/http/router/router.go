package router

import (
	"net/http"

	"curtainraiser/config"
	"curtainraiser/internal/handlers/announcement"
	"curtainraiser/internal/handlers/auth"
	"curtainraiser/internal/handlers/gallery"
	"curtainraiser/internal/handlers/services"
	"curtainraiser/internal/handlers/site"
	"curtainraiser/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

const assetsPath = "/assets/"

type DomainHandlers struct {
	Auth         auth.Handler
	Site         site.Handler
	Services     services.Handler
	Announcement announcement.Handler
	Gallery      gallery.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Gate           middleware.SessionGate
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.App.Tracing, r.App.Recoverer, r.App.CORS())

	router.Handle(assetsPath+"*", http.StripPrefix(assetsPath, http.FileServer(http.Dir(r.Config.App.AssetsDir))))

	r.DomainHandlers.Site.Router(router)
	r.DomainHandlers.Auth.Router(router)

	router.Group(func(admin chi.Router) {
		admin.Use(r.Gate.RequireSession)

		r.DomainHandlers.Site.AdminRouter(admin)
		r.DomainHandlers.Services.Router(admin)
		r.DomainHandlers.Announcement.Router(admin)
		r.DomainHandlers.Gallery.Router(admin)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, gate middleware.SessionGate, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Gate:           gate,
		Config:         cfg,
	}
}
