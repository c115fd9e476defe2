package site

import (
	"net/http"

	"curtainraiser/infras/otel"
	announcementModel "curtainraiser/internal/domains/announcement/model"
	announcementService "curtainraiser/internal/domains/announcement/service"
	servicesModel "curtainraiser/internal/domains/services/model"
	servicesService "curtainraiser/internal/domains/services/service"
	"curtainraiser/internal/domains/site/model/dto"
	"curtainraiser/internal/domains/site/service"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/session"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/response"
	"curtainraiser/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	dashboardLoadFailed = "Error loading dashboard"
	galleryLoadFailed   = "Error loading gallery"
)

type Handler struct {
	site          service.Site
	services      servicesService.Services
	announcements announcementService.Announcement
	renderer      view.Renderer
	flash         flash.Notifier
	otel          otel.Otel
}

func New(
	site service.Site,
	services servicesService.Services,
	announcements announcementService.Announcement,
	renderer view.Renderer,
	flash flash.Notifier,
	otel otel.Otel,
) Handler {
	return Handler{
		site:          site,
		services:      services,
		announcements: announcements,
		renderer:      renderer,
		flash:         flash,
		otel:          otel,
	}
}

// Router mounts the public pages.
func (handler *Handler) Router(router chi.Router) {
	router.Get(constant.RouteHome, handler.Index)
	router.Get("/about", handler.static(view.PageAbout, "About"))
	router.Get("/contact", handler.static(view.PageContact, "Contact"))
	router.Get("/services", handler.Services)
	router.Get("/gallery", handler.Gallery)
}

// AdminRouter mounts the admin views; the caller applies the session gate.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Get(constant.RouteAdminDashboard, handler.AdminDashboard)
	router.Get(constant.RouteAdminAnnouncements, handler.AdminAnnouncements)
	router.Get(constant.RouteAdminGallery, handler.AdminGallery)
}

func (handler *Handler) static(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		handler.renderer.Render(w, http.StatusOK, page, view.Page{Title: title})
	}
}

func (handler *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Index")
	defer scope.End()

	handler.renderer.Render(w, http.StatusOK, view.PageIndex, view.Page{Title: "Home", Data: handler.site.Landing(ctx)})
}

func (handler *Handler) Services(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Services")
	defer scope.End()

	handler.renderer.Render(w, http.StatusOK, view.PageServices, view.Page{Title: "Services", Data: handler.site.ActiveServices(ctx)})
}

func (handler *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Gallery")
	defer scope.End()

	query := dto.GalleryQuery{}
	query.FromRequest(r, constant.CategoryAllPublic)

	handler.renderer.Render(w, http.StatusOK, view.PageGallery, view.Page{Title: "Gallery", Data: handler.site.PublicGallery(ctx, query)})
}

func (handler *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminDashboard")
	defer scope.End()

	services, err := handler.services.ListAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load dashboard")

		handler.renderLoadFailure(w, view.PageAdminDashboard, "Dashboard", []servicesModel.Service{})

		return
	}

	handler.renderer.Render(w, http.StatusOK, view.PageAdminDashboard, view.Page{
		Title: "Dashboard",
		Flash: handler.flash.Pop(ctx),
		Data:  services,
	})
}

func (handler *Handler) AdminAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminAnnouncements")
	defer scope.End()

	announcements, err := handler.announcements.ListAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load announcements")

		handler.renderLoadFailure(w, view.PageAdminAnnouncements, "Announcements", []announcementModel.Announcement{})

		return
	}

	handler.renderer.Render(w, http.StatusOK, view.PageAdminAnnouncements, view.Page{
		Title: "Announcements",
		Flash: handler.flash.Pop(ctx),
		Data:  announcements,
	})
}

// renderLoadFailure shows the admin page empty with the error inline. A pending
// flash stays queued for the next page that loads.
func (handler *Handler) renderLoadFailure(w http.ResponseWriter, page, title string, empty any) {
	handler.renderer.Render(w, http.StatusInternalServerError, page, view.Page{
		Title: title,
		Flash: &session.Flash{Type: constant.FlashError, Message: dashboardLoadFailed},
		Data:  empty,
	})
}

func (handler *Handler) AdminGallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminGallery")
	defer scope.End()

	query := dto.GalleryQuery{}
	query.FromRequest(r, constant.CategoryAllAdmin)

	gallery, err := handler.site.AdminGallery(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load admin gallery")

		handler.flash.Error(ctx, galleryLoadFailed)
		response.SeeOther(w, r, constant.RouteAdminDashboard)

		return
	}

	handler.renderer.Render(w, http.StatusOK, view.PageAdminGallery, view.Page{
		Title: "Gallery",
		Flash: handler.flash.Pop(ctx),
		Data:  gallery,
	})
}
