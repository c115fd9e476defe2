package announcement

import (
	"curtainraiser/config"
	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/announcement/model"
	"curtainraiser/internal/domains/announcement/model/dto"
	"curtainraiser/internal/domains/announcement/service"
	"curtainraiser/internal/handlers/resource"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	controller *resource.Controller[dto.CreateAnnouncementRequest, dto.UpdateAnnouncementRequest, *dto.CreateAnnouncementRequest, *dto.UpdateAnnouncementRequest]
	intake     middleware.UploadIntake
	cfg        *config.Config
}

func New(service service.Announcement, intake middleware.UploadIntake, flash flash.Notifier, otel otel.Otel, cfg *config.Config) Handler {
	return Handler{
		controller: resource.New[dto.CreateAnnouncementRequest, dto.UpdateAnnouncementRequest](model.Descriptor, service, flash, otel),
		intake:     intake,
		cfg:        cfg,
	}
}

func (handler *Handler) Router(router chi.Router) {
	upload := handler.intake.Single(handler.cfg.Upload.Field)

	router.With(upload).Post("/create-announcements", handler.controller.Create)
	router.With(upload).Post("/announcements/update/{id}", handler.controller.Update)
	router.Post("/announcements/delete/{id}", handler.controller.Delete)
}
