package gallery

import (
	"curtainraiser/config"
	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/gallery/model"
	"curtainraiser/internal/domains/gallery/model/dto"
	"curtainraiser/internal/domains/gallery/service"
	"curtainraiser/internal/handlers/resource"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	controller *resource.Controller[dto.CreateGalleryRequest, dto.UpdateGalleryRequest, *dto.CreateGalleryRequest, *dto.UpdateGalleryRequest]
	intake     middleware.UploadIntake
	cfg        *config.Config
}

func New(service service.Gallery, intake middleware.UploadIntake, flash flash.Notifier, otel otel.Otel, cfg *config.Config) Handler {
	return Handler{
		controller: resource.New[dto.CreateGalleryRequest, dto.UpdateGalleryRequest](model.Descriptor, service, flash, otel),
		intake:     intake,
		cfg:        cfg,
	}
}

// Router mounts the gallery writes. Create needs an image, which the lifecycle enforces.
func (handler *Handler) Router(router chi.Router) {
	upload := handler.intake.Single(handler.cfg.Upload.Field)

	router.With(upload).Post("/create-gallery", handler.controller.Create)
	router.With(upload).Post("/gallery/update/{id}", handler.controller.Update)
	router.Post("/gallery/delete/{id}", handler.controller.Delete)
}
