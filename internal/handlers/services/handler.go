package services

import (
	"net/http"

	"curtainraiser/config"
	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/services/model"
	"curtainraiser/internal/domains/services/model/dto"
	"curtainraiser/internal/domains/services/service"
	"curtainraiser/internal/handlers/resource"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/failure"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/middleware"
	"curtainraiser/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const toggleFailedMessage = "Error updating service status"

type Handler struct {
	controller *resource.Controller[dto.CreateServiceRequest, dto.UpdateServiceRequest, *dto.CreateServiceRequest, *dto.UpdateServiceRequest]
	service    service.Services
	intake     middleware.UploadIntake
	flash      flash.Notifier
	otel       otel.Otel
	cfg        *config.Config
}

func New(service service.Services, intake middleware.UploadIntake, flash flash.Notifier, otel otel.Otel, cfg *config.Config) Handler {
	return Handler{
		controller: resource.New[dto.CreateServiceRequest, dto.UpdateServiceRequest](model.Descriptor, service, flash, otel),
		service:    service,
		intake:     intake,
		flash:      flash,
		otel:       otel,
		cfg:        cfg,
	}
}

// Router mounts the service writes; the caller applies the session gate.
func (handler *Handler) Router(router chi.Router) {
	upload := handler.intake.Single(handler.cfg.Upload.Field)

	router.With(upload).Post("/create-services", handler.controller.Create)
	router.With(upload).Post("/services/update/{id}", handler.controller.Update)
	router.Post("/services/delete/{id}", handler.controller.Delete)
	router.Post("/services/toggle-active/{id}", handler.ToggleActive)
}

// ToggleActive flips the visibility of a service on the public pages.
func (handler *Handler) ToggleActive(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleActive")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	svc, err := handler.service.ToggleActive(ctx, id)

	switch {
	case failure.IsNotFound(err):
		handler.flash.Error(ctx, model.Descriptor.NotFoundMessage())
	case err != nil:
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to toggle service")

		handler.flash.Error(ctx, toggleFailedMessage)
	default:
		handler.flash.Success(ctx, "Service marked as "+svc.StatusLabel())
	}

	response.SeeOther(writer, request, model.Descriptor.ListPath)
}
