// Package resource is the flash-and-redirect controller shared by every admin collection.
package resource

import (
	"context"
	"net/http"

	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/resource/model"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/constant"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/middleware"
	"curtainraiser/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Lifecycle is the write side of an admin collection.
type Lifecycle[C, U any] interface {
	Create(ctx context.Context, req C, imageURL string) (besteffort.Result, error)
	Update(ctx context.Context, id string, req U, imageURL string) (besteffort.Result, error)
	Delete(ctx context.Context, id string) (besteffort.Result, error)
}

// Form is a request DTO bound from the submitted form.
type Form[T any] interface {
	*T
	FromRequest(r *http.Request)
}

type Controller[C, U any, PC Form[C], PU Form[U]] struct {
	descriptor model.Descriptor
	lifecycle  Lifecycle[C, U]
	flash      flash.Notifier
	otel       otel.Otel
}

func New[C, U any, PC Form[C], PU Form[U]](
	descriptor model.Descriptor,
	lifecycle Lifecycle[C, U],
	flash flash.Notifier,
	otel otel.Otel,
) *Controller[C, U, PC, PU] {
	return &Controller[C, U, PC, PU]{
		descriptor: descriptor,
		lifecycle:  lifecycle,
		flash:      flash,
		otel:       otel,
	}
}

func (c *Controller[C, U, PC, PU]) scopeName(op string) string {
	return constant.OtelHandlerScopeName + "." + c.descriptor.Label() + "." + op
}

func (c *Controller[C, U, PC, PU]) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := c.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, c.scopeName("Create"))
	defer scope.End()

	var req C
	PC(&req).FromRequest(request)

	_, err := c.lifecycle.Create(ctx, req, middleware.UploadedImageURL(ctx))
	c.report(ctx, model.ActionCreated, err)

	response.SeeOther(writer, request, c.descriptor.ListPath)
}

func (c *Controller[C, U, PC, PU]) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := c.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, c.scopeName("Update"))
	defer scope.End()

	var req U
	PU(&req).FromRequest(request)

	id := chi.URLParam(request, constant.RequestParamID)

	_, err := c.lifecycle.Update(ctx, id, req, middleware.UploadedImageURL(ctx))
	c.report(ctx, model.ActionUpdated, err)

	response.SeeOther(writer, request, c.descriptor.ListPath)
}

func (c *Controller[C, U, PC, PU]) Delete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := c.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, c.scopeName("Delete"))
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	_, err := c.lifecycle.Delete(ctx, id)
	c.report(ctx, model.ActionDeleted, err)

	response.SeeOther(writer, request, c.descriptor.ListPath)
}

func (c *Controller[C, U, PC, PU]) report(ctx context.Context, action string, err error) {
	if err != nil {
		log.Error().Err(err).Str("entity", c.descriptor.Name).Str("action", action).Msg("admin write failed")
		c.flash.Error(ctx, c.descriptor.FailureMessage(action, err))

		return
	}

	c.flash.Success(ctx, c.descriptor.SuccessMessage(action))
}
