package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/services_mock.go -package=mocks

import (
	"context"

	"curtainraiser/config"
	"curtainraiser/infras/kafka"
	"curtainraiser/infras/otel"
	mediaService "curtainraiser/internal/domains/media/service"
	resourceService "curtainraiser/internal/domains/resource/service"
	"curtainraiser/internal/domains/services/model"
	"curtainraiser/internal/domains/services/model/dto"
	"curtainraiser/internal/domains/services/repository"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/cache"
	"curtainraiser/shared/constant"
	gDto "curtainraiser/shared/dto"
	"curtainraiser/shared/session"
	"curtainraiser/shared/timezone"
	"curtainraiser/shared/validator"
)

type Services interface {
	Create(ctx context.Context, req dto.CreateServiceRequest, imageURL string) (besteffort.Result, error)
	Update(ctx context.Context, id string, req dto.UpdateServiceRequest, imageURL string) (besteffort.Result, error)
	Delete(ctx context.Context, id string) (besteffort.Result, error)
	ToggleActive(ctx context.Context, id string) (model.Service, error)
	ListAll(ctx context.Context) ([]model.Service, error)
	ListActive(ctx context.Context) ([]model.Service, error)
}

type serviceImpl struct {
	*resourceService.Service[model.Service]
}

func New(
	repo repository.Services,
	media mediaService.Media,
	redisCache cache.RedisCache,
	publisher kafka.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Services {
	return &serviceImpl{
		Service: resourceService.New[model.Service](model.Descriptor, repo, media, redisCache, publisher, cfg, otel),
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest, imageURL string) (besteffort.Result, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return s.RejectUpload(ctx, imageURL), err
	}

	return s.Service.Create(ctx, req.ToModel(session.Identity(ctx), imageURL))
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateServiceRequest, imageURL string) (besteffort.Result, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return s.RejectUpload(ctx, imageURL), err
	}

	return s.Service.Update(ctx, id, func(model.Service) map[string]any {
		return req.ToUpdateFields(session.Identity(ctx))
	}, imageURL)
}

// ToggleActive flips is_active and returns the service as stored afterwards.
func (s *serviceImpl) ToggleActive(ctx context.Context, id string) (toggled model.Service, err error) {
	_, err = s.Service.Update(ctx, id, func(current model.Service) map[string]any {
		toggled = current
		toggled.IsActive = !current.IsActive

		return map[string]any{
			model.FieldIsActive:      toggled.IsActive,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: session.Identity(ctx),
		}
	}, constant.Empty)
	if err != nil {
		return model.Service{}, err
	}

	return toggled, nil
}

// ListAll feeds the admin dashboard, newest first.
func (s *serviceImpl) ListAll(ctx context.Context) ([]model.Service, error) {
	return s.List(ctx, newestFirst(), gDto.FilterGroup{})
}

func (s *serviceImpl) ListActive(ctx context.Context) ([]model.Service, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.List(ctx, newestFirst(), filter)
}

func newestFirst() gDto.QueryParams {
	return gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}
}
