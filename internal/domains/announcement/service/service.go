package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/announcement_mock.go -package=mocks

import (
	"context"

	"curtainraiser/config"
	"curtainraiser/infras/kafka"
	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/announcement/model"
	"curtainraiser/internal/domains/announcement/model/dto"
	"curtainraiser/internal/domains/announcement/repository"
	mediaService "curtainraiser/internal/domains/media/service"
	resourceService "curtainraiser/internal/domains/resource/service"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/cache"
	"curtainraiser/shared/constant"
	gDto "curtainraiser/shared/dto"
	"curtainraiser/shared/session"
	"curtainraiser/shared/validator"
)

type Announcement interface {
	Create(ctx context.Context, req dto.CreateAnnouncementRequest, imageURL string) (besteffort.Result, error)
	Update(ctx context.Context, id string, req dto.UpdateAnnouncementRequest, imageURL string) (besteffort.Result, error)
	Delete(ctx context.Context, id string) (besteffort.Result, error)
	ListAll(ctx context.Context) ([]model.Announcement, error)
	Recent(ctx context.Context, limit int) ([]model.Announcement, error)
}

type serviceImpl struct {
	*resourceService.Service[model.Announcement]
}

func New(
	repo repository.Announcement,
	media mediaService.Media,
	redisCache cache.RedisCache,
	publisher kafka.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Announcement {
	return &serviceImpl{
		Service: resourceService.New[model.Announcement](model.Descriptor, repo, media, redisCache, publisher, cfg, otel),
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAnnouncementRequest, imageURL string) (besteffort.Result, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return s.RejectUpload(ctx, imageURL), err
	}

	return s.Service.Create(ctx, req.ToModel(session.Identity(ctx), imageURL))
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateAnnouncementRequest, imageURL string) (besteffort.Result, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return s.RejectUpload(ctx, imageURL), err
	}

	return s.Service.Update(ctx, id, func(current model.Announcement) map[string]any {
		return req.ToUpdateFields(session.Identity(ctx), current)
	}, imageURL)
}

func (s *serviceImpl) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return s.List(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}, gDto.FilterGroup{})
}

// Recent returns the newest announcements, at most limit of them.
func (s *serviceImpl) Recent(ctx context.Context, limit int) ([]model.Announcement, error) {
	return s.List(ctx, gDto.QueryParams{
		Limit:   limit,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{})
}
