package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/gallery_mock.go -package=mocks

import (
	"context"

	"curtainraiser/config"
	"curtainraiser/infras/kafka"
	"curtainraiser/infras/otel"
	"curtainraiser/internal/domains/gallery/model"
	"curtainraiser/internal/domains/gallery/model/dto"
	"curtainraiser/internal/domains/gallery/repository"
	mediaService "curtainraiser/internal/domains/media/service"
	resourceService "curtainraiser/internal/domains/resource/service"
	"curtainraiser/shared"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/cache"
	"curtainraiser/shared/constant"
	gDto "curtainraiser/shared/dto"
	"curtainraiser/shared/session"
	"curtainraiser/shared/validator"

	"golang.org/x/sync/errgroup"
)

type Gallery interface {
	Create(ctx context.Context, req dto.CreateGalleryRequest, imageURL string) (besteffort.Result, error)
	Update(ctx context.Context, id string, req dto.UpdateGalleryRequest, imageURL string) (besteffort.Result, error)
	Delete(ctx context.Context, id string) (besteffort.Result, error)
	Page(ctx context.Context, page int, category string) (dto.GalleryPage, error)
	Recent(ctx context.Context, limit int) ([]model.GalleryItem, error)
}

type serviceImpl struct {
	*resourceService.Service[model.GalleryItem]
	otel otel.Otel
}

func New(
	repo repository.Gallery,
	media mediaService.Media,
	redisCache cache.RedisCache,
	publisher kafka.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Gallery {
	return &serviceImpl{
		Service: resourceService.New[model.GalleryItem](model.Descriptor, repo, media, redisCache, publisher, cfg, otel),
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGalleryRequest, imageURL string) (besteffort.Result, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return s.RejectUpload(ctx, imageURL), err
	}

	return s.Service.Create(ctx, req.ToModel(session.Identity(ctx), imageURL))
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateGalleryRequest, imageURL string) (besteffort.Result, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return s.RejectUpload(ctx, imageURL), err
	}

	return s.Service.Update(ctx, id, func(model.GalleryItem) map[string]any {
		return req.ToUpdateFields(session.Identity(ctx))
	}, imageURL)
}

// Page reads one page of items, the total count and the category list concurrently.
// An empty category means every category.
func (s *serviceImpl) Page(ctx context.Context, page int, category string) (res dto.GalleryPage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Page")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if page < 1 {
		page = constant.DefaultValuePage
	}

	params := gDto.QueryParams{
		Page:    page,
		Limit:   constant.GalleryPageSize,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	filter := gDto.FilterGroup{}
	if category != constant.Empty {
		filter.Filters = []any{
			gDto.Filter{
				Field:    model.FieldCategory,
				Value:    category,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		items, err := s.Service.Page(groupCtx, params, filter)
		if err != nil {
			return err
		}

		res.Items = items.Items
		res.TotalItems = items.Total

		return nil
	})

	group.Go(func() error {
		categories, err := s.Distinct(groupCtx, model.FieldCategory)
		if err != nil {
			return err
		}

		res.Categories = categories

		return nil
	})

	if err = group.Wait(); err != nil {
		return dto.GalleryPage{}, err //nolint:wrapcheck
	}

	res.TotalPages = shared.CalculateTotalPage(res.TotalItems, constant.GalleryPageSize)

	return res, nil
}

func (s *serviceImpl) Recent(ctx context.Context, limit int) ([]model.GalleryItem, error) {
	return s.List(ctx, gDto.QueryParams{
		Limit:   limit,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{})
}
