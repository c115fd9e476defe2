package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/site_mock.go -package=mocks

import (
	"context"

	"curtainraiser/infras/otel"
	announcementService "curtainraiser/internal/domains/announcement/service"
	galleryService "curtainraiser/internal/domains/gallery/service"
	servicesModel "curtainraiser/internal/domains/services/model"
	servicesService "curtainraiser/internal/domains/services/service"
	"curtainraiser/internal/domains/site/model/dto"
	"curtainraiser/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Site composes the public pages and the read side of the admin views.
type Site interface {
	Landing(ctx context.Context) dto.Landing
	ActiveServices(ctx context.Context) []servicesModel.Service
	PublicGallery(ctx context.Context, query dto.GalleryQuery) dto.GalleryView
	AdminGallery(ctx context.Context, query dto.GalleryQuery) (dto.GalleryView, error)
}

type serviceImpl struct {
	services      servicesService.Services
	announcements announcementService.Announcement
	gallery       galleryService.Gallery
	otel          otel.Otel
}

func New(
	services servicesService.Services,
	announcements announcementService.Announcement,
	gallery galleryService.Gallery,
	otel otel.Otel,
) Site {
	return &serviceImpl{
		services:      services,
		announcements: announcements,
		gallery:       gallery,
		otel:          otel,
	}
}

// Landing reads the three home page collections concurrently. Any failure empties all of them.
func (s *serviceImpl) Landing(ctx context.Context) dto.Landing {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".site.Landing")
	defer scope.End()

	var landing dto.Landing

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		landing.Services, err = s.services.ListActive(groupCtx)

		return err
	})

	group.Go(func() (err error) {
		landing.Gallery, err = s.gallery.Recent(groupCtx, constant.LandingGalleryLimit)

		return err
	})

	group.Go(func() (err error) {
		landing.Announcements, err = s.announcements.Recent(groupCtx, constant.LandingAnnouncementMax)

		return err
	})

	if err := group.Wait(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load landing page, rendering empty collections")

		return dto.EmptyLanding()
	}

	return landing
}

func (s *serviceImpl) ActiveServices(ctx context.Context) []servicesModel.Service {
	services, err := s.services.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching services")

		return []servicesModel.Service{}
	}

	return services
}

func (s *serviceImpl) PublicGallery(ctx context.Context, query dto.GalleryQuery) dto.GalleryView {
	view, err := s.galleryView(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching gallery items")

		return dto.EmptyGalleryView(query.AllCategory)
	}

	return view
}

func (s *serviceImpl) AdminGallery(ctx context.Context, query dto.GalleryQuery) (dto.GalleryView, error) {
	return s.galleryView(ctx, query)
}

func (s *serviceImpl) galleryView(ctx context.Context, query dto.GalleryQuery) (view dto.GalleryView, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".site.Gallery")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	page, err := s.gallery.Page(ctx, query.Page, query.Filter())
	if err != nil {
		return view, err //nolint:wrapcheck
	}

	return dto.GalleryView{
		Items:           page.Items,
		Categories:      page.Categories,
		CurrentCategory: query.Category,
		Pagination:      dto.NewPagination(query.Page, page.TotalPages),
	}, nil
}
