//go:build wireinject
// +build wireinject

package di

import (
	"curtainraiser/config"
	"curtainraiser/infras/jwt"
	"curtainraiser/infras/kafka"
	"curtainraiser/infras/otel"
	"curtainraiser/infras/postgres"
	"curtainraiser/infras/redis"
	"curtainraiser/infras/s3"
	"curtainraiser/shared/cache"
	"curtainraiser/shared/session"
	"curtainraiser/transport/http"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/middleware"
	"curtainraiser/transport/http/router"
	"curtainraiser/transport/http/view"

	announcementRepository "curtainraiser/internal/domains/announcement/repository"
	announcementService "curtainraiser/internal/domains/announcement/service"
	authService "curtainraiser/internal/domains/auth/service"
	galleryRepository "curtainraiser/internal/domains/gallery/repository"
	galleryService "curtainraiser/internal/domains/gallery/service"
	mediaService "curtainraiser/internal/domains/media/service"
	servicesRepository "curtainraiser/internal/domains/services/repository"
	servicesService "curtainraiser/internal/domains/services/service"
	siteService "curtainraiser/internal/domains/site/service"

	announcementHandler "curtainraiser/internal/handlers/announcement"
	authHandler "curtainraiser/internal/handlers/auth"
	galleryHandler "curtainraiser/internal/handlers/gallery"
	servicesHandler "curtainraiser/internal/handlers/services"
	siteHandler "curtainraiser/internal/handlers/site"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.Provide,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionGate,
	middleware.NewUploadIntake,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	session.NewRedisStore,
	flash.New,
	view.New,
)

var mediaDomain = wire.NewSet(
	mediaService.New,
)

var servicesDomain = wire.NewSet(
	servicesRepository.New,
	servicesService.New,
)

var announcementDomain = wire.NewSet(
	announcementRepository.New,
	announcementService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var domains = wire.NewSet(
	mediaDomain,
	servicesDomain,
	announcementDomain,
	galleryDomain,
	siteService.New,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	siteHandler.New,
	servicesHandler.New,
	announcementHandler.New,
	galleryHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}
