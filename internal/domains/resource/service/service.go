package service

import (
	"context"
	"errors"
	"fmt"

	"curtainraiser/config"
	"curtainraiser/infras/kafka"
	"curtainraiser/infras/otel"
	mediaService "curtainraiser/internal/domains/media/service"
	"curtainraiser/internal/domains/resource/model"
	resourceRepository "curtainraiser/internal/domains/resource/repository"
	"curtainraiser/shared"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/cache"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/dto"
	"curtainraiser/shared/failure"
	"curtainraiser/shared/repository"
	"curtainraiser/shared/timezone"
	"curtainraiser/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	operationPublish   = "events.publish"
	cacheKeyDistinct   = "distinct"
	cacheKeyGeneration = "cachegen"
)

var errImageRequired = failure.BadRequestFromString("Image is required")

// Service runs the create/update/delete lifecycle shared by every admin collection:
// storage writes, image cleanup at the media host, cache invalidation and change events.
type Service[T model.Entity] struct {
	descriptor model.Descriptor
	repo       resourceRepository.Repository[T]
	media      mediaService.Media
	cache      cache.RedisCache
	publisher  kafka.Publisher
	cfg        *config.Config
	otel       otel.Otel
}

func New[T model.Entity](
	descriptor model.Descriptor,
	repo resourceRepository.Repository[T],
	media mediaService.Media,
	redisCache cache.RedisCache,
	publisher kafka.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) *Service[T] {
	return &Service[T]{
		descriptor: descriptor,
		repo:       repo,
		media:      media,
		cache:      redisCache,
		publisher:  publisher,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *Service[T]) Descriptor() model.Descriptor {
	return s.descriptor
}

func (s *Service[T]) scopeName(op string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelServiceScopeName, s.descriptor.TableName, op)
}

// Create persists record. If the insert fails, the image uploaded for it is removed.
func (s *Service[T]) Create(ctx context.Context, record T) (cleanup besteffort.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.scopeName("Create"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	imageURL := record.GetImageURL()
	cleanup = besteffort.Skipped(mediaService.OperationDelete, imageURL)

	if s.descriptor.ImageRequired && imageURL == constant.Empty {
		return cleanup, errImageRequired
	}

	if err = s.repo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Str("entity", s.descriptor.Name).Msg("failed to create record")

		if imageURL != constant.Empty {
			cleanup = s.media.DeleteByURL(ctx, imageURL)
		}

		return cleanup, failure.InternalError(err)
	}

	s.afterWrite(ctx, model.ActionCreated, record.GetID())

	return cleanup, nil
}

// Get loads one record by id. An id that is not a UUID cannot exist and reads as not found.
func (s *Service[T]) Get(ctx context.Context, id string) (record T, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.scopeName("Get"))
	defer scope.End()

	if validator.ValidateVar(id, "required,uuid") != nil {
		return record, failure.NotFound(s.descriptor.NotFoundMessage())
	}

	record, err = s.repo.Get(ctx, s.byID(id))
	if errors.Is(err, repository.ErrNotFound) {
		return record, failure.NotFound(s.descriptor.NotFoundMessage())
	}

	if err != nil {
		scope.TraceError(err)

		return record, failure.InternalError(err)
	}

	return record, nil
}

// Update applies changes to the stored record. When uploadedURL is set it replaces the
// current image, and the previous image is removed from the media host before the write.
// The returned result describes that removal.
func (s *Service[T]) Update(ctx context.Context, id string, changes model.Changes[T], uploadedURL string) (cleanup besteffort.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.scopeName("Update"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cleanup = besteffort.Skipped(mediaService.OperationDelete, constant.Empty)

	current, err := s.Get(ctx, id)
	if err != nil {
		s.discardUpload(ctx, uploadedURL)

		return cleanup, err
	}

	fields := changes(current)
	if fields == nil {
		fields = map[string]any{}
	}

	if uploadedURL != constant.Empty {
		if previous := current.GetImageURL(); previous != constant.Empty {
			cleanup = s.media.DeleteByURL(ctx, previous)
		}

		fields[s.descriptor.FieldImageURL] = uploadedURL
	}

	if len(fields) == 0 {
		return cleanup, nil
	}

	if err = s.repo.Update(ctx, fields, s.byID(id)); err != nil {
		log.Error().Err(err).Str("entity", s.descriptor.Name).Str("id", id).Msg("failed to update record")

		s.discardUpload(ctx, uploadedURL)

		return cleanup, failure.InternalError(err)
	}

	s.afterWrite(ctx, model.ActionUpdated, id)

	return cleanup, nil
}

// Delete removes the record and its image. A missing id succeeds without touching anything.
func (s *Service[T]) Delete(ctx context.Context, id string) (cleanup besteffort.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.scopeName("Delete"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cleanup = besteffort.Skipped(mediaService.OperationDelete, constant.Empty)

	current, err := s.Get(ctx, id)
	if failure.IsNotFound(err) {
		log.Info().Str("entity", s.descriptor.Name).Str("id", id).Msg("delete of missing record ignored")

		return cleanup, nil
	}

	if err != nil {
		return cleanup, err
	}

	if imageURL := current.GetImageURL(); imageURL != constant.Empty {
		cleanup = s.media.DeleteByURL(ctx, imageURL)
	}

	if err = s.repo.Delete(ctx, s.byID(id)); err != nil {
		log.Error().Err(err).Str("entity", s.descriptor.Name).Str("id", id).Msg("failed to delete record")

		return cleanup, failure.InternalError(err)
	}

	s.afterWrite(ctx, model.ActionDeleted, id)

	return cleanup, nil
}

// List returns the records matching filter, served from cache when possible.
func (s *Service[T]) List(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) (records []T, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.scopeName("List"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(s.descriptor.CachePrefix, params, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &records); cacheErr == nil {
		return records, nil
	}

	generation := s.generation(ctx)

	records, err = s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return []T{}, failure.InternalError(err)
	}

	s.saveCache(ctx, cacheKey, records, generation)

	return records, nil
}

// Page reads one page of records and the total count concurrently.
func (s *Service[T]) Page(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) (page model.Page[T], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.scopeName("Page"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	page.Items = []T{}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		items, err := s.List(groupCtx, params, filter)
		if err != nil {
			return err
		}

		page.Items = items

		return nil
	})

	group.Go(func() error {
		total, err := s.Count(groupCtx, filter)
		if err != nil {
			return err
		}

		page.Total = total

		return nil
	})

	if err = group.Wait(); err != nil {
		return model.Page[T]{Items: []T{}}, err //nolint:wrapcheck
	}

	return page, nil
}

func (s *Service[T]) Count(ctx context.Context, filter dto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(s.descriptor.CachePrefix, dto.QueryParams{}, filter) + ":count"

	if cacheErr := s.cache.Get(ctx, cacheKey, &total); cacheErr == nil {
		return total, nil
	}

	generation := s.generation(ctx)

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		return 0, failure.InternalError(err)
	}

	s.saveCache(ctx, cacheKey, total, generation)

	return total, nil
}

// Distinct lists the distinct non-empty values of column.
func (s *Service[T]) Distinct(ctx context.Context, column string) (values []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.scopeName("Distinct"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(s.descriptor.CachePrefix, cacheKeyDistinct, column)

	if cacheErr := s.cache.Get(ctx, cacheKey, &values); cacheErr == nil {
		return values, nil
	}

	generation := s.generation(ctx)

	values, err = s.repo.Distinct(ctx, column, dto.FilterGroup{})
	if err != nil {
		return []string{}, failure.InternalError(err)
	}

	s.saveCache(ctx, cacheKey, values, generation)

	return values, nil
}

func (s *Service[T]) byID(id string) dto.FilterGroup {
	return shared.FilterByID(id, s.descriptor.FieldID, s.descriptor.TableName)
}

func (s *Service[T]) generationKey() string {
	return shared.BuildCacheKey(cacheKeyGeneration, s.descriptor.CachePrefix)
}

// generation is the token of the last write to this resource, empty before the first.
func (s *Service[T]) generation(ctx context.Context) string {
	var token string
	_ = s.cache.Get(ctx, s.generationKey(), &token)

	return token
}

// saveCache stores a read taken at generation. A write that lands while the read is
// in flight changes the token, and the stored value is dropped again.
func (s *Service[T]) saveCache(ctx context.Context, key string, value any, generation string) {
	go func(ctx context.Context) {
		if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err != nil {
			return
		}

		if s.generation(ctx) != generation {
			_ = s.cache.Delete(ctx, key)
		}
	}(context.WithoutCancel(ctx))
}

// RejectUpload removes an image uploaded for a write that will not happen.
func (s *Service[T]) RejectUpload(ctx context.Context, uploadedURL string) besteffort.Result {
	if uploadedURL == constant.Empty {
		return besteffort.Skipped(mediaService.OperationDelete, uploadedURL)
	}

	return s.media.DeleteByURL(ctx, uploadedURL)
}

func (s *Service[T]) discardUpload(ctx context.Context, uploadedURL string) {
	s.RejectUpload(ctx, uploadedURL)
}

// afterWrite drops stale reads before the caller redirects, then announces the change.
func (s *Service[T]) afterWrite(ctx context.Context, action, id string) {
	if err := s.cache.Save(ctx, s.generationKey(), uuid.NewString(), 0); err != nil {
		log.Warn().Err(err).Str("entity", s.descriptor.Name).Msg("failed to bump cache generation")
	}

	shared.InvalidateCaches(ctx, s.cache, s.descriptor.CachePrefix)

	event := model.ChangeEvent{
		Entity: s.descriptor.TableName,
		Action: action,
		ID:     id,
		At:     timezone.Now(),
	}

	besteffort.Run(ctx, operationPublish, id, func(ctx context.Context) error {
		return s.publisher.Publish(ctx, kafka.Message{Key: s.descriptor.TableName, Value: event})
	})
}
