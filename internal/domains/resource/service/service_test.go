package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"curtainraiser/config"
	kafkaMocks "curtainraiser/infras/kafka/mocks"
	otelMocks "curtainraiser/infras/otel/mocks"
	mediaMocks "curtainraiser/internal/domains/media/mocks"
	mediaService "curtainraiser/internal/domains/media/service"
	"curtainraiser/internal/domains/resource/mocks"
	"curtainraiser/internal/domains/resource/model"
	"curtainraiser/internal/domains/resource/service"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/cache"
	cacheMocks "curtainraiser/shared/cache/mocks"
	"curtainraiser/shared/dto"
	"curtainraiser/shared/failure"
	"curtainraiser/shared/repository"
)

const (
	recordID  = "6f1c2a8e-3b0d-4c55-9a51-0d2f5b7c9e11"
	missingID = "0b7e4d3a-9c21-4f8e-8d6a-5e3f1a2b4c77"
)

type poster struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	ImageURL string `db:"image_url"`
}

func (p poster) GetID() string       { return p.ID }
func (p poster) GetImageURL() string { return p.ImageURL }

const (
	oldImage = "https://cdn.example.com/upload/posters/1-old.png"
	newImage = "https://cdn.example.com/upload/posters/2-new.png"
)

type fixture struct {
	svc       *service.Service[poster]
	repo      *mocks.MockRepository[poster]
	media     *mediaMocks.MockMedia
	publisher *kafkaMocks.MockPublisher
	redis     *miniredis.Miniredis
}

func newFixture(t *testing.T, imageRequired bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	descriptor := posterDescriptor(imageRequired)

	f := fixture{
		repo:      mocks.NewMockRepository[poster](ctrl),
		media:     mediaMocks.NewMockMedia(ctrl),
		publisher: kafkaMocks.NewMockPublisher(ctrl),
		redis:     server,
	}

	otel := otelMocks.NewOtel()
	f.svc = service.New[poster](descriptor, f.repo, f.media, cache.NewRedisCache(client, otel), f.publisher, cfg, otel)

	return f
}

func posterDescriptor(imageRequired bool) model.Descriptor {
	return model.Descriptor{
		Name:          "Poster",
		TableName:     "posters",
		FieldID:       "id",
		FieldImageURL: "image_url",
		ListPath:      "/admin-posters",
		CachePrefix:   "cache:posters",
		ImageRequired: imageRequired,
	}
}

func attempted(target string, err error) besteffort.Result {
	return besteffort.Result{Operation: mediaService.OperationDelete, Target: target, Attempted: true, Err: err}
}

func TestService_Create(t *testing.T) {
	t.Run("persists, invalidates and publishes", func(t *testing.T) {
		f := newFixture(t, false)
		require.NoError(t, f.redis.Set("cache:posters:stale", "[]"))

		f.repo.EXPECT().Insert(gomock.Any(), poster{ID: "p1", Title: "Opening"}).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		cleanup, err := f.svc.Create(context.Background(), poster{ID: "p1", Title: "Opening"})
		require.NoError(t, err)
		assert.False(t, cleanup.Attempted)
		assert.False(t, f.redis.Exists("cache:posters:stale"))
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := f.svc.Create(context.Background(), poster{ID: "p1"})
		assert.NoError(t, err)
	})

	t.Run("image required", func(t *testing.T) {
		f := newFixture(t, true)

		_, err := f.svc.Create(context.Background(), poster{ID: "p1", Title: "No picture"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "Image is required", err.Error())
	})

	t.Run("failed insert removes the fresh upload", func(t *testing.T) {
		f := newFixture(t, true)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		f.media.EXPECT().DeleteByURL(gomock.Any(), newImage).Return(attempted(newImage, nil)).Times(1)

		cleanup, err := f.svc.Create(context.Background(), poster{ID: "p1", ImageURL: newImage})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.True(t, cleanup.Succeeded())
	})
}

func TestService_Update(t *testing.T) {
	rename := func(poster) map[string]any { return map[string]any{"title": "Renamed"} }

	t.Run("missing record is not found and the upload is discarded", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{}, repository.ErrNotFound)
		f.media.EXPECT().DeleteByURL(gomock.Any(), newImage).Return(attempted(newImage, nil))

		_, err := f.svc.Update(context.Background(), missingID, rename, newImage)
		require.Error(t, err)
		assert.True(t, failure.IsNotFound(err))
		assert.Equal(t, "Poster not found", err.Error())
	})

	t.Run("new image deletes the previous one before the write", func(t *testing.T) {
		f := newFixture(t, false)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{ID: "p1", ImageURL: oldImage}, nil),
			f.media.EXPECT().DeleteByURL(gomock.Any(), oldImage).Return(attempted(oldImage, errors.New("host down"))),
			f.repo.EXPECT().Update(gomock.Any(), map[string]any{"title": "Renamed", "image_url": newImage}, gomock.Any()).Return(nil),
		)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		cleanup, err := f.svc.Update(context.Background(), recordID, rename, newImage)
		require.NoError(t, err)
		assert.True(t, cleanup.Failed(), "gateway failure is reported, not returned")
	})

	t.Run("no upload leaves the image alone", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{ID: "p1", ImageURL: oldImage}, nil)
		f.repo.EXPECT().Update(gomock.Any(), map[string]any{"title": "Renamed"}, gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		cleanup, err := f.svc.Update(context.Background(), recordID, rename, "")
		require.NoError(t, err)
		assert.False(t, cleanup.Attempted)
	})

	t.Run("changes see the stored record", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{ID: "p1", Title: "Opening"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), map[string]any{"title": "Opening (encore)"}, gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Update(context.Background(), recordID, func(current poster) map[string]any {
			return map[string]any{"title": current.Title + " (encore)"}
		}, "")
		assert.NoError(t, err)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{ID: "p1"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))

		_, err := f.svc.Update(context.Background(), recordID, rename, "")
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("malformed id is treated as missing without a lookup", func(t *testing.T) {
		f := newFixture(t, false)

		cleanup, err := f.svc.Delete(context.Background(), "not-a-uuid")
		require.NoError(t, err)
		assert.False(t, cleanup.Attempted)
	})

	t.Run("missing id is an idempotent success", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{}, repository.ErrNotFound)

		cleanup, err := f.svc.Delete(context.Background(), missingID)
		require.NoError(t, err)
		assert.False(t, cleanup.Attempted)
	})

	t.Run("record with image calls the gateway exactly once", func(t *testing.T) {
		f := newFixture(t, false)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{ID: "p1", ImageURL: oldImage}, nil),
			f.media.EXPECT().DeleteByURL(gomock.Any(), oldImage).Return(attempted(oldImage, nil)).Times(1),
			f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
		)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		cleanup, err := f.svc.Delete(context.Background(), recordID)
		require.NoError(t, err)
		assert.True(t, cleanup.Succeeded())
	})

	t.Run("record without image skips the gateway", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{ID: "p1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Delete(context.Background(), recordID)
		assert.NoError(t, err)
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(poster{}, errors.New("timeout"))

		_, err := f.svc.Delete(context.Background(), recordID)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestService_Page(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 16, SortBy: "created_at", SortDir: dto.SortDirDesc}

	t.Run("items and total", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]poster{{ID: "p17"}}, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(17, nil)

		page, err := f.svc.Page(context.Background(), params, dto.FilterGroup{})
		require.NoError(t, err)
		assert.Equal(t, []poster{{ID: "p17"}}, page.Items)
		assert.Equal(t, 17, page.Total)
	})

	t.Run("any read failure fails the page", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("down")).AnyTimes()
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

		page, err := f.svc.Page(context.Background(), params, dto.FilterGroup{})
		require.Error(t, err)
		assert.Empty(t, page.Items)
		assert.NotNil(t, page.Items)
	})
}

func TestService_DistinctIsCached(t *testing.T) {
	f := newFixture(t, false)

	f.repo.EXPECT().Distinct(gomock.Any(), "category", gomock.Any()).Return([]string{"Drama", "Musical"}, nil).Times(1)

	values, err := f.svc.Distinct(context.Background(), "category")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama", "Musical"}, values)

	require.Eventually(t, func() bool {
		return f.redis.Exists("cache:posters:distinct:category")
	}, time.Second, 10*time.Millisecond)

	values, err = f.svc.Distinct(context.Background(), "category")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama", "Musical"}, values)
}

func TestService_ReadOverlappingWriteIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)

	const (
		distinctKey   = "cache:posters:distinct:category"
		generationKey = "cachegen:cache:posters"
	)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	repo := mocks.NewMockRepository[poster](ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	otel := otelMocks.NewOtel()
	svc := service.New[poster](posterDescriptor(false), repo, mediaMocks.NewMockMedia(ctrl), redisCache,
		kafkaMocks.NewMockPublisher(ctrl), cfg, otel)

	setToken := func(token string) func(context.Context, string, any) error {
		return func(_ context.Context, _ string, value any) error {
			*value.(*string) = token

			return nil
		}
	}

	dropped := make(chan struct{})

	gomock.InOrder(
		redisCache.EXPECT().Get(gomock.Any(), distinctKey, gomock.Any()).Return(cache.Nil),
		redisCache.EXPECT().Get(gomock.Any(), generationKey, gomock.Any()).DoAndReturn(setToken("before")),
		repo.EXPECT().Distinct(gomock.Any(), "category", gomock.Any()).Return([]string{"Drama"}, nil),
		redisCache.EXPECT().Save(gomock.Any(), distinctKey, []string{"Drama"}, 60).Return(nil),
		redisCache.EXPECT().Get(gomock.Any(), generationKey, gomock.Any()).DoAndReturn(setToken("after")),
		redisCache.EXPECT().Delete(gomock.Any(), distinctKey).DoAndReturn(func(context.Context, string) error {
			close(dropped)

			return nil
		}),
	)

	values, err := svc.Distinct(context.Background(), "category")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, values)

	select {
	case <-dropped:
	case <-time.After(time.Second):
		t.Fatal("stale read stayed cached")
	}
}

func TestService_WriteRotatesCacheGeneration(t *testing.T) {
	f := newFixture(t, false)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	_, err := f.svc.Create(context.Background(), poster{ID: recordID, Title: "Hamlet"})
	require.NoError(t, err)

	first, err := f.redis.Get("cachegen:cache:posters")
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	_, err = f.svc.Create(context.Background(), poster{ID: missingID, Title: "Macbeth"})
	require.NoError(t, err)

	second, err := f.redis.Get("cachegen:cache:posters")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
