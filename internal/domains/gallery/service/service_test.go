package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"curtainraiser/config"
	kafkaMocks "curtainraiser/infras/kafka/mocks"
	otelMocks "curtainraiser/infras/otel/mocks"
	"curtainraiser/internal/domains/gallery/model"
	"curtainraiser/internal/domains/gallery/model/dto"
	"curtainraiser/internal/domains/gallery/service"
	mediaMocks "curtainraiser/internal/domains/media/mocks"
	"curtainraiser/internal/domains/resource/mocks"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/cache"
	gDto "curtainraiser/shared/dto"
	"curtainraiser/shared/failure"
)

func newService(t *testing.T) (service.Gallery, *mocks.MockRepository[model.GalleryItem]) {
	t.Helper()

	ctrl := gomock.NewController(t)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	otel := otelMocks.NewOtel()
	repo := mocks.NewMockRepository[model.GalleryItem](ctrl)

	svc := service.New(repo, mediaMocks.NewMockMedia(ctrl), cache.NewRedisCache(client, otel), kafkaMocks.NewMockPublisher(ctrl), &config.Config{}, otel)

	return svc, repo
}

func TestGallery_CreateRequiresImage(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), dto.CreateGalleryRequest{Title: "Curtain call"}, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "Image is required", err.Error())
}

func TestGallery_InvalidFormDropsUpload(t *testing.T) {
	const uploaded = "https://cdn.example.com/upload/Thecurtainraiser_images/bow.png"
	longTitle := strings.Repeat("x", 201)

	ctrl := gomock.NewController(t)
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	otel := otelMocks.NewOtel()
	media := mediaMocks.NewMockMedia(ctrl)
	svc := service.New(mocks.NewMockRepository[model.GalleryItem](ctrl), media, cache.NewRedisCache(client, otel),
		kafkaMocks.NewMockPublisher(ctrl), &config.Config{}, otel)

	media.EXPECT().DeleteByURL(gomock.Any(), uploaded).
		Return(besteffort.Result{Operation: "media.delete", Target: uploaded, Attempted: true}).Times(2)

	result, err := svc.Create(context.Background(), dto.CreateGalleryRequest{Title: longTitle}, uploaded)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.True(t, result.Attempted)

	result, err = svc.Update(context.Background(), "1b4e28ba-2fa1-11d2-883f-0016d3cca427", dto.UpdateGalleryRequest{Title: &longTitle}, uploaded)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.True(t, result.Attempted)
}

func TestGallery_Page(t *testing.T) {
	t.Run("category filter and page math", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.GalleryItem, error) {
				assert.Equal(t, 2, params.Page)
				assert.Equal(t, 16, params.Limit)

				where, args := filter.GetWhereClause()
				assert.Equal(t, "(gallery_items.category = :category)", where)
				assert.Equal(t, "Drama", args["category"])

				return []model.GalleryItem{{ID: "g17"}}, nil
			},
		)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(33, nil)
		repo.EXPECT().Distinct(gomock.Any(), model.FieldCategory, gomock.Any()).Return([]string{"Drama", "Musical"}, nil)

		page, err := svc.Page(context.Background(), 2, "Drama")
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 33, page.TotalItems)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, []string{"Drama", "Musical"}, page.Categories)
	})

	t.Run("no category means no filter", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.GalleryItem, error) {
				assert.Equal(t, 1, params.Page)
				assert.Empty(t, filter.Filters)

				return []model.GalleryItem{}, nil
			},
		)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		repo.EXPECT().Distinct(gomock.Any(), model.FieldCategory, gomock.Any()).Return([]string{}, nil)

		page, err := svc.Page(context.Background(), 0, "")
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("category read failure fails the page", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.GalleryItem{}, nil).AnyTimes()
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		repo.EXPECT().Distinct(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))

		_, err := svc.Page(context.Background(), 1, "")
		assert.Error(t, err)
	})
}
