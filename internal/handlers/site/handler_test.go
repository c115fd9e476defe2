package site_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"curtainraiser/config"
	"curtainraiser/infras/otel/mocks"
	announcementMocks "curtainraiser/internal/domains/announcement/mocks"
	galleryModel "curtainraiser/internal/domains/gallery/model"
	servicesMocks "curtainraiser/internal/domains/services/mocks"
	servicesModel "curtainraiser/internal/domains/services/model"
	siteMocks "curtainraiser/internal/domains/site/mocks"
	"curtainraiser/internal/domains/site/model/dto"
	"curtainraiser/internal/handlers/site"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/session"
	sessionMocks "curtainraiser/shared/session/mocks"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/view"
)

type fixture struct {
	site          *siteMocks.MockSite
	services      *servicesMocks.MockServices
	announcements *announcementMocks.MockAnnouncement
	store         *sessionMocks.MockStore
	router        http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		site:          siteMocks.NewMockSite(ctrl),
		services:      servicesMocks.NewMockServices(ctrl),
		announcements: announcementMocks.NewMockAnnouncement(ctrl),
		store:         sessionMocks.NewMockStore(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.Name = "curtainraiser"

	renderer, err := view.New(cfg)
	require.NoError(t, err)

	handler := site.New(f.site, f.services, f.announcements, renderer, flash.New(f.store), mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)
	handler.AdminRouter(router)
	f.router = router

	return f
}

func serve(router http.Handler, path string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	request = request.WithContext(session.WithSession(request.Context(), session.Session{ID: "sid", Identity: "admin"}))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandler_PublicPages(t *testing.T) {
	f := newFixture(t)

	f.site.EXPECT().Landing(gomock.Any()).Return(dto.Landing{
		Services: []servicesModel.Service{{ID: "s1", Name: "Sound"}},
	})
	f.site.EXPECT().ActiveServices(gomock.Any()).Return([]servicesModel.Service{{ID: "s2", Name: "Lighting"}})
	f.site.EXPECT().PublicGallery(gomock.Any(), dto.GalleryQuery{Page: 2, Category: "stage", AllCategory: constant.CategoryAllPublic}).
		Return(dto.GalleryView{
			Items:           []galleryModel.GalleryItem{{ID: "g1", Title: "Curtain call", ImageURL: "u"}},
			CurrentCategory: "stage",
			Pagination:      dto.NewPagination(2, 2),
		})

	home := serve(f.router, "/")
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Sound")

	services := serve(f.router, "/services")
	assert.Contains(t, services.Body.String(), "Lighting")

	gallery := serve(f.router, "/gallery?page=2&category=stage")
	assert.Contains(t, gallery.Body.String(), "Curtain call")

	for _, path := range []string{"/about", "/contact"} {
		assert.Equal(t, http.StatusOK, serve(f.router, path).Code, path)
	}
}

func TestHandler_AdminDashboard(t *testing.T) {
	t.Run("renders with the pending flash", func(t *testing.T) {
		f := newFixture(t)

		f.services.EXPECT().ListAll(gomock.Any()).Return([]servicesModel.Service{{ID: "s1", Name: "Rigging"}}, nil)
		f.store.EXPECT().PopFlash(gomock.Any(), "sid").Return(session.Flash{Type: constant.FlashSuccess, Message: "Service created successfully"}, true, nil)

		recorder := serve(f.router, constant.RouteAdminDashboard)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Rigging")
		assert.Contains(t, recorder.Body.String(), "Service created successfully")
	})

	t.Run("load failure renders the error inline", func(t *testing.T) {
		f := newFixture(t)

		f.services.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db down"))

		recorder := serve(f.router, constant.RouteAdminDashboard)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Empty(t, recorder.Header().Get("Location"))
		assert.Contains(t, recorder.Body.String(), "Error loading dashboard")
	})
}

func TestHandler_AdminAnnouncements(t *testing.T) {
	f := newFixture(t)

	f.announcements.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db down"))

	recorder := serve(f.router, constant.RouteAdminAnnouncements)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Location"))
	assert.Contains(t, recorder.Body.String(), "Error loading dashboard")
}

func TestHandler_AdminGallery(t *testing.T) {
	t.Run("default category means all", func(t *testing.T) {
		f := newFixture(t)

		f.site.EXPECT().AdminGallery(gomock.Any(), dto.GalleryQuery{Page: 1, Category: constant.CategoryAllAdmin, AllCategory: constant.CategoryAllAdmin}).
			DoAndReturn(func(_ context.Context, query dto.GalleryQuery) (dto.GalleryView, error) {
				assert.Empty(t, query.Filter())

				return dto.GalleryView{CurrentCategory: query.Category, Pagination: dto.NewPagination(1, 1)}, nil
			})
		f.store.EXPECT().PopFlash(gomock.Any(), "sid").Return(session.Flash{}, false, nil)

		recorder := serve(f.router, constant.RouteAdminGallery+"?page=abc")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Page 1 of 1")
	})

	t.Run("failure redirects to the dashboard", func(t *testing.T) {
		f := newFixture(t)

		f.site.EXPECT().AdminGallery(gomock.Any(), gomock.Any()).Return(dto.GalleryView{}, errors.New("db down"))
		f.store.EXPECT().PutFlash(gomock.Any(), "sid", session.Flash{Type: constant.FlashError, Message: "Error loading gallery"}).Return(nil)

		recorder := serve(f.router, constant.RouteAdminGallery)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, constant.RouteAdminDashboard, recorder.Header().Get("Location"))
	})
}
