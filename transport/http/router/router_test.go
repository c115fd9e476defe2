package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"curtainraiser/config"
	otelMocks "curtainraiser/infras/otel/mocks"
	announcementMocks "curtainraiser/internal/domains/announcement/mocks"
	authMocks "curtainraiser/internal/domains/auth/mocks"
	galleryMocks "curtainraiser/internal/domains/gallery/mocks"
	mediaMocks "curtainraiser/internal/domains/media/mocks"
	servicesMocks "curtainraiser/internal/domains/services/mocks"
	servicesModel "curtainraiser/internal/domains/services/model"
	siteMocks "curtainraiser/internal/domains/site/mocks"
	"curtainraiser/internal/handlers/announcement"
	"curtainraiser/internal/handlers/auth"
	"curtainraiser/internal/handlers/gallery"
	"curtainraiser/internal/handlers/services"
	"curtainraiser/internal/handlers/site"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/session"
	sessionMocks "curtainraiser/shared/session/mocks"
	"curtainraiser/transport/http/flash"
	"curtainraiser/transport/http/middleware"
	"curtainraiser/transport/http/router"
	"curtainraiser/transport/http/view"
)

type fixture struct {
	auth     *authMocks.MockAuth
	services *servicesMocks.MockServices
	store    *sessionMocks.MockStore
	cfg      *config.Config
	mux      http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	ot := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Name = "curtainraiser"
	cfg.App.AssetsDir = t.TempDir()
	cfg.Session.CookieName = "curtainraiser_session"
	cfg.Upload.MaxSizeMB = 1
	cfg.Upload.Field = "image"

	f := fixture{
		auth:     authMocks.NewMockAuth(ctrl),
		services: servicesMocks.NewMockServices(ctrl),
		store:    sessionMocks.NewMockStore(ctrl),
		cfg:      cfg,
	}

	renderer, err := view.New(cfg)
	require.NoError(t, err)

	notifier := flash.New(f.store)
	app := middleware.NewAppMiddleware(ot, cfg, nil)
	intake := middleware.NewUploadIntake(mediaMocks.NewMockMedia(ctrl), ot, cfg)

	handlers := router.DomainHandlers{
		Auth: auth.New(f.auth, renderer, app, ot, cfg),
		Site: site.New(siteMocks.NewMockSite(ctrl), f.services, announcementMocks.NewMockAnnouncement(ctrl),
			renderer, notifier, ot),
		Services:     services.New(f.services, intake, notifier, ot, cfg),
		Announcement: announcement.New(announcementMocks.NewMockAnnouncement(ctrl), intake, notifier, ot, cfg),
		Gallery:      gallery.New(galleryMocks.NewMockGallery(ctrl), intake, notifier, ot, cfg),
	}

	r := router.New(handlers, app, middleware.NewSessionGate(f.auth, ot, cfg), cfg)
	mux := chi.NewRouter()
	r.SetupRoutes(mux)
	f.mux = mux

	return f
}

func (f fixture) serve(request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.mux.ServeHTTP(recorder, request)

	return recorder
}

func TestRouter_AdminRoutesRequireSession(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, constant.RouteAdminDashboard},
		{http.MethodGet, constant.RouteAdminAnnouncements},
		{http.MethodGet, constant.RouteAdminGallery},
		{http.MethodPost, "/create-services"},
		{http.MethodPost, "/services/delete/1b4e28ba-2fa1-11d2-883f-0016d3cca427"},
		{http.MethodPost, "/announcements/delete/1b4e28ba-2fa1-11d2-883f-0016d3cca427"},
		{http.MethodPost, "/gallery/delete/1b4e28ba-2fa1-11d2-883f-0016d3cca427"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			recorder := f.serve(httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusFound, recorder.Code)
			assert.Equal(t, constant.RouteLogin, recorder.Header().Get("Location"))
		})
	}
}

func TestRouter_ExpiredSessionRedirects(t *testing.T) {
	f := newFixture(t)

	f.auth.EXPECT().Authenticate(gomock.Any(), "stale").Return(session.Session{}, errors.New("expired"))

	request := httptest.NewRequest(http.MethodGet, constant.RouteAdminDashboard, nil)
	request.AddCookie(&http.Cookie{Name: f.cfg.Session.CookieName, Value: "stale"})

	recorder := f.serve(request)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, constant.RouteLogin, recorder.Header().Get("Location"))
}

func TestRouter_LiveSessionReachesDashboard(t *testing.T) {
	f := newFixture(t)

	f.auth.EXPECT().Authenticate(gomock.Any(), "live").Return(session.Session{ID: "sid", Identity: "admin"}, nil)
	f.services.EXPECT().ListAll(gomock.Any()).Return([]servicesModel.Service{{ID: "s1", Name: "Lighting"}}, nil)
	f.store.EXPECT().PopFlash(gomock.Any(), "sid").Return(session.Flash{}, false, nil)

	request := httptest.NewRequest(http.MethodGet, constant.RouteAdminDashboard, nil)
	request.AddCookie(&http.Cookie{Name: f.cfg.Session.CookieName, Value: "live"})

	recorder := f.serve(request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Lighting")
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.App.AssetsDir, "site.css"), []byte("body{}"), 0o600))

	recorder := f.serve(httptest.NewRequest(http.MethodGet, "/assets/site.css", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "body{}", recorder.Body.String())

	recorder = f.serve(httptest.NewRequest(http.MethodGet, constant.RouteLogin, nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.serve(httptest.NewRequest(http.MethodGet, "/about", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
