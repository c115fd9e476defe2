package handler

import (
	"net/http"
	"sync"

	"curtainraiser/config"
	"curtainraiser/di"
	"curtainraiser/shared/logger"
	"curtainraiser/shared/timezone"
	"curtainraiser/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

// Handler is the serverless entry point; the dependency graph is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)
		logger.SetLogLevel(cfg)
		timezone.Init(cfg)

		server, _, err := di.InitializeService()
		if err != nil {
			initErr = err

			return
		}

		handler = server.Handler()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		response.WithInternalError(w)

		return
	}

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
