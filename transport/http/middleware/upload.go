package middleware

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"curtainraiser/config"
	"curtainraiser/infras/otel"
	mediaService "curtainraiser/internal/domains/media/service"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/failure"
	"curtainraiser/transport/http/response"

	"github.com/rs/zerolog/log"
)

// formOverheadBytes leaves room for the text fields sent next to the file.
const formOverheadBytes = 1 << 20

// UploadIntake stores at most one image per request before the handler runs.
type UploadIntake interface {
	Single(field string) func(http.Handler) http.Handler
}

type uploadIntake struct {
	media mediaService.Media
	otel  otel.Otel
	cfg   *config.Config
}

func NewUploadIntake(media mediaService.Media, otel otel.Otel, cfg *config.Config) UploadIntake {
	return &uploadIntake{
		media: media,
		otel:  otel,
		cfg:   cfg,
	}
}

// UploadedImageURL returns the retrieval URL stored by the intake, empty when no file was sent.
func UploadedImageURL(ctx context.Context) string {
	url, _ := ctx.Value(constant.ContextKeyImageURL).(string)

	return url
}

// Single accepts one file in field. Any other file field is rejected, as is a non-image content type.
// Upload errors are answered in plain text and the wrapped handler never runs.
func (u *uploadIntake) Single(field string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMultipart(r) {
				next.ServeHTTP(w, r)

				return
			}

			ctx, scope := u.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadIntake")
			defer scope.End()

			maxBytes := u.cfg.UploadMaxBytes()
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes+formOverheadBytes)

			if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
				scope.TraceError(err)

				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					response.WithError(w, failure.EntityTooLarge(mediaService.TooLargeMessage(u.cfg)))

					return
				}

				response.WithError(w, failure.Upload(err))

				return
			}

			for name, files := range r.MultipartForm.File {
				if name != field || len(files) > 1 {
					response.WithError(w, failure.UnexpectedField)

					return
				}
			}

			files := r.MultipartForm.File[field]
			if len(files) == 0 {
				next.ServeHTTP(w, r)

				return
			}

			header := files[0]

			if !strings.HasPrefix(header.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeImagePrefix) {
				response.WithError(w, failure.NotAnImage)

				return
			}

			if header.Size > maxBytes {
				response.WithError(w, failure.EntityTooLarge(mediaService.TooLargeMessage(u.cfg)))

				return
			}

			file, err := header.Open()
			if err != nil {
				scope.TraceError(err)
				response.WithError(w, failure.Upload(err))

				return
			}
			defer file.Close()

			url, err := u.media.Upload(ctx, file, header.Filename)
			if err != nil {
				scope.TraceError(err)
				log.Error().Err(err).Str("filename", header.Filename).Msg("failed to store upload")

				response.WithError(w, err)

				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), constant.ContextKeyImageURL, url)))
		})
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(constant.RequestHeaderContentType))

	return err == nil && mediaType == constant.ContentTypeMultipartFormData
}
