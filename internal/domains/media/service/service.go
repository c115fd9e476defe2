package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/media_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"slices"
	"strings"

	"curtainraiser/config"
	"curtainraiser/infras/otel"
	"curtainraiser/infras/s3"
	"curtainraiser/shared/besteffort"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/failure"
	"curtainraiser/shared/timezone"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// OperationDelete labels the best-effort result of DeleteByURL.
const OperationDelete = "media.delete"

const (
	uploadMarker     = "upload"
	defaultAssetName = "image"
)

var (
	versionSegment = regexp.MustCompile(`^v\d+$`)
	unsafeNameChar = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

	errNoAssetID = errors.New("cannot derive asset id from url")
)

type Media interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
	DeleteByURL(ctx context.Context, retrievalURL string) besteffort.Result
}

type serviceImpl struct {
	s3   s3.S3
	cfg  *config.Config
	otel otel.Otel
}

func New(s3 s3.S3, cfg *config.Config, otel otel.Otel) Media {
	return &serviceImpl{
		s3:   s3,
		cfg:  cfg,
		otel: otel,
	}
}

// Upload sniffs the real format, limits the dimensions and stores the asset.
// Rejections and host failures are returned as upload failures.
func (s *serviceImpl) Upload(ctx context.Context, file io.Reader, filename string) (retrievalURL string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".media.Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	maxBytes := s.cfg.UploadMaxBytes()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return constant.Empty, failure.Upload(err)
	}

	if int64(len(data)) > maxBytes {
		return constant.Empty, failure.EntityTooLarge(TooLargeMessage(s.cfg))
	}

	detected := mimetype.Detect(data)
	format := strings.TrimPrefix(detected.Extension(), ".")

	if !slices.Contains(s.cfg.Upload.AllowedFormats, format) {
		if format == constant.Empty {
			format = detected.String()
		}

		return constant.Empty, failure.Upload(fmt.Errorf("image file format %s not allowed", format))
	}

	data, err = limitDimensions(data, format, s.cfg.Upload.MaxWidth, s.cfg.Upload.MaxHeight)
	if err != nil {
		return constant.Empty, failure.Upload(err)
	}

	key := ObjectKey(s.cfg.External.S3.Folder, filename, format, timezone.Now().UnixMilli())
	scope.SetAttribute("object_key", key)

	retrievalURL, err = s.s3.PutObject(ctx, key, detected.String(), data)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload asset")

		return constant.Empty, failure.Upload(err)
	}

	return retrievalURL, nil
}

// DeleteByURL removes every stored rendition of the asset behind retrievalURL.
func (s *serviceImpl) DeleteByURL(ctx context.Context, retrievalURL string) besteffort.Result {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".media.DeleteByURL")
	defer scope.End()

	return besteffort.Run(ctx, OperationDelete, retrievalURL, func(ctx context.Context) error {
		assetID, ok := AssetID(retrievalURL)
		if !ok {
			return fmt.Errorf("%w: %s", errNoAssetID, retrievalURL)
		}

		deleted, err := s.s3.DeleteByPrefix(ctx, path.Join(uploadMarker, assetID)+".")
		if err != nil {
			scope.TraceError(err)

			return err
		}

		log.Debug().Str("asset", assetID).Int("objects", len(deleted)).Msg("deleted asset")

		return nil
	})
}

// AssetID returns the path after the upload marker, minus any version segment and the extension.
func AssetID(retrievalURL string) (string, bool) {
	rawPath := retrievalURL
	if parsed, err := url.Parse(retrievalURL); err == nil {
		rawPath = parsed.Path
	} else if idx := strings.IndexAny(rawPath, "?#"); idx >= 0 {
		rawPath = rawPath[:idx]
	}

	segments := strings.Split(strings.Trim(rawPath, "/"), "/")

	marker := slices.Index(segments, uploadMarker)
	if marker < 0 {
		return constant.Empty, false
	}

	rest := segments[marker+1:]
	if len(rest) > 0 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}

	joined := strings.Join(rest, "/")
	assetID := strings.TrimSuffix(joined, path.Ext(joined))

	if assetID == constant.Empty || strings.HasSuffix(assetID, "/") {
		return constant.Empty, false
	}

	return assetID, true
}

// ObjectKey builds upload/<folder>/<millis>-<base>.<format>.
func ObjectKey(folder, filename, format string, millis int64) string {
	base, _, _ := strings.Cut(path.Base(strings.ReplaceAll(filename, "\\", "/")), ".")

	base = strings.Trim(unsafeNameChar.ReplaceAllString(base, "-"), "-")
	if base == constant.Empty {
		base = defaultAssetName
	}

	return path.Join(uploadMarker, folder, fmt.Sprintf("%d-%s.%s", millis, base, format))
}

// TooLargeMessage is the single size-limit message derived from the configured ceiling.
func TooLargeMessage(cfg *config.Config) string {
	return fmt.Sprintf("File size exceeds the limit of %d MB", cfg.Upload.MaxSizeMB)
}
