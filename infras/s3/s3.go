package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"curtainraiser/config"
	"curtainraiser/infras/otel"
	"curtainraiser/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// ObjectAPI is the subset of the S3 client the gateway uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3 interface {
	PutObject(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	DeleteByPrefix(ctx context.Context, prefix string) (deleted []string, err error)
}

type s3Impl struct {
	client       ObjectAPI
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func (svc *s3Impl) PutObject(ctx context.Context, key, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.ObjectURL(key), nil
}

// DeleteByPrefix removes every object whose key starts with prefix and returns the removed keys.
func (svc *s3Impl) DeleteByPrefix(ctx context.Context, prefix string) (deleted []string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteByPrefix")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: prefix,
		otelAttrBucket:    svc.bucket,
	})

	var token *string

	for {
		page, err := svc.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(svc.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to list objects in S3: %w", err)
		}

		for _, object := range page.Contents {
			key := aws.ToString(object.Key)

			_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(svc.bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				log.Error().Err(err).Str("key", key).Msg("failed to delete file from S3")

				return deleted, fmt.Errorf("failed to delete file from S3: %w", err)
			}

			deleted = append(deleted, key)
		}

		if !aws.ToBool(page.IsTruncated) || page.NextContinuationToken == nil {
			return deleted, nil
		}

		token = page.NextContinuationToken
	}
}

func (svc *s3Impl) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(svc.publicDomain, "/"), key)
}

func NewWithClient(client ObjectAPI, config *config.Config, otel otel.Otel) S3 {
	return &s3Impl{
		client:       client,
		bucket:       config.External.S3.BucketName,
		publicDomain: config.External.S3.PublicDomain,
		otel:         otel,
	}
}

func New(config *config.Config, otel otel.Otel) (S3, error) {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(config.External.S3.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := config.External.S3.APIEndpoint; endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}

		o.UsePathStyle = true
	})

	return NewWithClient(client, config, otel), nil
}
