package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"curtainraiser/shared/dto"
)

// Repository is the storage contract every admin-managed collection satisfies.
type Repository[T any] interface {
	Insert(ctx context.Context, model T) error
	Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error)
	GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error)
	Count(ctx context.Context, filter dto.FilterGroup) (int, error)
	Distinct(ctx context.Context, columnName string, filter dto.FilterGroup) ([]string, error)
	Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error
	Delete(ctx context.Context, filter dto.FilterGroup) error
}
