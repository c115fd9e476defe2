package repository

import (
	"curtainraiser/infras/otel"
	"curtainraiser/infras/postgres"
	"curtainraiser/internal/domains/gallery/model"
	resourceRepository "curtainraiser/internal/domains/resource/repository"
	gRepo "curtainraiser/shared/repository"
)

type Gallery = resourceRepository.Repository[model.GalleryItem]

type repositoryImpl struct {
	gRepo.Repository[model.GalleryItem]
}

func New(db *postgres.Connection, otel otel.Otel) Gallery {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.GalleryItem](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
