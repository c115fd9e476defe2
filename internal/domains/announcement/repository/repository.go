package repository

import (
	"curtainraiser/infras/otel"
	"curtainraiser/infras/postgres"
	"curtainraiser/internal/domains/announcement/model"
	resourceRepository "curtainraiser/internal/domains/resource/repository"
	gRepo "curtainraiser/shared/repository"
)

type Announcement = resourceRepository.Repository[model.Announcement]

type repositoryImpl struct {
	gRepo.Repository[model.Announcement]
}

func New(db *postgres.Connection, otel otel.Otel) Announcement {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Announcement](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
