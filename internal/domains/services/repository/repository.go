package repository

import (
	"curtainraiser/infras/otel"
	"curtainraiser/infras/postgres"
	resourceRepository "curtainraiser/internal/domains/resource/repository"
	"curtainraiser/internal/domains/services/model"
	gRepo "curtainraiser/shared/repository"
)

type Services = resourceRepository.Repository[model.Service]

type repositoryImpl struct {
	gRepo.Repository[model.Service]
}

func New(db *postgres.Connection, otel otel.Otel) Services {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
