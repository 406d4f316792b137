package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"furk/infras/otel"
	"furk/infras/postgres"
	"furk/internal/domains/payment/model"
	gDto "furk/shared/dto"
	gRepo "furk/shared/repository"
)

type Payment interface {
	Insert(ctx context.Context, model model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type paymentRepositoryImpl struct {
	gRepo.Repository[model.Payment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &paymentRepositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
