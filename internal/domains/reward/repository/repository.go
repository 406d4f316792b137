package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"furk/infras/otel"
	"furk/infras/postgres"
	"furk/internal/domains/reward/model"
	gDto "furk/shared/dto"
	gRepo "furk/shared/repository"
)

type Reward interface {
	Insert(ctx context.Context, model model.RewardProduct) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RewardProduct, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RewardProduct, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type rewardRepositoryImpl struct {
	gRepo.Repository[model.RewardProduct]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reward {
	return &rewardRepositoryImpl{
		Repository: gRepo.NewRepository[model.RewardProduct](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
