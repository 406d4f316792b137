package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"furk/infras/otel"
	"furk/infras/postgres"
	"furk/internal/domains/promo/model"
	gDto "furk/shared/dto"
	gRepo "furk/shared/repository"
)

type Promo interface {
	Insert(ctx context.Context, model model.Promo) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Promo, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Promo, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Redemptions interface {
	Insert(ctx context.Context, model model.PromoRedemption) error
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type promoRepositoryImpl struct {
	gRepo.Repository[model.Promo]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Promo {
	return &promoRepositoryImpl{
		Repository: gRepo.NewRepository[model.Promo](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type redemptionsRepositoryImpl struct {
	gRepo.Repository[model.PromoRedemption]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRedemptions(db *postgres.Connection, otel otel.Otel) Redemptions {
	return &redemptionsRepositoryImpl{
		Repository: gRepo.NewRepository[model.PromoRedemption](model.RedemptionEntityName, model.RedemptionTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
