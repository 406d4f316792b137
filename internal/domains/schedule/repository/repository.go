package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"furk/infras/otel"
	"furk/infras/postgres"
	"furk/internal/domains/schedule/model"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	"furk/shared/logger"
	gRepo "furk/shared/repository"
)

type Hours interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MerchantHours, error)
	Replace(ctx context.Context, merchantID string, models []model.MerchantHours) error
}

type Breaks interface {
	Insert(ctx context.Context, model model.MerchantBreak) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MerchantBreak, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MerchantBreak, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Closures interface {
	Insert(ctx context.Context, model model.MerchantClosure) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MerchantClosure, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MerchantClosure, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type hoursRepositoryImpl struct {
	gRepo.Repository[model.MerchantHours]
	db   *postgres.Connection
	otel otel.Otel
}

func NewHours(db *postgres.Connection, otel otel.Otel) Hours {
	return &hoursRepositoryImpl{
		Repository: gRepo.NewRepository[model.MerchantHours](model.HoursEntityName, model.HoursTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Replace swaps the merchant's whole weekly template atomically: the old
// rows and the new ones never coexist.
func (repo *hoursRepositoryImpl) Replace(ctx context.Context, merchantID string, models []model.MerchantHours) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".merchant_hours.Replace")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.HoursEntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMerchantID,
				Operator: gDto.FilterOperatorEq,
				Value:    merchantID,
				Table:    model.HoursTableName,
			},
		},
	}

	if err = repo.DeleteTx(ctx, tx, filter); err != nil {
		return fmt.Errorf("failed to clear merchant hours: %w", err)
	}

	if len(models) > 0 {
		if err = repo.InsertBulkTx(ctx, tx, models); err != nil {
			return fmt.Errorf("failed to insert merchant hours: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.HoursEntityName, err)
	}

	return nil
}

type breaksRepositoryImpl struct {
	gRepo.Repository[model.MerchantBreak]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBreaks(db *postgres.Connection, otel otel.Otel) Breaks {
	return &breaksRepositoryImpl{
		Repository: gRepo.NewRepository[model.MerchantBreak](model.BreakEntityName, model.BreakTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type closuresRepositoryImpl struct {
	gRepo.Repository[model.MerchantClosure]
	db   *postgres.Connection
	otel otel.Otel
}

func NewClosures(db *postgres.Connection, otel otel.Otel) Closures {
	return &closuresRepositoryImpl{
		Repository: gRepo.NewRepository[model.MerchantClosure](model.ClosureEntityName, model.ClosureTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
