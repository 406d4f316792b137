package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"furk/config"
	"furk/infras/otel/mocks"
	promoMocks "furk/internal/domains/promo/mocks"
	"furk/internal/domains/promo/model"
	"furk/internal/domains/promo/model/dto"
	"furk/internal/domains/promo/service"
	cacheMocks "furk/shared/cache/mocks"
	gDto "furk/shared/dto"
	"furk/shared/failure"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

type fixtures struct {
	repo        *promoMocks.MockPromo
	redemptions *promoMocks.MockRedemptions
	svc         service.Promo
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := promoMocks.NewMockPromo(ctrl)
	redemptions := promoMocks.NewMockRedemptions(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.NotFound("cache")).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixtures{
		repo:        repo,
		redemptions: redemptions,
		svc:         service.New(repo, redemptions, &config.Config{}, redisCache, mocks.NewOtel()),
	}
}

func activePromo() model.Promo {
	now := timezone.Now()

	return model.Promo{
		ID:           "promo-1",
		Code:         "SUMMER20",
		Description:  "Summer grooming discount",
		DiscountType: model.DiscountTypePercent,
		Value:        20,
		UsageLimit:   100,
		PerUserLimit: 1,
		UsedCount:    5,
		ValidFrom:    now.Add(-24 * time.Hour),
		ValidUntil:   now.Add(24 * time.Hour),
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "admin",
			ModifiedBy: "admin",
		},
	}
}

func TestPromoService_Create(t *testing.T) {
	now := timezone.Now()

	validReq := func() dto.CreatePromoRequest {
		return dto.CreatePromoRequest{
			Code:         "SUMMER20",
			DiscountType: model.DiscountTypePercent,
			Value:        20,
			ValidFrom:    now,
			ValidUntil:   now.Add(72 * time.Hour),
			Active:       true,
		}
	}

	t.Run("creates promo and returns it", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.Promo) error {
				assert.NotEmpty(t, mod.ID)
				assert.Nil(t, mod.MerchantID)
				assert.Equal(t, "SUMMER20", mod.Code)

				return nil
			})

		res, err := f.svc.Create(context.Background(), nil, validReq())

		require.NoError(t, err)
		assert.Equal(t, "SUMMER20", res.Code)
		assert.Zero(t, res.UsedCount)
	})

	t.Run("rejects duplicate code in the same scope", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(context.Background(), nil, validReq())

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("rejects percent value over 100", func(t *testing.T) {
		f := newFixtures(t)

		req := validReq()
		req.Value = 120

		_, err := f.svc.Create(context.Background(), nil, req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("allows fixed value over 100", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := validReq()
		req.DiscountType = model.DiscountTypeFixed
		req.Value = 50000

		_, err := f.svc.Create(context.Background(), nil, req)

		assert.NoError(t, err)
	})

	t.Run("rejects inverted validity window", func(t *testing.T) {
		f := newFixtures(t)

		req := validReq()
		req.ValidUntil = req.ValidFrom.Add(-time.Hour)

		_, err := f.svc.Create(context.Background(), nil, req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestPromoService_List(t *testing.T) {
	f := newFixtures(t)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Promo, error) {
			assert.Equal(t, 3, params.Page)
			assert.Equal(t, 10, params.Limit)

			return []model.Promo{activePromo()}, nil
		})

	res, err := f.svc.List(context.Background(), dto.PromoListRequest{Limit: 10, Offset: 20, Keyword: "summer"})

	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "SUMMER20", res.Data[0].Code)
}

func TestPromoService_Redeem(t *testing.T) {
	t.Run("redeems and increments counter", func(t *testing.T) {
		f := newFixtures(t)

		promo := activePromo()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promo, nil)
		f.redemptions.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.redemptions.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.PromoRedemption) error {
				assert.Equal(t, "promo-1", mod.PromoID)
				assert.Equal(t, "user-1", mod.UserID)

				return nil
			})
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, 6, fields[model.FieldUsedCount])

				return nil
			})

		res, err := f.svc.Redeem(context.Background(), "user-1", dto.RedeemPromoRequest{Code: "SUMMER20"})

		require.NoError(t, err)
		assert.Equal(t, 6, res.UsedCount)
	})

	t.Run("rejects expired promo", func(t *testing.T) {
		f := newFixtures(t)

		promo := activePromo()
		promo.ValidUntil = timezone.Now().Add(-time.Hour)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promo, nil)

		_, err := f.svc.Redeem(context.Background(), "user-1", dto.RedeemPromoRequest{Code: "SUMMER20"})

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("rejects exhausted promo", func(t *testing.T) {
		f := newFixtures(t)

		promo := activePromo()
		promo.UsedCount = promo.UsageLimit

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promo, nil)

		_, err := f.svc.Redeem(context.Background(), "user-1", dto.RedeemPromoRequest{Code: "SUMMER20"})

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("rejects over per-user limit", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activePromo(), nil)
		f.redemptions.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

		_, err := f.svc.Redeem(context.Background(), "user-1", dto.RedeemPromoRequest{Code: "SUMMER20"})

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Promo{}, nil)

		_, err := f.svc.Redeem(context.Background(), "user-1", dto.RedeemPromoRequest{Code: "NOPE"})

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPromoService_Scoping(t *testing.T) {
	merchantID := "merchant-1"
	otherID := "merchant-2"

	t.Run("merchant cannot delete another merchant's promo", func(t *testing.T) {
		f := newFixtures(t)

		promo := activePromo()
		promo.MerchantID = &otherID

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promo, nil)

		err := f.svc.Delete(context.Background(), &merchantID, "promo-1")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("admin cannot touch a merchant promo", func(t *testing.T) {
		f := newFixtures(t)

		promo := activePromo()
		promo.MerchantID = &merchantID

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promo, nil)

		err := f.svc.Delete(context.Background(), nil, "promo-1")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("owner deletes their promo", func(t *testing.T) {
		f := newFixtures(t)

		promo := activePromo()
		promo.MerchantID = &merchantID

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promo, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(context.Background(), &merchantID, "promo-1")

		assert.NoError(t, err)
	})
}
