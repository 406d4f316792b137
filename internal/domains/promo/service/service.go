package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"furk/config"
	"furk/infras/otel"
	"furk/internal/domains/promo/model"
	"furk/internal/domains/promo/model/dto"
	"furk/internal/domains/promo/repository"
	"furk/shared"
	"furk/shared/cache"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	"furk/shared/failure"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

const (
	cacheGetPromo  = "promo:get"
	cacheListPromo = "promo:list"
)

type Promo interface {
	List(ctx context.Context, req dto.PromoListRequest) (dto.PromoListResponse, error)
	Get(ctx context.Context, id string) (dto.PromoResponse, error)
	Create(ctx context.Context, merchantID *string, req dto.CreatePromoRequest) (dto.PromoResponse, error)
	Update(ctx context.Context, merchantID *string, id string, req dto.UpdatePromoRequest) error
	Delete(ctx context.Context, merchantID *string, id string) error
	Redeem(ctx context.Context, userID string, req dto.RedeemPromoRequest) (dto.PromoResponse, error)
}

type serviceImpl struct {
	repo        repository.Promo
	redemptions repository.Redemptions
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Promo, redemptions repository.Redemptions, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Promo {
	return &serviceImpl{
		repo:        repo,
		redemptions: redemptions,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// List serves the offset window posted by infinite-scroll clients. The
// keyword matches code and description; an explicit merchant id narrows the
// listing to that merchant's promos plus admin-wide ones.
func (s *serviceImpl) List(ctx context.Context, req dto.PromoListRequest) (res dto.PromoListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	limit := req.Limit
	if limit == 0 {
		limit = constant.DefaultValueLimit
	}

	filter := listFilter(req)
	params := gDto.QueryParams{
		Page:    req.Offset/limit + 1,
		Limit:   limit,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheListPromo, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for promo list")

		return res, nil
	}

	promos, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list promos")

		return res, fmt.Errorf("failed to list promos: %w", err)
	}

	res.FromModels(promos)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save promo list to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PromoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPromo, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for promo")

		return res, nil
	}

	promo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo")

		return res, fmt.Errorf("failed to get promo: %w", err)
	}

	if promo.ID == "" {
		return res, failure.NotFound("promo not found")
	}

	res.FromModel(promo)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save promo to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, merchantID *string, req dto.CreatePromoRequest) (res dto.PromoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateDiscount(req.DiscountType, req.Value); err != nil {
		return res, err
	}

	if !req.ValidUntil.After(req.ValidFrom) {
		return res, failure.BadRequestFromString("valid_until must be after valid_from")
	}

	exist, err := s.repo.Exist(ctx, codeScopeFilter(req.Code, merchantID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check promo code")

		return res, fmt.Errorf("failed to check promo code: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("promo code %s already exists", req.Code))
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	mod := req.ToModel(merchantID, username)

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create promo")

		return res, fmt.Errorf("failed to create promo: %w", err)
	}

	s.invalidate(ctx, mod.ID)

	res.FromModel(mod)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, merchantID *string, id string, req dto.UpdatePromoRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	promo, err := s.getScoped(ctx, merchantID, id)
	if err != nil {
		return err
	}

	discountType := promo.DiscountType
	if req.DiscountType != nil {
		discountType = *req.DiscountType
	}

	value := promo.Value
	if req.Value != nil {
		value = *req.Value
	}

	if err = validateDiscount(discountType, value); err != nil {
		return err
	}

	validFrom := promo.ValidFrom
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}

	validUntil := promo.ValidUntil
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	if !validUntil.After(validFrom) {
		return failure.BadRequestFromString("valid_until must be after valid_from")
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	fields := shared.TransformFields(req, username)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update promo")

		return fmt.Errorf("failed to update promo: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, merchantID *string, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getScoped(ctx, merchantID, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete promo")

		return fmt.Errorf("failed to delete promo: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Redeem burns one use of the promo for the given user. The valid window,
// the global usage limit, and the per-user limit are all checked before the
// counter moves.
func (s *serviceImpl) Redeem(ctx context.Context, userID string, req dto.RedeemPromoRequest) (res dto.PromoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Redeem")
	defer scope.End()
	defer scope.TraceIfError(err)

	promo, err := s.repo.Get(ctx, codeFilter(req.Code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo by code")

		return res, fmt.Errorf("failed to get promo by code: %w", err)
	}

	if promo.ID == "" {
		return res, failure.NotFound("promo not found")
	}

	if !promo.Redeemable(timezone.Now()) {
		return res, failure.Conflict(fmt.Sprintf("promo %s is not redeemable", promo.Code))
	}

	if promo.PerUserLimit > 0 {
		redeemed, countErr := s.redemptions.Count(ctx, userRedemptionFilter(promo.ID, userID))
		if countErr != nil {
			log.Error().Err(countErr).Msg("failed to count promo redemptions")

			return res, fmt.Errorf("failed to count promo redemptions: %w", countErr)
		}

		if redeemed >= promo.PerUserLimit {
			return res, failure.Conflict(fmt.Sprintf("promo %s already redeemed %d times", promo.Code, redeemed))
		}
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	redemption := model.PromoRedemption{
		ID:      uuid.NewString(),
		PromoID: promo.ID,
		UserID:  userID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}

	if err = s.redemptions.Insert(ctx, redemption); err != nil {
		log.Error().Err(err).Msg("failed to record promo redemption")

		return res, fmt.Errorf("failed to record promo redemption: %w", err)
	}

	fields := map[string]any{
		model.FieldUsedCount:     promo.UsedCount + 1,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(promo.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to increment promo usage")

		return res, fmt.Errorf("failed to increment promo usage: %w", err)
	}

	s.invalidate(ctx, promo.ID)

	promo.UsedCount++
	res.FromModel(promo)

	return res, nil
}

// getScoped loads the promo and enforces ownership: a merchant caller only
// touches their own promos, an admin caller (nil merchant id) only admin-wide
// ones.
func (s *serviceImpl) getScoped(ctx context.Context, merchantID *string, id string) (model.Promo, error) {
	promo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo")

		return promo, fmt.Errorf("failed to get promo: %w", err)
	}

	if promo.ID == "" {
		return promo, failure.NotFound("promo not found")
	}

	switch {
	case merchantID == nil && promo.MerchantID != nil:
		return promo, failure.NotFound("promo not found")
	case merchantID != nil && (promo.MerchantID == nil || *promo.MerchantID != *merchantID):
		return promo, failure.NotFound("promo not found")
	}

	return promo, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheListPromo)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPromo, id)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate promo cache")
		}
	}()
}

func validateDiscount(discountType string, value float64) error {
	if model.DiscountTypeIsPercent(discountType) && value > 100 {
		return failure.BadRequestFromString("percent discount cannot exceed 100")
	}

	return nil
}

func listFilter(req dto.PromoListRequest) gDto.FilterGroup {
	filters := []any{}

	if req.Keyword != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "keyword_code",
					Field:    model.FieldCode,
					Operator: gDto.FilterOperatorLike,
					Value:    req.Keyword,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "keyword_description",
					Field:    model.FieldDescription,
					Operator: gDto.FilterOperatorLike,
					Value:    req.Keyword,
					Table:    model.TableName,
				},
			},
		})
	}

	if req.MerchantID != nil {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldMerchantID,
					Operator: gDto.FilterOperatorEq,
					Value:    *req.MerchantID,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldMerchantID,
					Operator: gDto.FilterIsNull,
					Table:    model.TableName,
				},
			},
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func codeFilter(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorEq,
				Value:    code,
				Table:    model.TableName,
			},
		},
	}
}

func codeScopeFilter(code string, merchantID *string) gDto.FilterGroup {
	scope := gDto.Filter{
		Field:    model.FieldMerchantID,
		Operator: gDto.FilterIsNull,
		Table:    model.TableName,
	}

	if merchantID != nil {
		scope = gDto.Filter{
			Field:    model.FieldMerchantID,
			Operator: gDto.FilterOperatorEq,
			Value:    *merchantID,
			Table:    model.TableName,
		}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorEq,
				Value:    code,
				Table:    model.TableName,
			},
			scope,
		},
	}
}

func userRedemptionFilter(promoID, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPromoID,
				Operator: gDto.FilterOperatorEq,
				Value:    promoID,
				Table:    model.RedemptionTableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.RedemptionTableName,
			},
		},
	}
}
