package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"furk/config"
	"furk/infras/otel"
	"furk/internal/domains/schedule/model"
	"furk/internal/domains/schedule/model/dto"
	"furk/internal/domains/schedule/repository"
	"furk/shared"
	"furk/shared/cache"
	"furk/shared/calendar"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	"furk/shared/failure"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

const (
	cacheGetSchedule = "schedule:get"
)

type Schedule interface {
	Get(ctx context.Context, merchantID string) (dto.ScheduleResponse, error)
	ReplaceHours(ctx context.Context, merchantID string, req dto.ReplaceHoursRequest) error
	CreateBreak(ctx context.Context, merchantID string, req dto.CreateBreakRequest) (dto.BreakResponse, error)
	UpdateBreak(ctx context.Context, merchantID, id string, req dto.UpdateBreakRequest) error
	DeleteBreak(ctx context.Context, merchantID, id string) error
	ToggleClosure(ctx context.Context, merchantID string, req dto.ToggleClosureRequest) (dto.ToggleClosureResponse, error)
}

type serviceImpl struct {
	hours    repository.Hours
	breaks   repository.Breaks
	closures repository.Closures
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(hours repository.Hours, breaks repository.Breaks, closures repository.Closures, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		hours:    hours,
		breaks:   breaks,
		closures: closures,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func merchantFilter(merchantID, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMerchantID,
				Operator: gDto.FilterOperatorEq,
				Value:    merchantID,
				Table:    table,
			},
		},
	}
}

func (s *serviceImpl) Get(ctx context.Context, merchantID string) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSchedule, merchantID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return res, nil
	}

	hours, breaks, closures, err := s.fetchAll(ctx, merchantID)
	if err != nil {
		return res, err
	}

	res.FromModels(hours, breaks, closures)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) fetchAll(ctx context.Context, merchantID string) (hours []model.MerchantHours, breaks []model.MerchantBreak, closures []model.MerchantClosure, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fetchAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	ordering := gDto.QueryParams{SortBy: model.FieldDayOfWeek, SortDir: gDto.SortDirAsc}

	hours, err = s.hours.GetAll(ctx, ordering, merchantFilter(merchantID, model.HoursTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get merchant hours")

		return nil, nil, nil, fmt.Errorf("failed to get merchant hours: %w", err)
	}

	breaks, err = s.breaks.GetAll(ctx, ordering, merchantFilter(merchantID, model.BreakTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get break hours")

		return nil, nil, nil, fmt.Errorf("failed to get break hours: %w", err)
	}

	closureOrdering := gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}

	closures, err = s.closures.GetAll(ctx, closureOrdering, merchantFilter(merchantID, model.ClosureTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get merchant closures")

		return nil, nil, nil, fmt.Errorf("failed to get merchant closures: %w", err)
	}

	return hours, breaks, closures, nil
}

func (s *serviceImpl) ReplaceHours(ctx context.Context, merchantID string, req dto.ReplaceHoursRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReplaceHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	seen := map[int]bool{}
	models := make([]model.MerchantHours, len(req.Hours))

	for i, entry := range req.Hours {
		if seen[entry.DayOfWeek] {
			return failure.BadRequestFromString(fmt.Sprintf("duplicate hours for day %d", entry.DayOfWeek))
		}

		seen[entry.DayOfWeek] = true

		if err := validateClockWindow(entry.OpenTime, entry.CloseTime); err != nil {
			return err
		}

		models[i] = entry.ToModel(merchantID, username)
	}

	if err = s.hours.Replace(ctx, merchantID, models); err != nil {
		log.Error().Err(err).Msg("failed to replace merchant hours")

		return fmt.Errorf("failed to replace merchant hours: %w", err)
	}

	s.invalidate(ctx, merchantID)

	return nil
}

func (s *serviceImpl) CreateBreak(ctx context.Context, merchantID string, req dto.CreateBreakRequest) (res dto.BreakResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBreak")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateClockWindow(req.StartTime, req.EndTime); err != nil {
		return res, err
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	mod := req.ToModel(merchantID, username)

	if err = s.breaks.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create break")

		return res, fmt.Errorf("failed to create break: %w", err)
	}

	s.invalidate(ctx, merchantID)
	res.FromModel(mod)

	return res, nil
}

func (s *serviceImpl) UpdateBreak(ctx context.Context, merchantID, id string, req dto.UpdateBreakRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBreak")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBreakRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	existing, err := s.breaks.Get(ctx, s.breakFilter(merchantID, id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get break")

		return fmt.Errorf("failed to get break: %w", err)
	}

	if existing.ID == "" {
		return failure.NotFound("break not found")
	}

	start, end := existing.StartTime, existing.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}

	if req.EndTime != nil {
		end = *req.EndTime
	}

	if err = validateClockWindow(start, end); err != nil {
		return err
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	updatedFields := shared.TransformFields(req, username)
	if err = s.breaks.Update(ctx, updatedFields, s.breakFilter(merchantID, id)); err != nil {
		log.Error().Err(err).Msg("failed to update break")

		return fmt.Errorf("failed to update break: %w", err)
	}

	s.invalidate(ctx, merchantID)

	return nil
}

func (s *serviceImpl) DeleteBreak(ctx context.Context, merchantID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBreak")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.breaks.Exist(ctx, s.breakFilter(merchantID, id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if break exists")

		return fmt.Errorf("failed to check if break exists: %w", err)
	}

	if !exist {
		return failure.NotFound("break not found")
	}

	if err = s.breaks.Delete(ctx, s.breakFilter(merchantID, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete break")

		return fmt.Errorf("failed to delete break: %w", err)
	}

	s.invalidate(ctx, merchantID)

	return nil
}

// ToggleClosure resolves a selected span against existing closures: an
// overlap removes the overlapped closure, otherwise a closure covering the
// span is created. The toggle never partially trims an existing closure.
func (s *serviceImpl) ToggleClosure(ctx context.Context, merchantID string, req dto.ToggleClosureRequest) (res dto.ToggleClosureResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleClosure")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end := req.Normalize()

	closures, err := s.closures.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMerchantID,
				Operator: gDto.FilterOperatorEq,
				Value:    merchantID,
				Table:    model.ClosureTableName,
			},
			gDto.Filter{
				ArgName:  "span_end",
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorLessEq,
				Value:    end,
				Table:    model.ClosureTableName,
			},
			gDto.Filter{
				ArgName:  "span_start",
				Field:    model.FieldEndTime,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    start,
				Table:    model.ClosureTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping closures")

		return res, fmt.Errorf("failed to get overlapping closures: %w", err)
	}

	for _, existing := range closures {
		overlap := calendar.Closure{ID: existing.ID, Start: existing.StartTime, End: existing.EndTime}
		if !overlap.Overlaps(start, end) {
			continue
		}

		if err = s.closures.Delete(ctx, s.closureFilter(merchantID, existing.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete closure")

			return res, fmt.Errorf("failed to delete closure: %w", err)
		}

		s.invalidate(ctx, merchantID)

		return dto.ToggleClosureResponse{Removed: true, ClosureID: existing.ID}, nil
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	mod := model.MerchantClosure{
		ID:         uuid.NewString(),
		MerchantID: merchantID,
		StartTime:  start,
		EndTime:    end,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}

	if err = s.closures.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create closure")

		return res, fmt.Errorf("failed to create closure: %w", err)
	}

	s.invalidate(ctx, merchantID)

	closure := dto.ClosureResponse{}
	closure.FromModel(mod)

	return dto.ToggleClosureResponse{Closure: &closure}, nil
}

func (s *serviceImpl) breakFilter(merchantID, id string) gDto.FilterGroup {
	return scopedIDFilter(merchantID, id, model.BreakTableName)
}

func (s *serviceImpl) closureFilter(merchantID, id string) gDto.FilterGroup {
	return scopedIDFilter(merchantID, id, model.ClosureTableName)
}

func scopedIDFilter(merchantID, id, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    table,
			},
			gDto.Filter{
				Field:    model.FieldMerchantID,
				Operator: gDto.FilterOperatorEq,
				Value:    merchantID,
				Table:    table,
			},
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, merchantID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSchedule, merchantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}

		// The cached booking calendar carries this merchant's hours, breaks
		// and closures, so a schedule write stales it too.
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyBookingCalendar, merchantID))
	}()
}

func validateClockWindow(start, end string) error {
	startClock, err := calendar.ParseClockTime(start)
	if err != nil {
		return failure.BadRequest(err)
	}

	endClock, err := calendar.ParseClockTime(end)
	if err != nil {
		return failure.BadRequest(err)
	}

	if endClock <= startClock {
		return failure.BadRequestFromString("end time must be after start time")
	}

	return nil
}
