package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"furk/config"
	"furk/infras/kafka"
	"furk/infras/otel"
	"furk/internal/domains/booking/model"
	"furk/internal/domains/booking/model/dto"
	"furk/internal/domains/booking/repository"
	scheduleModel "furk/internal/domains/schedule/model"
	scheduleDto "furk/internal/domains/schedule/model/dto"
	scheduleRepo "furk/internal/domains/schedule/repository"
	"furk/shared"
	"furk/shared/cache"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	"furk/shared/failure"
	"furk/shared/timezone"
)

const (
	cacheGetBooking = "booking:get"
)

// StatusEvent is the payload published to the booking.status topic on every
// lifecycle change.
type StatusEvent struct {
	BookingID  string    `json:"booking_id"`
	MerchantID string    `json:"merchant_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Booking interface {
	CalendarList(ctx context.Context, merchantID string, req dto.CalendarListRequest) (dto.CalendarListResponse, error)
	Get(ctx context.Context, merchantID, id string) (dto.BookingDetailResponse, error)
	Create(ctx context.Context, customerID string, req dto.CreateBookingRequest) (dto.BookingDetailResponse, error)
	Transition(ctx context.Context, merchantID, id, action string) (dto.BookingDetailResponse, error)
	SetPaymentStatus(ctx context.Context, id, paymentStatus string) error
}

type serviceImpl struct {
	repo     repository.Booking
	hours    scheduleRepo.Hours
	breaks   scheduleRepo.Breaks
	closures scheduleRepo.Closures
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	hours scheduleRepo.Hours,
	breaks scheduleRepo.Breaks,
	closures scheduleRepo.Closures,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		hours:    hours,
		breaks:   breaks,
		closures: closures,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafkaClient,
		otel:     otel,
	}
}

// CalendarList is the calendar's single fetch: bookings in the visible
// window plus the merchant's hours, breaks and closures in one response. The
// schedule metadata always rides along so the calendar never issues a
// second request.
func (s *serviceImpl) CalendarList(ctx context.Context, merchantID string, req dto.CalendarListRequest) (res dto.CalendarListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CalendarList")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, err := calendarFilter(merchantID, req)
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: model.FieldRequestedAt, SortDir: gDto.SortDirAsc}
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(constant.CacheKeyBookingCalendar, merchantID), params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking calendar")

		return res, nil
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	schedule, err := s.merchantSchedule(ctx, merchantID)
	if err != nil {
		return res, err
	}

	res.FromModels(bookings, schedule)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking calendar to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, merchantID, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getOwned(ctx, merchantID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, customerID string, req dto.CreateBookingRequest) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	mod := req.ToModel(customerID, username)

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx, mod.MerchantID, mod.ID)
	s.publishStatus(ctx, mod.ID, mod.MerchantID, mod.Status)

	res.FromModel(mod)

	return res, nil
}

// Transition applies a merchant action to the booking lifecycle. Illegal
// transitions are rejected with a conflict; the updated booking is returned
// so the caller can render it, though the client treats every mutation as
// fire-and-refetch anyway.
func (s *serviceImpl) Transition(ctx context.Context, merchantID, id, action string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getOwned(ctx, merchantID, id)
	if err != nil {
		return res, err
	}

	next, ok := model.NextStatus(booking.Status, action)
	if !ok {
		return res, failure.Conflict(fmt.Sprintf("booking status %s does not allow %s", booking.Status, action))
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	fields := map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	if next == model.StatusInProgress && booking.StartTime == nil {
		fields[model.FieldStartTime] = timezone.Now()
	}

	if next == model.StatusCompleted && booking.EndTime == nil {
		fields[model.FieldEndTime] = timezone.Now()
	}

	// The update matches on the status the transition was validated against,
	// so a concurrent transition that already moved the booking updates zero
	// rows instead of overwriting it.
	guard := ownedFilter(merchantID, id)
	guard.Filters = append(guard.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    booking.Status,
		Table:    model.TableName,
	})

	affected, err := s.repo.UpdateCount(ctx, fields, guard)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return res, failure.Conflict(fmt.Sprintf("booking is no longer %s", booking.Status))
	}

	s.invalidate(ctx, merchantID, id)
	s.publishStatus(ctx, id, merchantID, next)

	booking, err = s.getOwned(ctx, merchantID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// SetPaymentStatus pays a gateway result through to the booking row. Called
// by the payment domain on callbacks and status refreshes.
func (s *serviceImpl) SetPaymentStatus(ctx context.Context, id, paymentStatus string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetPaymentStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return failure.NotFound("booking not found")
	}

	fields := map[string]any{
		model.FieldPaymentStatus: paymentStatus,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking payment status")

		return fmt.Errorf("failed to update booking payment status: %w", err)
	}

	s.invalidate(ctx, booking.MerchantID, id)

	return nil
}

func ownedFilter(merchantID, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldMerchantID,
				Operator: gDto.FilterOperatorEq,
				Value:    merchantID,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) getOwned(ctx context.Context, merchantID, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, ownedFilter(merchantID, id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) merchantSchedule(ctx context.Context, merchantID string) (res scheduleDto.ScheduleResponse, err error) {
	ordering := gDto.QueryParams{SortBy: scheduleModel.FieldDayOfWeek, SortDir: gDto.SortDirAsc}

	hours, err := s.hours.GetAll(ctx, ordering, merchantScheduleFilter(merchantID, scheduleModel.HoursTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get merchant hours")

		return res, fmt.Errorf("failed to get merchant hours: %w", err)
	}

	breaks, err := s.breaks.GetAll(ctx, ordering, merchantScheduleFilter(merchantID, scheduleModel.BreakTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get break hours")

		return res, fmt.Errorf("failed to get break hours: %w", err)
	}

	closureOrdering := gDto.QueryParams{SortBy: scheduleModel.FieldStartTime, SortDir: gDto.SortDirAsc}

	closures, err := s.closures.GetAll(ctx, closureOrdering, merchantScheduleFilter(merchantID, scheduleModel.ClosureTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get merchant closures")

		return res, fmt.Errorf("failed to get merchant closures: %w", err)
	}

	res.FromModels(hours, breaks, closures)

	return res, nil
}

func calendarFilter(merchantID string, req dto.CalendarListRequest) (gDto.FilterGroup, error) {
	windowStart, err := timezone.Parse(constant.DateOnlyFormat, req.StartDate)
	if err != nil {
		return gDto.FilterGroup{}, failure.BadRequestFromString("invalid start_date")
	}

	windowEnd, err := timezone.Parse(constant.DateOnlyFormat, req.EndDate)
	if err != nil {
		return gDto.FilterGroup{}, failure.BadRequestFromString("invalid end_date")
	}

	if windowEnd.Before(windowStart) {
		windowStart, windowEnd = windowEnd, windowStart
	}

	// Bookings without a confirmed slot fall back to their request date for
	// windowing; the end bound is exclusive at the following midnight.
	const windowColumn = "COALESCE(bookings.start_time, bookings.requested_at)"

	filters := []any{
		gDto.Filter{
			Field:    model.FieldMerchantID,
			Operator: gDto.FilterOperatorEq,
			Value:    merchantID,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "window_start",
			Field:    windowColumn,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    windowStart,
		},
		gDto.Filter{
			ArgName:  "window_end",
			Field:    windowColumn,
			Operator: gDto.FilterOperatorLess,
			Value:    windowEnd.AddDate(0, 0, 1),
		},
	}

	if req.Status != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    req.Status,
			Table:    model.TableName,
		})
	}

	if req.Keyword != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "keyword_service",
					Field:    "name",
					Operator: gDto.FilterOperatorLike,
					Value:    req.Keyword,
					Table:    "services",
				},
				gDto.Filter{
					ArgName:  "keyword_customer",
					Field:    "full_name",
					Operator: gDto.FilterOperatorLike,
					Value:    req.Keyword,
					Table:    "users",
				},
				gDto.Filter{
					ArgName:  "keyword_pet",
					Field:    "name",
					Operator: gDto.FilterOperatorLike,
					Value:    req.Keyword,
					Table:    "pets",
				},
			},
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}, nil
}

func merchantScheduleFilter(merchantID, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    scheduleModel.FieldMerchantID,
				Operator: gDto.FilterOperatorEq,
				Value:    merchantID,
				Table:    table,
			},
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, merchantID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheKeyBookingCalendar, merchantID))
	}()
}

func (s *serviceImpl) publishStatus(ctx context.Context, bookingID, merchantID, status string) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := StatusEvent{
			BookingID:  bookingID,
			MerchantID: merchantID,
			Status:     status,
			OccurredAt: timezone.Now(),
		}

		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookingStatus, kafka.Message{Key: bookingID, Value: event}); err != nil {
			log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to publish booking status event")
		}
	}()
}
