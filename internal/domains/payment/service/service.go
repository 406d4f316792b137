package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"furk/config"
	"furk/infras/otel"
	bookingService "furk/internal/domains/booking/service"
	"furk/internal/domains/payment/gateway"
	"furk/internal/domains/payment/model"
	"furk/internal/domains/payment/model/dto"
	"furk/internal/domains/payment/repository"
	"furk/shared"
	"furk/shared/cache"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	"furk/shared/failure"
	"furk/shared/timezone"
)

const (
	cacheGetPayment = "payment:get"
)

type Payment interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) (dto.PaymentResponse, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	PollUntilTerminal(ctx context.Context, id string, interval, timeout time.Duration) (dto.PaymentResponse, error)
	HandleCallback(ctx context.Context, req dto.CallbackRequest) error
}

type serviceImpl struct {
	repo     repository.Payment
	gateway  gateway.Gateway
	bookings bookingService.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Payment, gw gateway.Gateway, bookings bookingService.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:     repo,
		gateway:  gw,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	invoice, err := s.gateway.CreateInvoice(ctx, gateway.CreateInvoiceRequest{
		ExternalID:  req.BookingID,
		Amount:      req.Amount,
		PayerEmail:  username,
		Description: req.Description,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create invoice")

		return res, err
	}

	mod := req.ToModel(invoice.ID, invoice.URL, username)

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	res.FromModel(mod)

	return res, nil
}

// Get returns the payment, refreshing its status from the gateway first when
// it is still pending. A refreshed status is persisted and paid through to
// the booking before the response goes out.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPayment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment")

		return res, nil
	}

	payment, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.Terminal(payment.Status) {
		invoice, gatewayErr := s.gateway.GetInvoice(ctx, payment.InvoiceID)
		if gatewayErr != nil {
			log.Error().Err(gatewayErr).Msg("failed to refresh invoice status")
		} else if invoice.Status != payment.Status {
			if err = s.applyStatus(ctx, &payment, invoice.Status); err != nil {
				return res, err
			}
		}
	}

	res.FromModel(payment)

	// Only settled payments go in the cache since they can never change
	// again; a pending payment must stay pollable.
	if model.Terminal(payment.Status) {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save payment to cache")
			}
		}()
	}

	return res, nil
}

// PollUntilTerminal re-checks the payment at a fixed interval until it
// reaches a terminal status or the timeout elapses. This is the only place
// in the system that retries anything automatically.
func (s *serviceImpl) PollUntilTerminal(ctx context.Context, id string, interval, timeout time.Duration) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PollUntilTerminal")
	defer scope.End()
	defer scope.TraceIfError(err)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err = s.Get(ctx, id)
		if err != nil {
			return res, err
		}

		if model.Terminal(res.Status) {
			return res, nil
		}

		select {
		case <-ctx.Done():
			return res, fmt.Errorf("payment %s still %s: %w", id, res.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}

// HandleCallback applies a gateway webhook. Unknown invoices are rejected so
// the gateway retries later; an unchanged status is a no-op.
func (s *serviceImpl) HandleCallback(ctx context.Context, req dto.CallbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleCallback")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.repo.Get(ctx, invoiceFilter(req.InvoiceID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment by invoice")

		return fmt.Errorf("failed to get payment by invoice: %w", err)
	}

	if payment.ID == "" {
		return failure.NotFound("payment not found")
	}

	status := gateway.MapStatus(req.Status)
	if status == payment.Status {
		return nil
	}

	return s.applyStatus(ctx, &payment, status)
}

func (s *serviceImpl) applyStatus(ctx context.Context, payment *model.Payment, status string) error {
	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: payment.ModifiedBy,
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(payment.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update payment status")

		return fmt.Errorf("failed to update payment status: %w", err)
	}

	payment.Status = status

	if err := s.bookings.SetPaymentStatus(ctx, payment.BookingID, status); err != nil {
		log.Error().Err(err).Msg("failed to pay through booking payment status")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPayment, payment.ID)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate payment cache")
		}
	}()

	return nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Payment, error) {
	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return payment, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == "" {
		return payment, failure.NotFound("payment not found")
	}

	return payment, nil
}

func invoiceFilter(invoiceID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldInvoiceID,
				Operator: gDto.FilterOperatorEq,
				Value:    invoiceID,
				Table:    model.TableName,
			},
		},
	}
}
