package payment

import (
	"net/http"
	"time"

	"furk/config"
	"furk/infras/otel"
	"furk/internal/domains/payment/model/dto"
	"furk/internal/domains/payment/service"
	"furk/shared/constant"
	"furk/shared/validator"
	"furk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Payment, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", handler.CreatePayment)
		r.Get("/{id}", handler.GetPayment)
		r.Get("/{id}/wait", handler.WaitPayment)
		r.Post("/callback", handler.Callback)
	})
}

// CreatePayment creates an invoice at the payment gateway for a booking and
// records the resulting payment.
// @Summary Create a payment
// @Description Create a payment invoice for a booking.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Create Payment Request"
// @Success 201 {object} response.Data[dto.PaymentResponse] "Created payment"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePayment")
	defer scope.End()

	req := dto.CreatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPayment retrieves a payment, refreshing a non-terminal status from the
// gateway.
// @Summary Get a payment by ID
// @Description Retrieve a payment with its most recent status.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// WaitPayment blocks until the payment reaches a terminal status or the
// configured poll timeout elapses.
// @Summary Wait for a payment to settle
// @Description Block until the payment settles or the poll timeout elapses.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Settled payment"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id}/wait [get]
// @Security BearerAuth
func (handler *Handler) WaitPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WaitPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	interval := time.Duration(handler.cfg.External.Payment.PollIntervalSeconds) * time.Second
	timeout := time.Duration(handler.cfg.External.Payment.PollTimeoutSeconds) * time.Second

	res, err := handler.service.PollUntilTerminal(ctx, id, interval, timeout)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to wait for payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment settled")

	response.WithJSON(w, http.StatusOK, res)
}

// Callback handles payment status notifications from the gateway. Repeated
// deliveries of the same status are acknowledged without effect.
// @Summary Payment gateway callback
// @Description Receive an invoice status notification from the payment gateway.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CallbackRequest true "Callback Request"
// @Success 200 {object} response.Message "Callback processed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/callback [post]
func (handler *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Callback")
	defer scope.End()

	req := dto.CallbackRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.HandleCallback(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process payment callback")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment callback processed successfully")

	response.WithMessage(w, http.StatusOK, "Callback processed successfully")
}
