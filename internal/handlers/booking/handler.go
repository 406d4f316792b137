package booking

import (
	"net/http"

	"furk/infras/otel"
	"furk/internal/domains/booking/model/dto"
	"furk/internal/domains/booking/service"
	"furk/shared/constant"
	"furk/shared/validator"
	"furk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/merchant/bookings", func(r chi.Router) {
		r.Post("/list", handler.CalendarList)
		r.Get("/{id}", handler.GetBooking)
		r.Post("/{id}/{action}", handler.Transition)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", handler.CreateBooking)
	})
}

// CalendarList returns the bookings of the authenticated merchant for a date
// window, bundled with the merchant's weekly hours, breaks and closures.
// @Summary List bookings for the calendar view
// @Description List the merchant's bookings for a date window together with schedule metadata.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CalendarListRequest true "Calendar List Request"
// @Success 200 {object} response.Data[dto.CalendarListResponse] "Calendar data"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/bookings/list [post]
// @Security BearerAuth
func (handler *Handler) CalendarList(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CalendarList")
	defer scope.End()

	req := dto.CalendarListRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	res, err := handler.service.CalendarList(ctx, merchantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings listed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetBooking retrieves one booking owned by the authenticated merchant.
// @Summary Get a booking by ID
// @Description Retrieve the detail of one of the merchant's bookings.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingDetailResponse] "Booking detail"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	res, err := handler.service.Get(ctx, merchantID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Transition applies a lifecycle action (confirm, start, complete, cancel) to
// a booking owned by the authenticated merchant.
// @Summary Apply a lifecycle action to a booking
// @Description Move a booking through its lifecycle and return the updated detail.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param action path string true "Lifecycle action"
// @Success 200 {object} response.Data[dto.BookingDetailResponse] "Updated booking detail"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/bookings/{id}/{action} [post]
// @Security BearerAuth
func (handler *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Transition")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	action := chi.URLParam(r, constant.RequestParamAction)
	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	res, err := handler.service.Transition(ctx, merchantID, id, action)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("action", action).Msg("failed to transition booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking transitioned successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateBooking creates a booking request on behalf of the authenticated
// consumer. The booking starts pending with an unpaid payment status.
// @Summary Create a booking request
// @Description Create a booking for a merchant service as the authenticated consumer.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingDetailResponse] "Created booking"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	customerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Create(ctx, customerID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
