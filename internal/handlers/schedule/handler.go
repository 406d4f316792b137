package schedule

import (
	"net/http"

	"furk/infras/otel"
	"furk/internal/domains/schedule/model/dto"
	"furk/internal/domains/schedule/service"
	"furk/shared/constant"
	"furk/shared/validator"
	"furk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/merchant/schedule", func(r chi.Router) {
		r.Get("/", handler.GetSchedule)
		r.Put("/hours", handler.ReplaceHours)
		r.Post("/breaks", handler.CreateBreak)
		r.Patch("/breaks/{id}", handler.UpdateBreak)
		r.Delete("/breaks/{id}", handler.DeleteBreak)
		r.Post("/closures/toggle", handler.ToggleClosure)
	})
}

// GetSchedule returns the authenticated merchant's weekly hours, breaks and
// closures in one bundle.
// @Summary Get the merchant schedule
// @Description Retrieve the merchant's weekly hours, break hours and closures.
// @Tags Schedule
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.ScheduleResponse] "Schedule bundle"
// @Failure 500 {object} response.Error
// @Router /v1/merchant/schedule [get]
// @Security BearerAuth
func (handler *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedule")
	defer scope.End()

	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	res, err := handler.service.Get(ctx, merchantID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// ReplaceHours swaps the merchant's entire weekly hours template.
// @Summary Replace weekly opening hours
// @Description Replace the merchant's weekly opening hours template in one call.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.ReplaceHoursRequest true "Replace Hours Request"
// @Success 200 {object} response.Message "Hours replaced successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/schedule/hours [put]
// @Security BearerAuth
func (handler *Handler) ReplaceHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceHours")
	defer scope.End()

	req := dto.ReplaceHoursRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	if err := handler.service.ReplaceHours(ctx, merchantID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hours replaced successfully")

	response.WithMessage(w, http.StatusOK, "Hours replaced successfully")
}

// CreateBreak adds a recurring weekly break to the merchant schedule.
// @Summary Create a break
// @Description Add a recurring weekly break to the merchant schedule.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateBreakRequest true "Create Break Request"
// @Success 201 {object} response.Data[dto.BreakResponse] "Created break"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/schedule/breaks [post]
// @Security BearerAuth
func (handler *Handler) CreateBreak(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBreak")
	defer scope.End()

	req := dto.CreateBreakRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	res, err := handler.service.CreateBreak(ctx, merchantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create break")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Break created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateBreak edits one of the merchant's breaks.
// @Summary Update a break by ID
// @Description Update the fields of an existing break.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Break ID"
// @Param request body dto.UpdateBreakRequest true "Update Break Request"
// @Success 200 {object} response.Message "Break updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/schedule/breaks/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBreak(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBreak")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBreakRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	if err := handler.service.UpdateBreak(ctx, merchantID, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update break")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Break updated successfully")

	response.WithMessage(w, http.StatusOK, "Break updated successfully")
}

// DeleteBreak removes one of the merchant's breaks.
// @Summary Delete a break by ID
// @Description Delete a break using its unique identifier.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Break ID"
// @Success 200 {object} response.Message "Break deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/schedule/breaks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBreak(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBreak")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	if err := handler.service.DeleteBreak(ctx, merchantID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete break")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Break deleted successfully")

	response.WithMessage(w, http.StatusOK, "Break deleted successfully")
}

// ToggleClosure flips the closed state of a selected span: overlapping
// closures are removed, otherwise a new closure covering the span is created.
// @Summary Toggle a closure span
// @Description Toggle the closed state of the selected date span.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.ToggleClosureRequest true "Toggle Closure Request"
// @Success 200 {object} response.Data[dto.ToggleClosureResponse] "Toggle result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/merchant/schedule/closures/toggle [post]
// @Security BearerAuth
func (handler *Handler) ToggleClosure(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleClosure")
	defer scope.End()

	req := dto.ToggleClosureRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)

	res, err := handler.service.ToggleClosure(ctx, merchantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle closure")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Closure toggled successfully")

	response.WithJSON(w, http.StatusOK, res)
}
