package promo

import (
	"context"
	"net/http"

	"furk/infras/otel"
	"furk/internal/domains/promo/model/dto"
	"furk/internal/domains/promo/service"
	"furk/shared/constant"
	"furk/shared/validator"
	"furk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Promo
	otel    otel.Otel
}

func New(service service.Promo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/promos", func(r chi.Router) {
		r.Post("/list", handler.ListPromos)
		r.Post("/", handler.CreatePromo)
		r.Get("/{id}", handler.GetPromo)
		r.Patch("/{id}", handler.UpdatePromo)
		r.Delete("/{id}", handler.DeletePromo)
		r.Post("/redeem", handler.RedeemPromo)
	})
}

// scopeMerchantID resolves the promo scope of the caller. Admins manage
// platform-wide promos (nil scope), merchants manage their own.
func scopeMerchantID(ctx context.Context) *string {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleMerchant {
		return nil
	}

	merchantID, _ := ctx.Value(constant.ContextKeyMerchantID).(string)
	if merchantID == "" {
		return nil
	}

	return &merchantID
}

// ListPromos returns a page of promos visible to the caller.
// @Summary List promos
// @Description List promos with pagination and optional keyword filtering.
// @Tags Promo
// @Accept json
// @Produce json
// @Param request body dto.PromoListRequest true "Promo List Request"
// @Success 200 {object} response.Data[dto.PromoListResponse] "Page of promos"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promos/list [post]
// @Security BearerAuth
func (handler *Handler) ListPromos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListPromos")
	defer scope.End()

	req := dto.PromoListRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	// A merchant always lists within its own scope regardless of the filter
	// carried in the request body.
	if merchantID := scopeMerchantID(ctx); merchantID != nil {
		req.MerchantID = merchantID
	}

	res, err := handler.service.List(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list promos")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promos listed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreatePromo creates a promo in the caller's scope: merchant-scoped for
// merchants, platform-wide for admins.
// @Summary Create a promo
// @Description Create a promo code with a discount or cashback rule.
// @Tags Promo
// @Accept json
// @Produce json
// @Param request body dto.CreatePromoRequest true "Create Promo Request"
// @Success 201 {object} response.Data[dto.PromoResponse] "Created promo"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promos [post]
// @Security BearerAuth
func (handler *Handler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePromo")
	defer scope.End()

	req := dto.CreatePromoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, scopeMerchantID(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create promo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promo created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPromo retrieves a promo by its ID.
// @Summary Get a promo by ID
// @Description Retrieve a promo by its unique identifier.
// @Tags Promo
// @Accept json
// @Produce json
// @Param id path string true "Promo ID"
// @Success 200 {object} response.Data[dto.PromoResponse] "Promo details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promos/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promo retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdatePromo updates a promo within the caller's scope.
// @Summary Update a promo by ID
// @Description Update the fields of an existing promo.
// @Tags Promo
// @Accept json
// @Produce json
// @Param id path string true "Promo ID"
// @Param request body dto.UpdatePromoRequest true "Update Promo Request"
// @Success 200 {object} response.Message "Promo updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promos/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePromo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePromoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, scopeMerchantID(ctx), id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update promo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promo updated successfully")

	response.WithMessage(w, http.StatusOK, "Promo updated successfully")
}

// DeletePromo deletes a promo within the caller's scope.
// @Summary Delete a promo by ID
// @Description Delete a promo using its unique identifier.
// @Tags Promo
// @Accept json
// @Produce json
// @Param id path string true "Promo ID"
// @Success 200 {object} response.Message "Promo deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promos/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePromo")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, scopeMerchantID(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete promo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promo deleted successfully")

	response.WithMessage(w, http.StatusOK, "Promo deleted successfully")
}

// RedeemPromo redeems a promo code for the authenticated user.
// @Summary Redeem a promo code
// @Description Redeem a promo code and consume one usage for the current user.
// @Tags Promo
// @Accept json
// @Produce json
// @Param request body dto.RedeemPromoRequest true "Redeem Promo Request"
// @Success 200 {object} response.Data[dto.PromoResponse] "Redeemed promo"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/promos/redeem [post]
// @Security BearerAuth
func (handler *Handler) RedeemPromo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RedeemPromo")
	defer scope.End()

	req := dto.RedeemPromoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Redeem(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to redeem promo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Promo redeemed successfully")

	response.WithJSON(w, http.StatusOK, res)
}
