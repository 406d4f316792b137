package reward

import (
	"net/http"

	"furk/infras/otel"
	"furk/internal/domains/reward/model/dto"
	"furk/internal/domains/reward/service"
	"furk/shared/constant"
	"furk/shared/validator"
	"furk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reward
	otel    otel.Otel
}

func New(service service.Reward, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/rewards", func(r chi.Router) {
		r.Post("/list", handler.ListRewards)
		r.Post("/", handler.CreateReward)
		r.Get("/{id}", handler.GetReward)
		r.Patch("/{id}", handler.UpdateReward)
		r.Delete("/{id}", handler.DeleteReward)
		r.Post("/{id}/attachments", handler.UploadAttachment)
	})
}

// ListRewards returns a page of reward products.
// @Summary List reward products
// @Description List reward products with pagination and optional keyword filtering.
// @Tags Reward
// @Accept json
// @Produce json
// @Param request body dto.RewardListRequest true "Reward List Request"
// @Success 200 {object} response.Data[dto.RewardListResponse] "Page of rewards"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rewards/list [post]
// @Security BearerAuth
func (handler *Handler) ListRewards(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListRewards")
	defer scope.End()

	req := dto.RewardListRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.List(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list rewards")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rewards listed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateReward creates a reward product.
// @Summary Create a reward product
// @Description Create a reward product redeemable with loyalty points.
// @Tags Reward
// @Accept json
// @Produce json
// @Param request body dto.CreateRewardRequest true "Create Reward Request"
// @Success 201 {object} response.Data[dto.RewardResponse] "Created reward"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rewards [post]
// @Security BearerAuth
func (handler *Handler) CreateReward(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReward")
	defer scope.End()

	req := dto.CreateRewardRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reward")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reward created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetReward retrieves a reward product by its ID.
// @Summary Get a reward product by ID
// @Description Retrieve a reward product by its unique identifier.
// @Tags Reward
// @Accept json
// @Produce json
// @Param id path string true "Reward ID"
// @Success 200 {object} response.Data[dto.RewardResponse] "Reward details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rewards/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReward(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReward")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reward")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reward retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateReward updates a reward product.
// @Summary Update a reward product by ID
// @Description Update the fields of an existing reward product.
// @Tags Reward
// @Accept json
// @Produce json
// @Param id path string true "Reward ID"
// @Param request body dto.UpdateRewardRequest true "Update Reward Request"
// @Success 200 {object} response.Message "Reward updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rewards/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReward")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRewardRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reward")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reward updated successfully")

	response.WithMessage(w, http.StatusOK, "Reward updated successfully")
}

// DeleteReward deletes a reward product together with its attachments.
// @Summary Delete a reward product by ID
// @Description Delete a reward product using its unique identifier.
// @Tags Reward
// @Accept json
// @Produce json
// @Param id path string true "Reward ID"
// @Success 200 {object} response.Message "Reward deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rewards/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReward(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReward")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reward")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reward deleted successfully")

	response.WithMessage(w, http.StatusOK, "Reward deleted successfully")
}

// UploadAttachment uploads an attachment for a reward product and appends its
// URL to the product.
// @Summary Upload a reward attachment
// @Description Upload an attachment file for a reward product.
// @Tags Reward
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Reward ID"
// @Param file formData file true "Attachment file to upload"
// @Success 200 {object} response.Data[dto.RewardResponse] "Updated reward"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rewards/{id}/attachments [post]
// @Security BearerAuth
func (handler *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadAttachment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadAttachmentRequest{
		File:       file,
		FileHeader: fileHeader,
	}

	res, err := handler.service.UploadAttachment(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload attachment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Attachment uploaded successfully")

	response.WithJSON(w, http.StatusOK, res)
}
