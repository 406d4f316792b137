package service

import (
	"context"
	"fmt"
	"path"

	"github.com/rs/zerolog/log"

	"furk/config"
	"furk/infras/otel"
	"furk/infras/s3"
	"furk/internal/domains/reward/model"
	"furk/internal/domains/reward/model/dto"
	"furk/internal/domains/reward/repository"
	"furk/shared"
	"furk/shared/cache"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	"furk/shared/failure"
	"furk/shared/timezone"
)

const (
	cacheGetReward  = "reward:get"
	cacheListReward = "reward:list"

	attachmentDirectory = "rewards"
)

type Reward interface {
	List(ctx context.Context, req dto.RewardListRequest) (dto.RewardListResponse, error)
	Get(ctx context.Context, id string) (dto.RewardResponse, error)
	Create(ctx context.Context, req dto.CreateRewardRequest) (dto.RewardResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRewardRequest) error
	Delete(ctx context.Context, id string) error
	UploadAttachment(ctx context.Context, id string, req dto.UploadAttachmentRequest) (dto.RewardResponse, error)
}

type serviceImpl struct {
	repo  repository.Reward
	cfg   *config.Config
	cache cache.RedisCache
	s3    s3.S3
	otel  otel.Otel
}

func New(repo repository.Reward, cfg *config.Config, cache cache.RedisCache, s3Client s3.S3, otel otel.Otel) Reward {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		s3:    s3Client,
		otel:  otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, req dto.RewardListRequest) (res dto.RewardListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	limit := req.Limit
	if limit == 0 {
		limit = constant.DefaultValueLimit
	}

	filter := listFilter(req.Keyword)
	params := gDto.QueryParams{
		Page:    req.Offset/limit + 1,
		Limit:   limit,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheListReward, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reward list")

		return res, nil
	}

	rewards, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reward products")

		return res, fmt.Errorf("failed to list reward products: %w", err)
	}

	res.FromModels(rewards)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reward list to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RewardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReward, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reward product")

		return res, nil
	}

	reward, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reward)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reward product to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRewardRequest) (res dto.RewardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	mod := req.ToModel(username)

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create reward product")

		return res, fmt.Errorf("failed to create reward product: %w", err)
	}

	s.invalidate(ctx, mod.ID)

	res.FromModel(mod)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRewardRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getByID(ctx, id); err != nil {
		return err
	}

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	fields := shared.TransformFields(req, username)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reward product")

		return fmt.Errorf("failed to update reward product: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	reward, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete reward product")

		return fmt.Errorf("failed to delete reward product: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReward, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reward cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheListReward)

		s.deleteAttachments(c, reward)
	}()

	return nil
}

// UploadAttachment stores the file under the product's S3 folder and appends
// the resulting URL to the record. The record keeps its previous attachments
// if the upload or the append fails; there is no rollback of the uploaded
// object either, orphans are tolerated.
func (s *serviceImpl) UploadAttachment(ctx context.Context, id string, req dto.UploadAttachmentRequest) (res dto.RewardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadAttachment")
	defer scope.End()
	defer scope.TraceIfError(err)

	reward, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(attachmentDirectory, reward.ID)

	url, err := s.s3.UploadFile(ctx, bucketName, directory, req.File, req.FileHeader, req.FileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload attachment to S3")

		return res, fmt.Errorf("failed to upload attachment to S3: %w", err)
	}

	reward.Attachments = append(reward.Attachments, url)

	username, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	fields := map[string]any{
		model.FieldAttachments:   reward.Attachments,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to append attachment url")

		return res, fmt.Errorf("failed to append attachment url: %w", err)
	}

	s.invalidate(ctx, id)

	res.FromModel(reward)

	return res, nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.RewardProduct, error) {
	reward, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reward product")

		return reward, fmt.Errorf("failed to get reward product: %w", err)
	}

	if reward.ID == "" {
		return reward, failure.NotFound("reward product not found")
	}

	return reward, nil
}

func (s *serviceImpl) deleteAttachments(ctx context.Context, reward model.RewardProduct) {
	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(attachmentDirectory, reward.ID)

	for _, url := range reward.Attachments {
		objectName := s.s3.GetObjectNameFromURL(bucketName, url)
		if objectName == constant.Empty {
			log.Warn().Str("url", url).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.DeleteFile(ctx, bucketName, directory, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete attachment from S3")
		}
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheListReward)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReward, id)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate reward cache")
		}
	}()
}

func listFilter(keyword string) gDto.FilterGroup {
	filters := []any{}

	if keyword != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "keyword_product",
					Field:    model.FieldProductName,
					Operator: gDto.FilterOperatorLike,
					Value:    keyword,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "keyword_sponsor",
					Field:    model.FieldSponsorName,
					Operator: gDto.FilterOperatorLike,
					Value:    keyword,
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
