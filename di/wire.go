//go:build wireinject
// +build wireinject

package di

import (
	"furk/config"
	"furk/infras/jwt"
	"furk/infras/kafka"
	"furk/infras/otel"
	"furk/infras/postgres"
	"furk/infras/redis"
	"furk/infras/s3"
	"furk/permissions"
	"furk/shared/cache"
	"furk/transport/http"
	"furk/transport/http/middleware"
	"furk/transport/http/router"

	"github.com/google/wire"

	authService "furk/internal/domains/auth/service"
	bookingRepository "furk/internal/domains/booking/repository"
	bookingService "furk/internal/domains/booking/service"
	paymentGateway "furk/internal/domains/payment/gateway"
	paymentRepository "furk/internal/domains/payment/repository"
	paymentService "furk/internal/domains/payment/service"
	promoRepository "furk/internal/domains/promo/repository"
	promoService "furk/internal/domains/promo/service"
	rewardRepository "furk/internal/domains/reward/repository"
	rewardService "furk/internal/domains/reward/service"
	scheduleRepository "furk/internal/domains/schedule/repository"
	scheduleService "furk/internal/domains/schedule/service"
	userRepository "furk/internal/domains/user/repository"
	userService "furk/internal/domains/user/service"

	authHandler "furk/internal/handlers/auth"
	bookingHandler "furk/internal/handlers/booking"
	paymentHandler "furk/internal/handlers/payment"
	promoHandler "furk/internal/handlers/promo"
	rewardHandler "furk/internal/handlers/reward"
	scheduleHandler "furk/internal/handlers/schedule"
	userHandler "furk/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	middleware.NewMerchantGate,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.NewHours,
	scheduleRepository.NewBreaks,
	scheduleRepository.NewClosures,
	scheduleService.New,
)

var promoDomain = wire.NewSet(
	promoRepository.New,
	promoRepository.NewRedemptions,
	promoService.New,
)

var rewardDomain = wire.NewSet(
	rewardRepository.New,
	rewardService.New,
)

var paymentDomain = wire.NewSet(
	paymentGateway.New,
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	authDomain,
	bookingDomain,
	scheduleDomain,
	promoDomain,
	rewardDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	bookingHandler.New,
	scheduleHandler.New,
	promoHandler.New,
	rewardHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
