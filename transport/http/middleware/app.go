package middleware

import (
	"fmt"
	"net/http"

	"furk/config"
	"furk/infras/otel"
	"furk/shared/cache"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	CORS(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens a root span per request and records the HTTP attributes on it.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": a.getUA(r),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		if routeCtx := chi.RouteContext(ctx); routeCtx != nil && routeCtx.RoutePattern() != "" {
			scope.SetAttribute("http.route", routeCtx.RoutePattern())
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORS applies the configured cross-origin policy. Disabled config means the
// middleware passes requests through untouched.
func (a *appMiddleware) CORS(next http.Handler) http.Handler {
	if !a.config.App.CORS.Enable {
		return next
	}

	corsConfig := a.config.App.CORS

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})(next)
}
