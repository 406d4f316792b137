package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"furk/shared"
	"furk/shared/cache"
	"furk/shared/constant"
	"furk/transport/http/response"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client IP and user agent in a fixed redis
// window. The limiter fails open: a cache outage never blocks traffic.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			var count int

			switch err := a.cache.Get(r.Context(), cacheKey, &count); {
			case err == nil:
				count++
			case errors.Is(err, cache.Nil):
				count = 1
			default:
				next.ServeHTTP(w, r)

				return
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}

// getClientIP prefers the proxy headers over RemoteAddr since the service
// runs behind a load balancer.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		// The first entry is the originating client.
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
