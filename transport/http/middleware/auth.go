package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"furk/config"
	"furk/infras/jwt"
	"furk/infras/otel"
	"furk/permissions"
	"furk/shared/constant"
	"furk/shared/failure"
	"furk/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// deny writes the rejection, records it on the span and closes the span.
func deny(writer http.ResponseWriter, scope otel.Scope, err error) {
	response.WithError(writer, err)

	scope.TraceError(err)
	scope.End()
}

// pass closes the span and hands the request to the next handler.
func pass(writer http.ResponseWriter, request *http.Request, scope otel.Scope, next http.Handler) {
	scope.End()
	next.ServeHTTP(writer, request)
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	default:
		return "Token validation failed"
	}
}

// Auth validates the bearer token and stores the caller's identity in the
// request context. Endpoints marked skip in the permissions config pass
// through unauthenticated.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			pass(writer, request, scope, next)

			return
		}

		method := request.Method
		path := m.routePattern(ctx, method, request.URL.Path)

		if m.permission != nil && m.permission.FindPermissions(path, method).Skip {
			pass(writer, request, scope, next)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			deny(writer, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			deny(writer, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			deny(writer, scope, failure.Unauthorized(unauthorizedMessage(err)))

			return
		}

		if claims.UserID == "" || claims.Email == "" {
			deny(writer, scope, failure.Unauthorized("Invalid token claims"))

			return
		}

		session := Session{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
			TokenID: claims.TokenID,
		}

		// A merchant account owns exactly one storefront, so the merchant
		// scope is the user itself.
		if claims.Role == constant.RoleMerchant {
			session.MerchantID = claims.UserID
		}

		ctx = context.WithValue(ctx, constant.ContextKeySession, session)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, session.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, session.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, session.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, session.TokenID)

		if session.MerchantID != "" {
			ctx = context.WithValue(ctx, constant.ContextKeyMerchantID, session.MerchantID)
		}

		pass(writer, request.WithContext(ctx), scope, next)
	})
}

// RBAC checks the caller's role against the endpoint's allowed roles.
// Requires prior authentication via Auth middleware.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			pass(writer, request, scope, next)

			return
		}

		// No permission table means nothing is allowed.
		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			pass(writer, request, scope, next)

			return
		}

		path := m.routePattern(ctx, request.Method, request.URL.Path)

		permission := m.permission.FindPermissions(path, request.Method)
		if permission.Skip {
			pass(writer, request, scope, next)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if len(permission.Permissions) > 0 && !slices.Contains(permission.Permissions, userRole) {
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		pass(writer, request, scope, next)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			pass(writer, request.WithContext(ctx), scope, next)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if apiKey != m.cfg.App.APIKey {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		pass(writer, request.WithContext(ctx), scope, next)
	})
}

func (m *authRoleImpl) routePattern(ctx context.Context, method, rawPath string) string {
	rctx := chi.RouteContext(ctx)
	if rctx == nil || rctx.Routes == nil {
		return rawPath
	}

	return rctx.Routes.Find(chi.NewRouteContext(), method, rawPath)
}
