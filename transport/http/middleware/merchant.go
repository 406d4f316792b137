package middleware

import (
	"net/http"
	"strings"

	"furk/infras/otel"
	userModel "furk/internal/domains/user/model"
	userRepo "furk/internal/domains/user/repository"
	"furk/shared"
	"furk/shared/constant"
	"furk/shared/failure"
	"furk/transport/http/response"

	"github.com/rs/zerolog/log"
)

const merchantRoutePrefix = "/v1/merchant/"

// MerchantGate guards merchant dashboard routes.
type MerchantGate interface {
	Verified(http.Handler) http.Handler
}

type merchantGateImpl struct {
	users userRepo.User
	otel  otel.Otel
}

func NewMerchantGate(users userRepo.User, otel otel.Otel) MerchantGate {
	return &merchantGateImpl{
		users: users,
		otel:  otel,
	}
}

// Verified blocks unverified merchants from operating a storefront. The check
// reads the user record instead of a token claim so revoking verification
// takes effect without reissuing tokens.
func (m *merchantGateImpl) Verified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		session, ok := SessionFromContext(ctx)
		if !ok || session.Role != constant.RoleMerchant || !strings.HasPrefix(request.URL.Path, merchantRoutePrefix) {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "merchant_gate.middleware")

		user, err := m.users.Get(ctx, shared.FilterByID(session.UserID, userModel.FieldID, userModel.TableName))
		if err != nil {
			scope.TraceError(err)
			scope.End()
			log.Error().Err(err).Str("user_id", session.UserID).Msg("failed to load merchant record")

			response.WithError(writer, err)

			return
		}

		if user.ID == "" || !user.Active {
			err := failure.Unauthorized("Account is not active")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if !user.IsVerified {
			err := failure.Forbidden("Merchant account is not verified")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
