package middleware

import (
	"context"

	"furk/shared/constant"
)

// Session is the authenticated caller's identity for the lifetime of one
// request. Auth stores it in the request context as a single value, so
// downstream code never has to assemble identity from loose context entries.
type Session struct {
	UserID     string
	Email      string
	Role       string
	TokenID    string
	MerchantID string
}

// SessionFromContext returns the session stored by the Auth middleware. The
// second return value is false on unauthenticated (skipped) requests.
func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(constant.ContextKeySession).(Session)

	return session, ok
}
