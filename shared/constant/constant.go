package constant

import (
	"time"
)

// ContextGuest is the audit actor for requests with no authenticated user,
// such as self-registration.
const (
	ContextGuest = "guest"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID     contextKey = "user_id"
	ContextKeyUserEmail  contextKey = "user_email"
	ContextKeyUserRole   contextKey = "user_role"
	ContextKeyMerchantID contextKey = "merchant_id"
	ContextKeySession    contextKey = "session"
	ContextKeyTokenID    contextKey = "token_id"
)

// CacheKeyBookingCalendar prefixes cached booking calendar responses. The
// calendar response bundles the merchant's hours, breaks and closures, so
// both the booking and the schedule domain must clear this prefix on write.
const (
	CacheKeyBookingCalendar = "booking:calendar"
)

// Account roles. Admins manage accounts and promos, merchants run
// storefronts, consumers book services.
const (
	RoleAdmin    = "admin"
	RoleMerchant = "merchant"
	RoleConsumer = "consumer"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamOffset  = "offset"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamKeyword = "keyword"
)

const (
	RequestParamID     = "id"
	RequestParamAction = "action"
	RequestMaxMemory   = 10 << 20 // 10 MB
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = "2006-01-02"
	TimeOnlyFormat = "15:04"
)

const (
	MinutesToSeconds = 60
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	KafkaTopicBookingStatus = "booking.status"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON              = "application/json"
	ContentTypeFormURLEncoded    = "application/x-www-form-urlencoded"
	ContentTypeMultipartFormData = "multipart/form-data"
	FormFile                     = "file"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
