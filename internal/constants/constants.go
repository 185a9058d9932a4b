package constants

const (
	// ContextKeyUserID is used both as the gin context key and the session key.
	ContextKeyUserID = "user_id"
	// ContextKeyTokenID holds the jti of the bearer token used for the request.
	ContextKeyTokenID = "token_id"
	// ContextKeyTokenExpiry holds the expiry of the bearer token used for the request.
	ContextKeyTokenExpiry = "token_expiry"
	// ContextKeyRequestID holds the request id assigned by the logging middleware.
	ContextKeyRequestID = "request_id"

	SessionCookieName = "twitter_session"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is the most bcrypt will hash.
	MaxPasswordBytes = 72
	MaxTweetLength   = 280
)

const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
