// Package common contains shared constants and sentinel errors used across
// moviecat components.
package common

// Durable storage keys of the session record.
const (
	TokenKey   = "token"
	UserIDKey  = "userId"
	IsAdminKey = "isAdmin"
)

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates a gateway call with its log lines.
const RequestIDHeaderName = "X-Request-ID"
