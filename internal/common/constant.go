// Package common contains constants and sentinel errors shared by the
// docdesk client packages.
package common

const (
	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token inside AuthorizationHeader.
	BearerPrefix = "Bearer "

	// RequestIDHeader tags every outbound request for server-side correlation.
	RequestIDHeader = "X-Request-ID"

	// AccessTokenKey is the fixed local-storage key of the persisted token.
	AccessTokenKey = "access_token"

	// AccessTokenSavedAtKey records when AccessTokenKey was last written.
	AccessTokenSavedAtKey = "access_token_saved_at"
)
