package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// Session slot keys shared by every session backend.
const (
	SessionUserKey  = "user"
	SessionTokenKey = "access_token"
)
