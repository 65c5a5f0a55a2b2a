package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerSchemePrefix is the expected scheme in the authorization header,
// as in "Bearer <token>".
const BearerSchemePrefix = "Bearer"
