package common

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries a client-generated id for request correlation.
const RequestIDHeader = "X-Request-Id"
