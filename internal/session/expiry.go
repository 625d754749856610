package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the credential is a JWT whose exp claim has
// passed. The signature is not verified; the check only prevents restoring
// a token the server is certain to reject. Opaque (non-JWT) credentials and
// JWTs without an exp claim are never considered expired here — they stay
// accepted until the first API call fails, which the API layer handles
// centrally.
func Expired(credential string, now time.Time) bool {
	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
