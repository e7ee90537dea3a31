package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims represents the JWT issued to clients. The subject claim
// carries the user id as a decimal string.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// UserID decodes the subject claim.
func (c *AccessTokenClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
