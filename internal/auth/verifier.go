package auth

import (
	"crypto/subtle"
	"strconv"

	internal "github.com/parceldesk/mailroom/internal"
)

// JWTVerifier wraps the token generator's validation side.
type JWTVerifier struct {
	gen *JWTTokenGenerator
}

func NewJWTVerifier(gen *JWTTokenGenerator) *JWTVerifier {
	return &JWTVerifier{gen: gen}
}

func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	return v.gen.ValidateToken(tokenString)
}

// StaticVerifier accepts one fixed token mapped to one user. Development and
// smoke-test deployments only.
type StaticVerifier struct {
	Token  string
	UserID int64
}

func (v *StaticVerifier) Verify(tokenString string) (*Claims, error) {
	if subtle.ConstantTimeCompare([]byte(tokenString), []byte(v.Token)) != 1 {
		return nil, ErrInvalidToken
	}
	return &Claims{UserID: strconv.FormatInt(v.UserID, 10)}, nil
}

// NewVerifierFromConfig selects the authentication strategy once at startup.
func NewVerifierFromConfig(cfg internal.SecurityConfig, gen *JWTTokenGenerator) TokenVerifier {
	if cfg.AuthProvider == "static" {
		return &StaticVerifier{Token: cfg.StaticToken, UserID: 1}
	}
	return NewJWTVerifier(gen)
}
