// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/PierluigiRizzuExagon/social-api/time"
)

func (a *auth) generateAccessToken(now *time.Time, identity *Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Token{
		RegisteredClaims: &jwt.RegisteredClaims{
			Issuer:    JwtIssuer,
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.Auth.AccessExpirationTime)),
			NotBefore: jwt.NewNumericDate(*now.Time),
			IssuedAt:  jwt.NewNumericDate(*now.Time),
		},
		Email:    identity.Email,
		Name:     identity.Name,
		Picture:  identity.Picture,
		Provider: identity.Provider,
	})
	accessToken, err := token.SignedString([]byte(a.cfg.Auth.JWTSecret))

	return accessToken, errors.Wrapf(err, "failed to generate access token for userID:%v, email:%v", identity.UserID, identity.Email)
}
