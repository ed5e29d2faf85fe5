// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	facebookauth "github.com/PierluigiRizzuExagon/social-api/auth/internal/facebook"
	googleauth "github.com/PierluigiRizzuExagon/social-api/auth/internal/google"
	appcfg "github.com/PierluigiRizzuExagon/social-api/config"
	"github.com/PierluigiRizzuExagon/social-api/log"
	"github.com/PierluigiRizzuExagon/social-api/time"
)

func New(ctx context.Context, applicationYAMLKey string) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.loadSecretForJWT(applicationYAMLKey)
	cfg.loadFrontendURL(applicationYAMLKey)
	if cfg.Auth.JWTSecret == "" {
		log.Panic(errors.New("jwt secret is not configured"))
	}
	if cfg.Auth.AccessExpirationTime == 0 {
		cfg.Auth.AccessExpirationTime = defaultAccessExpirationTime
	}

	return &auth{
		cfg:      &cfg,
		google:   googleauth.New(applicationYAMLKey),
		facebook: facebookauth.New(applicationYAMLKey),
	}
}

func (a *auth) AuthCodeURL(provider, state string) (string, error) {
	switch provider {
	case ProviderGoogle:
		return a.google.AuthCodeURL(state), nil
	case ProviderFacebook:
		return a.facebook.AuthCodeURL(state), nil
	default:
		return "", errors.Wrapf(ErrUnsupportedProvider, "no oauth flow for provider:%v", provider)
	}
}

func (a *auth) CompleteLogin(ctx context.Context, provider, code string) (*LoginResult, error) {
	identity, providerTokens, err := a.exchangeCode(ctx, provider, code)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to exchange authorization code for provider:%v", provider)
	}

	return a.login(time.Now(), identity, providerTokens)
}

func (a *auth) VerifyToken(token string) (*Token, error) {
	var claims Token
	if _, err := jwt.ParseWithClaims(token, &claims, a.verify()); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, errors.Wrapf(ErrExpiredToken, "expired or not valid yet token:%v", TruncateSecret(token))
		}

		return nil, errors.Wrapf(ErrInvalidToken, "invalid token:%v, reason:%v", TruncateSecret(token), err.Error())
	}

	return &claims, nil
}

func (a *auth) FrontendURL() string {
	return a.cfg.Auth.FrontendURL
}

func (a *auth) exchangeCode(ctx context.Context, provider, code string) (*Identity, *ProviderTokens, error) {
	switch provider {
	case ProviderGoogle:
		return a.google.ExchangeCode(ctx, code)
	case ProviderFacebook:
		return a.facebook.ExchangeCode(ctx, code)
	default:
		return nil, nil, errors.Wrapf(ErrUnsupportedProvider, "no oauth flow for provider:%v", provider)
	}
}

func (a *auth) verify() func(token *jwt.Token) (any, error) {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok || token.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if iss, err := token.Claims.GetIssuer(); err != nil || iss != JwtIssuer {
			return nil, errors.Wrapf(ErrInvalidToken, "invalid issuer:%v", iss)
		}

		return []byte(a.cfg.Auth.JWTSecret), nil
	}
}

func (cfg *config) loadSecretForJWT(applicationYAMLKey string) {
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = appcfg.EnvVariable(applicationYAMLKey, "JWT_SECRET")
	}
}

func (cfg *config) loadFrontendURL(applicationYAMLKey string) {
	if cfg.Auth.FrontendURL == "" {
		cfg.Auth.FrontendURL = appcfg.EnvVariable(applicationYAMLKey, "FRONTEND_URL")
	}
}
