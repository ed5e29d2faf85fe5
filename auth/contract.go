// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"
	stdlibtime "time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/PierluigiRizzuExagon/social-api/auth/internal"
	facebookauth "github.com/PierluigiRizzuExagon/social-api/auth/internal/facebook"
	googleauth "github.com/PierluigiRizzuExagon/social-api/auth/internal/google"
)

// Public API.

const (
	JwtIssuer = "social-api/access"

	ProviderGoogle   = internal.ProviderGoogle
	ProviderFacebook = internal.ProviderFacebook

	GoogleTokenHeader       = "X-Google-Token"
	FacebookTokenHeader     = "X-Facebook-Token"
	FacebookPageTokenHeader = "X-Facebook-Page-Token" //nolint:gosec // False positive, it's a header name.
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrExpiredToken         = errors.New("expired token")
	ErrUnsupportedProvider  = errors.New("unsupported provider")
	ErrMissingProviderToken = errors.New("missing delegated provider token")
	ErrWrongTokenScheme     = errors.New("wrong delegated token scheme")
)

type (
	Identity       = internal.Identity
	ProviderTokens = internal.ProviderTokens

	// Token is the verified set of claims of an internal access token.
	Token struct {
		*jwt.RegisteredClaims
		Email    string `json:"email,omitempty"`
		Name     string `json:"name,omitempty"`
		Picture  string `json:"picture,omitempty"`
		Provider string `json:"provider,omitempty"`
	}
	// User is the public projection of a logged-in identity.
	User struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Picture  string `json:"picture"`
		Provider string `json:"provider"`
	}
	// LoginResult is everything a completed social login hands back to the frontend.
	LoginResult struct {
		AccessToken    string          `json:"access_token"` //nolint:tagliatelle // Wire contract.
		User           *User           `json:"user"`
		GoogleTokens   *ProviderTokens `json:"google_tokens,omitempty"`   //nolint:tagliatelle // Wire contract.
		FacebookTokens *ProviderTokens `json:"facebook_tokens,omitempty"` //nolint:tagliatelle // Wire contract.
	}
	Client interface {
		AuthCodeURL(provider, state string) (string, error)
		CompleteLogin(ctx context.Context, provider, code string) (*LoginResult, error)
		VerifyToken(token string) (*Token, error)
		FrontendURL() string
	}
)

// Private API.

const (
	defaultAccessExpirationTime = 24 * stdlibtime.Hour
	secretPrefixLength          = 10
)

type (
	auth struct {
		cfg      *config
		google   googleauth.Client
		facebook facebookauth.Client
	}
	config struct {
		Auth struct {
			JWTSecret            string              `yaml:"jwtSecret" mapstructure:"jwtSecret"`
			FrontendURL          string              `yaml:"frontendUrl" mapstructure:"frontendUrl"`
			AccessExpirationTime stdlibtime.Duration `yaml:"accessExpirationTime" mapstructure:"accessExpirationTime"`
		} `yaml:"auth" mapstructure:"auth"`
	}
)
