// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/PierluigiRizzuExagon/social-api/time"
)

func (a *auth) login(now *time.Time, identity *Identity, providerTokens *ProviderTokens) (*LoginResult, error) {
	accessToken, err := a.generateAccessToken(now, identity)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to issue access token for userID:%v", identity.UserID)
	}
	result := &LoginResult{
		AccessToken: accessToken,
		User: &User{
			ID:       identity.UserID,
			Email:    identity.Email,
			Name:     identity.Name,
			Picture:  identity.Picture,
			Provider: identity.Provider,
		},
	}
	switch identity.Provider {
	case ProviderGoogle:
		result.GoogleTokens = providerTokens
	case ProviderFacebook:
		result.FacebookTokens = providerTokens
	default:
		return nil, errors.Wrapf(ErrUnsupportedProvider, "no token slot for provider:%v", identity.Provider)
	}

	return result, nil
}

// CallbackURL builds the frontend redirect for a successful login. Parameter
// order is part of the contract, so the query string is assembled by hand
// instead of url.Values, which sorts keys.
func CallbackURL(frontendURL string, result *LoginResult) string {
	providerTokens := result.GoogleTokens
	if result.User.Provider == ProviderFacebook {
		providerTokens = result.FacebookTokens
	}
	var query strings.Builder
	query.WriteString("token=")
	query.WriteString(url.QueryEscape(result.AccessToken))
	query.WriteString("&provider=")
	query.WriteString(url.QueryEscape(result.User.Provider))
	if providerTokens != nil {
		query.WriteString(fmt.Sprintf("&%v_access_token=", result.User.Provider))
		query.WriteString(url.QueryEscape(providerTokens.AccessToken))
		if providerTokens.RefreshToken != "" {
			query.WriteString(fmt.Sprintf("&%v_refresh_token=", result.User.Provider))
			query.WriteString(url.QueryEscape(providerTokens.RefreshToken))
		}
	}

	return fmt.Sprintf("%v/auth/callback?%v", strings.TrimSuffix(frontendURL, "/"), query.String())
}

// ErrorRedirectURL builds the frontend redirect for a failed login.
func ErrorRedirectURL(frontendURL, message string) string {
	return fmt.Sprintf("%v/auth/error?error=%v", strings.TrimSuffix(frontendURL, "/"), url.QueryEscape(message))
}
