// SPDX-License-Identifier: ice License 1.0

package internal

// Public API.

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

type (
	// Identity is the provider-agnostic user record derived from a raw OAuth profile.
	// It lives for the duration of one login transaction and is never persisted.
	Identity struct {
		UserID   string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Picture  string `json:"picture"`
		Provider string `json:"provider"`
	}
	// ProviderTokens is the raw OAuth token pair owned by the originating provider.
	ProviderTokens struct {
		AccessToken  string `json:"access_token"`            //nolint:tagliatelle // It's the providers` naming.
		RefreshToken string `json:"refresh_token,omitempty"` //nolint:tagliatelle // It's the providers` naming.
	}
)
