// SPDX-License-Identifier: ice License 1.0

package googleauth

import (
	"context"
	stdlibtime "time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/PierluigiRizzuExagon/social-api/auth/internal"
)

// Public API.

var (
	ErrIncompleteProfile = errors.New("incomplete google profile")
)

type (
	Client interface {
		AuthCodeURL(state string) string
		ExchangeCode(ctx context.Context, code string) (*internal.Identity, *internal.ProviderTokens, error)
	}
)

// Private API.

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	requestDeadline    = 25 * stdlibtime.Second
)

type (
	auth struct {
		cfg   *config
		oauth *oauth2.Config
	}
	profile struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	config struct {
		Auth struct {
			Google struct {
				ClientID     string `yaml:"clientId" mapstructure:"clientId"`
				ClientSecret string `yaml:"clientSecret" mapstructure:"clientSecret"`
				RedirectURI  string `yaml:"redirectUri" mapstructure:"redirectUri"`
				UserInfoURL  string `yaml:"userInfoUrl" mapstructure:"userInfoUrl"`
			} `yaml:"google" mapstructure:"google"`
		} `yaml:"auth" mapstructure:"auth"`
	}
)
