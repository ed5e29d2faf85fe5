// SPDX-License-Identifier: ice License 1.0

package facebookauth

import (
	"context"
	stdlibtime "time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/PierluigiRizzuExagon/social-api/auth/internal"
)

// Public API.

var (
	ErrIncompleteProfile = errors.New("incomplete facebook profile")
)

type (
	Client interface {
		AuthCodeURL(state string) string
		ExchangeCode(ctx context.Context, code string) (*internal.Identity, *internal.ProviderTokens, error)
	}
)

// Private API.

const (
	defaultProfileURL = "https://graph.facebook.com/v18.0/me"
	profileFields     = "id,name,email,picture.type(large)"
	requestDeadline   = 25 * stdlibtime.Second
)

type (
	auth struct {
		cfg   *config
		oauth *oauth2.Config
	}
	profile struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	config struct {
		Auth struct {
			Facebook struct {
				ClientID     string `yaml:"clientId" mapstructure:"clientId"`
				ClientSecret string `yaml:"clientSecret" mapstructure:"clientSecret"`
				RedirectURI  string `yaml:"redirectUri" mapstructure:"redirectUri"`
				ProfileURL   string `yaml:"profileUrl" mapstructure:"profileUrl"`
			} `yaml:"facebook" mapstructure:"facebook"`
		} `yaml:"auth" mapstructure:"auth"`
	}
)
