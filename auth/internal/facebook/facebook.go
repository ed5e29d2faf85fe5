// SPDX-License-Identifier: ice License 1.0

package facebookauth

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"

	"github.com/PierluigiRizzuExagon/social-api/auth/internal"
	appcfg "github.com/PierluigiRizzuExagon/social-api/config"
)

func New(applicationYAMLKey string) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.loadCredentials(applicationYAMLKey)

	return &auth{
		cfg: &cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.Auth.Facebook.ClientID,
			ClientSecret: cfg.Auth.Facebook.ClientSecret,
			RedirectURL:  cfg.Auth.Facebook.RedirectURI,
			Scopes: []string{
				"email",
				"public_profile",
				"pages_show_list",
				"pages_read_engagement",
				"pages_manage_posts",
				"pages_manage_engagement",
				"pages_read_user_content",
				"pages_manage_metadata",
			},
			Endpoint: facebook.Endpoint,
		},
	}
}

func (a *auth) AuthCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

func (a *auth) ExchangeCode(ctx context.Context, code string) (*internal.Identity, *internal.ProviderTokens, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to exchange facebook authorization code")
	}
	identity, err := a.fetchIdentity(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build facebook identity")
	}

	// Facebook does not hand out refresh tokens, the pair carries only the access token.
	return identity, &internal.ProviderTokens{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

func (a *auth) fetchIdentity(ctx context.Context, accessToken string) (*internal.Identity, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestDeadline)
	defer cancel()
	url := a.profileURL()
	resp, err := req.SetContext(reqCtx).
		SetHeader("Accept", "application/json").
		SetQueryParam("fields", profileFields).
		SetBearerAuthToken(accessToken).
		Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "facebook profile request to `%v` failed", url)
	}
	body, err := resp.ToString()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read facebook profile response from `%v`", url)
	}
	if resp.IsErrorState() {
		return nil, errors.Errorf("facebook profile request to `%v` failed, statusCode:%v, response: %v", url, resp.GetStatusCode(), body)
	}
	var prof profile
	if err = json.Unmarshal([]byte(body), &prof); err != nil {
		return nil, errors.Wrapf(err, "unmarshalling facebook profile response failed, response: %v", body)
	}

	return prof.normalize()
}

// normalize is permissive: facebook legitimately withholds the email under many
// permission grants, so a synthetic placeholder keeps the login alive.
func (p *profile) normalize() (*internal.Identity, error) {
	if p.ID == "" {
		return nil, errors.Wrap(ErrIncompleteProfile, "facebook profile has no id")
	}
	email := p.Email
	if email == "" {
		email = fmt.Sprintf("%v@facebook.local", p.ID)
	}

	return &internal.Identity{
		UserID:   p.ID,
		Email:    email,
		Name:     p.Name,
		Picture:  p.Picture.Data.URL,
		Provider: internal.ProviderFacebook,
	}, nil
}

func (a *auth) profileURL() string {
	if a.cfg.Auth.Facebook.ProfileURL != "" {
		return a.cfg.Auth.Facebook.ProfileURL
	}

	return defaultProfileURL
}

func (cfg *config) loadCredentials(applicationYAMLKey string) {
	if cfg.Auth.Facebook.ClientID == "" {
		cfg.Auth.Facebook.ClientID = appcfg.EnvVariable(applicationYAMLKey, "FACEBOOK_CLIENT_ID")
	}
	if cfg.Auth.Facebook.ClientSecret == "" {
		cfg.Auth.Facebook.ClientSecret = appcfg.EnvVariable(applicationYAMLKey, "FACEBOOK_CLIENT_SECRET")
	}
	if cfg.Auth.Facebook.RedirectURI == "" {
		cfg.Auth.Facebook.RedirectURI = appcfg.EnvVariable(applicationYAMLKey, "FACEBOOK_REDIRECT_URI")
	}
}
