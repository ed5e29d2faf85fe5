// SPDX-License-Identifier: ice License 1.0

package googleauth

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

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
			ClientID:     cfg.Auth.Google.ClientID,
			ClientSecret: cfg.Auth.Google.ClientSecret,
			RedirectURL:  cfg.Auth.Google.RedirectURI,
			Scopes: []string{
				"email",
				"profile",
				"https://www.googleapis.com/auth/business.manage",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (a *auth) AuthCodeURL(state string) string {
	// Offline access + forced consent, otherwise google omits the refresh token on repeated logins.
	return a.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

func (a *auth) ExchangeCode(ctx context.Context, code string) (*internal.Identity, *internal.ProviderTokens, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to exchange google authorization code")
	}
	identity, err := a.fetchIdentity(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build google identity")
	}

	return identity, &internal.ProviderTokens{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

func (a *auth) fetchIdentity(ctx context.Context, accessToken string) (*internal.Identity, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestDeadline)
	defer cancel()
	url := a.userInfoURL()
	resp, err := req.SetContext(reqCtx).
		SetHeader("Accept", "application/json").
		SetBearerAuthToken(accessToken).
		Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "google userinfo request to `%v` failed", url)
	}
	body, err := resp.ToString()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read google userinfo response from `%v`", url)
	}
	if resp.IsErrorState() {
		return nil, errors.Errorf("google userinfo request to `%v` failed, statusCode:%v, response: %v", url, resp.GetStatusCode(), body)
	}
	var prof profile
	if err = json.Unmarshal([]byte(body), &prof); err != nil {
		return nil, errors.Wrapf(err, "unmarshalling google userinfo response failed, response: %v", body)
	}

	return prof.normalize()
}

// normalize is strict: google always populates email and name for a consented
// profile, so a missing field means a broken login, not a degraded one.
func (p *profile) normalize() (*internal.Identity, error) {
	if p.ID == "" {
		return nil, errors.Wrap(ErrIncompleteProfile, "google profile has no id")
	}
	if p.Email == "" {
		return nil, errors.Wrap(ErrIncompleteProfile, "google profile has no email")
	}
	if p.Name == "" {
		return nil, errors.Wrap(ErrIncompleteProfile, "google profile has no name")
	}

	return &internal.Identity{
		UserID:   p.ID,
		Email:    p.Email,
		Name:     p.Name,
		Picture:  p.Picture,
		Provider: internal.ProviderGoogle,
	}, nil
}

func (a *auth) userInfoURL() string {
	if a.cfg.Auth.Google.UserInfoURL != "" {
		return a.cfg.Auth.Google.UserInfoURL
	}

	return defaultUserInfoURL
}

func (cfg *config) loadCredentials(applicationYAMLKey string) {
	if cfg.Auth.Google.ClientID == "" {
		cfg.Auth.Google.ClientID = appcfg.EnvVariable(applicationYAMLKey, "GOOGLE_CLIENT_ID")
	}
	if cfg.Auth.Google.ClientSecret == "" {
		cfg.Auth.Google.ClientSecret = appcfg.EnvVariable(applicationYAMLKey, "GOOGLE_CLIENT_SECRET")
	}
	if cfg.Auth.Google.RedirectURI == "" {
		cfg.Auth.Google.RedirectURI = appcfg.EnvVariable(applicationYAMLKey, "GOOGLE_REDIRECT_URI")
	}
}
