// SPDX-License-Identifier: ice License 1.0

package googlebusiness

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/mybusinessaccountmanagement/v1"
	"google.golang.org/api/mybusinessbusinessinformation/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	appcfg "github.com/PierluigiRizzuExagon/social-api/config"
	"github.com/PierluigiRizzuExagon/social-api/log"
)

func New(applicationYAMLKey string) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)

	return &client{cfg: &cfg}
}

func (c *client) TestConnection(ctx context.Context, accessToken string) (*Userinfo, error) {
	service, err := oauth2api.NewService(ctx, c.clientOptions(accessToken, c.cfg.GoogleBusiness.UserInfoEndpoint)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build oauth2 service")
	}
	userinfo, err := service.Userinfo.Get().Context(ctx).Do()

	// Upstream errors are googleapi.Error values, they cross this boundary untouched.
	return userinfo, err //nolint:wrapcheck // Callers need the raw googleapi error.
}

func (c *client) GetAccounts(ctx context.Context, accessToken string) ([]*Account, error) {
	service, err := mybusinessaccountmanagement.NewService(ctx, c.clientOptions(accessToken, c.cfg.GoogleBusiness.AccountManagementEndpoint)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build account management service")
	}
	resp, err := service.Accounts.List().Context(ctx).Do()
	if err != nil {
		return nil, err //nolint:wrapcheck // Callers need the raw googleapi error.
	}

	return resp.Accounts, nil
}

func (c *client) GetLocations(ctx context.Context, accessToken, accountName string) ([]*Location, error) {
	service, err := mybusinessbusinessinformation.NewService(ctx, c.clientOptions(accessToken, c.cfg.GoogleBusiness.BusinessInformationEndpoint)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build business information service")
	}
	if accountName != "" {
		return c.accountLocations(ctx, service, accountName)
	}
	accounts, err := c.GetAccounts(ctx, accessToken)
	if err != nil {
		return nil, err //nolint:wrapcheck // Callers need the raw googleapi error.
	}
	locations := make([]*Location, 0, len(accounts))
	for _, account := range accounts {
		accountLocations, lErr := c.accountLocations(ctx, service, account.Name)
		if lErr != nil {
			log.Warn(fmt.Sprintf("skipping locations of account:%v, reason: %v", account.Name, lErr.Error()))

			continue
		}
		locations = append(locations, accountLocations...)
	}

	return locations, nil
}

func (c *client) UpdateLocation(ctx context.Context, accessToken, locationName string, patch map[string]any) (*Location, error) {
	service, err := mybusinessbusinessinformation.NewService(ctx, c.clientOptions(accessToken, c.cfg.GoogleBusiness.BusinessInformationEndpoint)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build business information service")
	}
	location, updateMask, err := translateLocationPatch(patch)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid location patch for %v", locationName)
	}
	updated, err := service.Locations.Patch(locationName, location).UpdateMask(updateMask).Context(ctx).Do()

	return updated, err //nolint:wrapcheck // Callers need the raw googleapi error.
}

func (c *client) CreatePost(ctx context.Context, _, locationName string, _ map[string]any) (map[string]any, error) {
	return map[string]any{
		"message":  "Post creation requires the Google Business Profile API, which needs separate approval from Google",
		"location": locationName,
	}, nil
}

func (c *client) GetReviews(ctx context.Context, _, locationName string) (map[string]any, error) {
	return map[string]any{
		"message":  "Reviews require the Google Business Profile API, which needs separate approval from Google",
		"location": locationName,
		"reviews":  []any{},
	}, nil
}

func (c *client) ReplyToReview(ctx context.Context, _, reviewName, _ string) (map[string]any, error) {
	return map[string]any{
		"message": "Review replies require the Google Business Profile API, which needs separate approval from Google",
		"review":  reviewName,
	}, nil
}

func (c *client) accountLocations(ctx context.Context, service *mybusinessbusinessinformation.Service, accountName string) ([]*Location, error) {
	resp, err := service.Accounts.Locations.List(accountName).ReadMask(locationReadMask).Context(ctx).Do()
	if err != nil {
		return nil, err //nolint:wrapcheck // Callers need the raw googleapi error.
	}

	return resp.Locations, nil
}

// translateLocationPatch maps the legacy patch keys onto the business
// information api location fields and derives the update mask from them.
func translateLocationPatch(patch map[string]any) (*Location, string, error) {
	translated := make(map[string]any, len(patch))
	updateMask := make([]string, 0, len(patch))
	for key, value := range patch {
		fieldName, ok := locationFieldNames[key]
		if !ok {
			return nil, "", errors.Errorf("unsupported location field: %v", key)
		}
		if key == "primaryPhone" {
			value = map[string]any{"primaryPhone": value}
		}
		translated[fieldName] = value
		updateMask = append(updateMask, fieldName)
	}
	raw, err := json.Marshal(translated)
	if err != nil {
		return nil, "", errors.Wrapf(err, "marshalling translated location patch failed: %#v", translated)
	}
	var location Location
	if err = json.Unmarshal(raw, &location); err != nil {
		return nil, "", errors.Wrapf(err, "unmarshalling translated location patch failed: %v", string(raw))
	}
	sort.Strings(updateMask)

	return &location, strings.Join(updateMask, ","), nil
}

func (c *client) clientOptions(accessToken, endpoint string) []option.ClientOption {
	opts := append(make([]option.ClientOption, 0, 2), //nolint:mnd,gomnd // Token source + optional endpoint.
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})))
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	return opts
}
