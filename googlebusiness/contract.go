// SPDX-License-Identifier: ice License 1.0

package googlebusiness

import (
	"context"

	"google.golang.org/api/mybusinessaccountmanagement/v1"
	"google.golang.org/api/mybusinessbusinessinformation/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
)

// Public API.

type (
	Account  = mybusinessaccountmanagement.Account
	Location = mybusinessbusinessinformation.Location
	Userinfo = oauth2api.Userinfo

	Client interface {
		TestConnection(ctx context.Context, accessToken string) (*Userinfo, error)
		GetAccounts(ctx context.Context, accessToken string) ([]*Account, error)
		GetLocations(ctx context.Context, accessToken, accountName string) ([]*Location, error)
		UpdateLocation(ctx context.Context, accessToken, locationName string, patch map[string]any) (*Location, error)
		CreatePost(ctx context.Context, accessToken, locationName string, post map[string]any) (map[string]any, error)
		GetReviews(ctx context.Context, accessToken, locationName string) (map[string]any, error)
		ReplyToReview(ctx context.Context, accessToken, reviewName, comment string) (map[string]any, error)
	}
)

// Private API.

const (
	locationReadMask = "name,title,phoneNumbers,storefrontAddress,websiteUri,regularHours,categories,latlng,metadata"
)

//nolint:gochecknoglobals // Fixed mapping between the legacy patch keys and the business information api field names.
var locationFieldNames = map[string]string{
	"locationName": "title",
	"primaryPhone": "phoneNumbers",
	"address":      "storefrontAddress",
	"websiteUri":   "websiteUri",
	"regularHours": "regularHours",
	"categories":   "categories",
	"latlng":       "latlng",
}

type (
	client struct {
		cfg *config
	}
	config struct {
		GoogleBusiness struct {
			AccountManagementEndpoint   string `yaml:"accountManagementEndpoint" mapstructure:"accountManagementEndpoint"`
			BusinessInformationEndpoint string `yaml:"businessInformationEndpoint" mapstructure:"businessInformationEndpoint"`
			UserInfoEndpoint            string `yaml:"userInfoEndpoint" mapstructure:"userInfoEndpoint"`
		} `yaml:"googleBusiness" mapstructure:"googleBusiness"`
	}
)
