// SPDX-License-Identifier: ice License 1.0

package googlebusiness

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *client {
	cl := &client{cfg: new(config)}
	cl.cfg.GoogleBusiness.AccountManagementEndpoint = endpoint
	cl.cfg.GoogleBusiness.BusinessInformationEndpoint = endpoint
	cl.cfg.GoogleBusiness.UserInfoEndpoint = endpoint

	return cl
}

func TestTranslateLocationPatch(t *testing.T) {
	t.Parallel()
	patch := map[string]any{
		"locationName": "Bogus Cafe",
		"primaryPhone": "+1 234 567 8900",
		"websiteUri":   "https://bogus.example.com",
		"address": map[string]any{
			"addressLines": []any{"1 Bogus Street"},
			"locality":     "Bogusville",
		},
	}

	location, updateMask, err := translateLocationPatch(patch)
	require.NoError(t, err)
	assert.Equal(t, "phoneNumbers,storefrontAddress,title,websiteUri", updateMask)
	assert.Equal(t, "Bogus Cafe", location.Title)
	require.NotNil(t, location.PhoneNumbers)
	assert.Equal(t, "+1 234 567 8900", location.PhoneNumbers.PrimaryPhone)
	require.NotNil(t, location.StorefrontAddress)
	assert.Equal(t, "Bogusville", location.StorefrontAddress.Locality)
	assert.Equal(t, "https://bogus.example.com", location.WebsiteUri)
}

func TestTranslateLocationPatch_UnsupportedField(t *testing.T) {
	t.Parallel()
	location, updateMask, err := translateLocationPatch(map[string]any{"ownerSsn": "nope"})
	require.Error(t, err)
	require.Nil(t, location)
	require.Empty(t, updateMask)
}

func TestGetAccounts(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts", request.URL.Path)
		assert.Equal(t, "Bearer ya29.bogus", request.Header.Get("Authorization"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"accounts":[{"name":"accounts/123","accountName":"Bogus Business","type":"PERSONAL"}]}`))
	}))
	defer backend.Close()

	accounts, err := newTestClient(backend.URL).GetAccounts(t.Context(), "ya29.bogus")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "accounts/123", accounts[0].Name)
	assert.Equal(t, "Bogus Business", accounts[0].AccountName)
}

func TestGetLocations_SingleAccount(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/accounts/123/locations", request.URL.Path)
		assert.Equal(t, locationReadMask, request.URL.Query().Get("readMask"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"locations":[{"name":"locations/456","title":"Bogus Cafe"}]}`))
	}))
	defer backend.Close()

	locations, err := newTestClient(backend.URL).GetLocations(t.Context(), "ya29.bogus", "accounts/123")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "locations/456", locations[0].Name)
	assert.Equal(t, "Bogus Cafe", locations[0].Title)
}

func TestGetLocations_AggregatesAllAccountsAndSkipsBrokenOnes(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		switch request.URL.Path {
		case "/v1/accounts":
			_, _ = writer.Write([]byte(`{"accounts":[{"name":"accounts/123"},{"name":"accounts/666"},{"name":"accounts/789"}]}`))
		case "/v1/accounts/123/locations":
			_, _ = writer.Write([]byte(`{"locations":[{"name":"locations/1"}]}`))
		case "/v1/accounts/666/locations":
			writer.WriteHeader(http.StatusForbidden)
			_, _ = writer.Write([]byte(`{"error":{"code":403,"message":"no access"}}`))
		case "/v1/accounts/789/locations":
			_, _ = writer.Write([]byte(`{"locations":[{"name":"locations/2"},{"name":"locations/3"}]}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	locations, err := newTestClient(backend.URL).GetLocations(t.Context(), "ya29.bogus", "")
	require.NoError(t, err)
	require.Len(t, locations, 3)
	assert.Equal(t, "locations/1", locations[0].Name)
	assert.Equal(t, "locations/2", locations[1].Name)
	assert.Equal(t, "locations/3", locations[2].Name)
}

func TestUpdateLocation(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "/v1/locations/456", request.URL.Path)
		assert.Equal(t, "title", request.URL.Query().Get("updateMask"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"name":"locations/456","title":"Renamed Cafe"}`))
	}))
	defer backend.Close()

	location, err := newTestClient(backend.URL).UpdateLocation(t.Context(), "ya29.bogus", "locations/456", map[string]any{"locationName": "Renamed Cafe"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Cafe", location.Title)
}

func TestTestConnection(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/oauth2/v2/userinfo", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"1234567890","email":"bogus@bogus.com","name":"Bogus Bogus"}`))
	}))
	defer backend.Close()

	userinfo, err := newTestClient(backend.URL).TestConnection(t.Context(), "ya29.bogus")
	require.NoError(t, err)
	assert.Equal(t, "bogus@bogus.com", userinfo.Email)
}

func TestPlaceholderOperations(t *testing.T) {
	t.Parallel()
	cl := newTestClient("")

	post, err := cl.CreatePost(t.Context(), "ya29.bogus", "locations/456", map[string]any{"summary": "hello"})
	require.NoError(t, err)
	assert.Contains(t, post["message"], "Google Business Profile API")
	assert.Equal(t, "locations/456", post["location"])

	reviews, err := cl.GetReviews(t.Context(), "ya29.bogus", "locations/456")
	require.NoError(t, err)
	assert.Contains(t, reviews["message"], "Google Business Profile API")
	assert.Empty(t, reviews["reviews"])

	reply, err := cl.ReplyToReview(t.Context(), "ya29.bogus", "accounts/123/locations/456/reviews/789", "thanks")
	require.NoError(t, err)
	assert.Contains(t, reply["message"], "Google Business Profile API")
}
