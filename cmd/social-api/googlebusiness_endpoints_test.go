// SPDX-License-Identifier: ice License 1.0

package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/PierluigiRizzuExagon/social-api/googlebusiness"
	"github.com/PierluigiRizzuExagon/social-api/server"
)

type fakeGoogleBusinessClient struct {
	userinfo    *googlebusiness.Userinfo
	userinfoErr error
}

func (f *fakeGoogleBusinessClient) TestConnection(_ context.Context, _ string) (*googlebusiness.Userinfo, error) {
	return f.userinfo, f.userinfoErr
}

func (f *fakeGoogleBusinessClient) GetAccounts(_ context.Context, _ string) ([]*googlebusiness.Account, error) {
	return nil, nil
}

func (f *fakeGoogleBusinessClient) GetLocations(_ context.Context, _, _ string) ([]*googlebusiness.Location, error) {
	return nil, nil
}

func (f *fakeGoogleBusinessClient) UpdateLocation(_ context.Context, _, _ string, _ map[string]any) (*googlebusiness.Location, error) {
	return nil, nil
}

func (f *fakeGoogleBusinessClient) CreatePost(_ context.Context, _, _ string, _ map[string]any) (map[string]any, error) {
	return nil, nil
}

func (f *fakeGoogleBusinessClient) GetReviews(_ context.Context, _, _ string) (map[string]any, error) {
	return nil, nil
}

func (f *fakeGoogleBusinessClient) ReplyToReview(_ context.Context, _, _, _ string) (map[string]any, error) {
	return nil, nil
}

func TestTestGoogleBusinessConnection_SuccessEnvelope(t *testing.T) {
	t.Parallel()
	svc := &service{googleBusinessClient: &fakeGoogleBusinessClient{userinfo: &googlebusiness.Userinfo{Email: "bogus@bogus.com"}}}
	req := &server.Request[TestGoogleBusinessConnectionArg, map[string]any]{Data: &TestGoogleBusinessConnectionArg{GoogleToken: "Google ya29.bogus"}}

	resp, errResp := svc.TestGoogleBusinessConnection(t.Context(), req)

	require.Nil(t, errResp)
	require.Equal(t, http.StatusOK, resp.Code)
	body := *resp.Data
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Google API connection successful - Basic access confirmed", body["message"])
	assert.Equal(t, []string{"email", "profile", "business.manage"}, body["availableScopes"])
}

func TestTestGoogleBusinessConnection_FailureStillReplies200(t *testing.T) {
	t.Parallel()
	svc := &service{googleBusinessClient: &fakeGoogleBusinessClient{userinfoErr: errors.New("upstream blew up")}}
	req := &server.Request[TestGoogleBusinessConnectionArg, map[string]any]{Data: &TestGoogleBusinessConnectionArg{GoogleToken: "Google ya29.bogus"}}

	resp, errResp := svc.TestGoogleBusinessConnection(t.Context(), req)

	require.Nil(t, errResp)
	require.Equal(t, http.StatusOK, resp.Code)
	body := *resp.Data
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "upstream blew up", body["error"])
	assert.Equal(t, "Failed to connect to Google API", body["message"])
}

func TestTestGoogleBusinessConnection_MissingDelegatedToken(t *testing.T) {
	t.Parallel()
	svc := &service{googleBusinessClient: &fakeGoogleBusinessClient{}}
	req := &server.Request[TestGoogleBusinessConnectionArg, map[string]any]{Data: &TestGoogleBusinessConnectionArg{}}

	resp, errResp := svc.TestGoogleBusinessConnection(t.Context(), req)

	require.Nil(t, resp)
	require.NotNil(t, errResp)
	assert.Equal(t, http.StatusBadRequest, errResp.Code)
	assert.Equal(t, delegatedTokenRequired, errResp.Data.Code)
}

func TestLocationPatch_OnlyProvidedFields(t *testing.T) {
	t.Parallel()
	title := "Bogus Cafe"
	phone := "+1 234 567 8900"
	arg := &UpdateGoogleBusinessLocationArg{
		LocationName: &title,
		PrimaryPhone: &phone,
		Address:      map[string]any{"locality": "Bogusville"},
	}

	patch := arg.locationPatch()

	assert.Equal(t, map[string]any{
		"locationName": "Bogus Cafe",
		"primaryPhone": "+1 234 567 8900",
		"address":      map[string]any{"locality": "Bogusville"},
	}, patch)
}

func TestGoogleBusinessError_PassesUpstreamStatusThrough(t *testing.T) {
	t.Parallel()
	original := &googleapi.Error{Code: http.StatusForbidden, Message: "quota exceeded"}

	errResp := googleBusinessError(errors.Wrapf(original, "failed to get google business accounts"), original)

	require.NotNil(t, errResp)
	assert.Equal(t, http.StatusForbidden, errResp.Code)
	assert.Equal(t, "GOOGLE_API_ERROR", errResp.Data.Code)
	assert.Equal(t, map[string]any{"originalError": "quota exceeded"}, errResp.Data.Data)
}

func TestGoogleBusinessError_UnknownFailure(t *testing.T) {
	t.Parallel()
	original := errors.New("connection reset")

	errResp := googleBusinessError(errors.Wrapf(original, "failed to get google business accounts"), original)

	require.NotNil(t, errResp)
	assert.Equal(t, -1, errResp.Code)
	assert.Empty(t, errResp.Data.Code)
}
