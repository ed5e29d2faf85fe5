// SPDX-License-Identifier: ice License 1.0

package main

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"

	"github.com/PierluigiRizzuExagon/social-api/auth"
	"github.com/PierluigiRizzuExagon/social-api/googlebusiness"
	"github.com/PierluigiRizzuExagon/social-api/server"
)

func (s *service) registerGoogleBusinessRoutes(router *server.Router) {
	// Account & location resource names contain slashes (f.e. `accounts/1234`), callers
	// URL-encode them and the router is configured to match on the raw path.
	router.
		GET("/google-business/test-connection", server.RootHandler(s.TestGoogleBusinessConnection)).
		GET("/google-business/accounts", server.RootHandler(s.GetGoogleBusinessAccounts)).
		GET("/google-business/locations", server.RootHandler(s.GetGoogleBusinessLocations)).
		GET("/google-business/locations/:name", server.RootHandler(s.GetGoogleBusinessAccountLocations)).
		PUT("/google-business/locations/:name", server.RootHandler(s.UpdateGoogleBusinessLocation)).
		POST("/google-business/locations/:name/posts", server.RootHandler(s.CreateGoogleBusinessPost)).
		GET("/google-business/locations/:name/reviews", server.RootHandler(s.GetGoogleBusinessReviews)).
		POST("/google-business/reviews/:name/reply", server.RootHandler(s.ReplyToGoogleBusinessReview))
}

type (
	TestGoogleBusinessConnectionArg struct {
		GoogleToken string `header:"X-Google-Token" required:"true" swaggerignore:"true"`
	}
	GetGoogleBusinessAccountsArg struct {
		GoogleToken string `header:"X-Google-Token" required:"true" swaggerignore:"true"`
	}
	GetGoogleBusinessLocationsArg struct {
		GoogleToken string `header:"X-Google-Token" required:"true" swaggerignore:"true"`
	}
	GetGoogleBusinessAccountLocationsArg struct {
		GoogleToken string `header:"X-Google-Token" required:"true" swaggerignore:"true"`
		AccountName string `uri:"name" required:"true" swaggerignore:"true"`
	}
	UpdateGoogleBusinessLocationArg struct {
		GoogleToken  string         `header:"X-Google-Token" required:"true" swaggerignore:"true"`
		Name         string         `uri:"name" required:"true" swaggerignore:"true"`
		LocationName *string        `json:"locationName"`
		PrimaryPhone *string        `json:"primaryPhone"`
		WebsiteURI   *string        `json:"websiteUri"`
		RegularHours map[string]any `json:"regularHours"`
		Categories   map[string]any `json:"categories"`
		Latlng       map[string]any `json:"latlng"`
		Address      map[string]any `json:"address"`
	}
	CreateGoogleBusinessPostArg struct {
		GoogleToken  string           `header:"X-Google-Token" required:"true" swaggerignore:"true"`
		Name         string           `uri:"name" required:"true" swaggerignore:"true"`
		Summary      string           `json:"summary" required:"true"`
		LanguageCode string           `json:"languageCode"`
		TopicType    string           `json:"topicType"`
		CallToAction map[string]any   `json:"callToAction"`
		Media        []map[string]any `json:"media"`
	}
	GetGoogleBusinessReviewsArg struct {
		GoogleToken string `header:"X-Google-Token" required:"true" swaggerignore:"true"`
		Name        string `uri:"name" required:"true" swaggerignore:"true"`
	}
	ReplyToGoogleBusinessReviewArg struct {
		GoogleToken string `header:"X-Google-Token" required:"true" swaggerignore:"true"`
		Name        string `uri:"name" required:"true" swaggerignore:"true"`
		Comment     string `json:"comment" required:"true"`
	}
)

// TestGoogleBusinessConnection godoc
//
//	@Schemes
//	@Description	Verifies the delegated google token by fetching the userinfo behind it. Always replies 200, failures are reported in the body.
//	@Tags			GoogleBusiness
//	@Produce		json
//	@Param			Authorization	header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string	true	"Delegated google token"	default(Google <Add google token here>)
//	@Success		200				{object}	map[string]any
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/test-connection [GET].
func (s *service) TestGoogleBusinessConnection(ctx context.Context, req *server.Request[TestGoogleBusinessConnectionArg, map[string]any]) (*server.Response[map[string]any], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	userinfo, err := s.googleBusinessClient.TestConnection(ctx, token)
	if err != nil {
		return server.OK(&map[string]any{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to connect to Google API",
		}), nil
	}

	return server.OK(&map[string]any{
		"success":         true,
		"message":         "Google API connection successful - Basic access confirmed",
		"userInfo":        userinfo,
		"availableScopes": []string{"email", "profile", "business.manage"},
		"tokenInfo":       map[string]any{"hasAccessToken": true, "tokenLength": len(token)},
	}), nil
}

// GetGoogleBusinessAccounts godoc
//
//	@Schemes
//	@Description	Lists the business accounts the delegated google token can access.
//	@Tags			GoogleBusiness
//	@Produce		json
//	@Param			Authorization	header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string	true	"Delegated google token"	default(Google <Add google token here>)
//	@Success		200				{array}		googlebusiness.Account
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/accounts [GET].
func (s *service) GetGoogleBusinessAccounts(ctx context.Context, req *server.Request[GetGoogleBusinessAccountsArg, []*googlebusiness.Account]) (*server.Response[[]*googlebusiness.Account], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	accounts, err := s.googleBusinessClient.GetAccounts(ctx, token)
	if err != nil {
		return nil, googleBusinessError(errors.Wrapf(err, "failed to get google business accounts"), err)
	}

	return server.OK(&accounts), nil
}

// GetGoogleBusinessLocations godoc
//
//	@Schemes
//	@Description	Lists the business locations across all accounts the delegated google token can access.
//	@Tags			GoogleBusiness
//	@Produce		json
//	@Param			Authorization	header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string	true	"Delegated google token"	default(Google <Add google token here>)
//	@Success		200				{array}		googlebusiness.Location
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/locations [GET].
func (s *service) GetGoogleBusinessLocations(ctx context.Context, req *server.Request[GetGoogleBusinessLocationsArg, []*googlebusiness.Location]) (*server.Response[[]*googlebusiness.Location], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	locations, err := s.googleBusinessClient.GetLocations(ctx, token, "")
	if err != nil {
		return nil, googleBusinessError(errors.Wrapf(err, "failed to get google business locations"), err)
	}

	return server.OK(&locations), nil
}

// GetGoogleBusinessAccountLocations godoc
//
//	@Schemes
//	@Description	Lists the business locations of a single account.
//	@Tags			GoogleBusiness
//	@Produce		json
//	@Param			Authorization	header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string	true	"Delegated google token"	default(Google <Add google token here>)
//	@Param			name			path		string	true	"the url-encoded resource name of the account, f.e. accounts%2F1234"
//	@Success		200				{array}		googlebusiness.Location
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/locations/{name} [GET].
func (s *service) GetGoogleBusinessAccountLocations(ctx context.Context, req *server.Request[GetGoogleBusinessAccountLocationsArg, []*googlebusiness.Location]) (*server.Response[[]*googlebusiness.Location], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	locations, err := s.googleBusinessClient.GetLocations(ctx, token, req.Data.AccountName)
	if err != nil {
		return nil, googleBusinessError(errors.Wrapf(err, "failed to get locations of account:%v", req.Data.AccountName), err)
	}

	return server.OK(&locations), nil
}

// UpdateGoogleBusinessLocation godoc
//
//	@Schemes
//	@Description	Patches the editable fields of a business location. Only the fields present in the body are touched.
//	@Tags			GoogleBusiness
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string							true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string							true	"Delegated google token"	default(Google <Add google token here>)
//	@Param			name			path		string							true	"the url-encoded resource name of the location, f.e. locations%2F1234"
//	@Param			request			body		UpdateGoogleBusinessLocationArg	true	"Request params"
//	@Success		200				{object}	googlebusiness.Location
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/locations/{name} [PUT].
func (s *service) UpdateGoogleBusinessLocation(ctx context.Context, req *server.Request[UpdateGoogleBusinessLocationArg, googlebusiness.Location]) (*server.Response[googlebusiness.Location], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	location, err := s.googleBusinessClient.UpdateLocation(ctx, token, req.Data.Name, req.Data.locationPatch())
	if err != nil {
		return nil, googleBusinessError(errors.Wrapf(err, "failed to update google business location:%v", req.Data.Name), err)
	}

	return server.OK(location), nil
}

func (a *UpdateGoogleBusinessLocationArg) locationPatch() map[string]any {
	patch := make(map[string]any)
	if a.LocationName != nil {
		patch["locationName"] = *a.LocationName
	}
	if a.PrimaryPhone != nil {
		patch["primaryPhone"] = *a.PrimaryPhone
	}
	if a.WebsiteURI != nil {
		patch["websiteUri"] = *a.WebsiteURI
	}
	if a.RegularHours != nil {
		patch["regularHours"] = a.RegularHours
	}
	if a.Categories != nil {
		patch["categories"] = a.Categories
	}
	if a.Latlng != nil {
		patch["latlng"] = a.Latlng
	}
	if a.Address != nil {
		patch["address"] = a.Address
	}

	return patch
}

// CreateGoogleBusinessPost godoc
//
//	@Schemes
//	@Description	Placeholder for local post creation, which needs the separately approved Google Business Profile API.
//	@Tags			GoogleBusiness
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string						true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string						true	"Delegated google token"	default(Google <Add google token here>)
//	@Param			name			path		string						true	"the url-encoded resource name of the location, f.e. locations%2F1234"
//	@Param			request			body		CreateGoogleBusinessPostArg	true	"Request params"
//	@Success		200				{object}	map[string]any
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/locations/{name}/posts [POST].
func (s *service) CreateGoogleBusinessPost(ctx context.Context, req *server.Request[CreateGoogleBusinessPostArg, map[string]any]) (*server.Response[map[string]any], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	post := map[string]any{"summary": req.Data.Summary}
	if req.Data.LanguageCode != "" {
		post["languageCode"] = req.Data.LanguageCode
	}
	if req.Data.TopicType != "" {
		post["topicType"] = req.Data.TopicType
	}
	if req.Data.CallToAction != nil {
		post["callToAction"] = req.Data.CallToAction
	}
	if req.Data.Media != nil {
		post["media"] = req.Data.Media
	}
	result, err := s.googleBusinessClient.CreatePost(ctx, token, req.Data.Name, post)
	if err != nil {
		return nil, googleBusinessError(errors.Wrapf(err, "failed to create google business post for location:%v", req.Data.Name), err)
	}

	return server.OK(&result), nil
}

// GetGoogleBusinessReviews godoc
//
//	@Schemes
//	@Description	Placeholder for review listing, which needs the separately approved Google Business Profile API.
//	@Tags			GoogleBusiness
//	@Produce		json
//	@Param			Authorization	header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string	true	"Delegated google token"	default(Google <Add google token here>)
//	@Param			name			path		string	true	"the url-encoded resource name of the location, f.e. locations%2F1234"
//	@Success		200				{object}	map[string]any
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/locations/{name}/reviews [GET].
func (s *service) GetGoogleBusinessReviews(ctx context.Context, req *server.Request[GetGoogleBusinessReviewsArg, map[string]any]) (*server.Response[map[string]any], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	result, err := s.googleBusinessClient.GetReviews(ctx, token, req.Data.Name)
	if err != nil {
		return nil, googleBusinessError(errors.Wrapf(err, "failed to get google business reviews for location:%v", req.Data.Name), err)
	}

	return server.OK(&result), nil
}

// ReplyToGoogleBusinessReview godoc
//
//	@Schemes
//	@Description	Placeholder for review replies, which need the separately approved Google Business Profile API.
//	@Tags			GoogleBusiness
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string							true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Google-Token	header		string							true	"Delegated google token"	default(Google <Add google token here>)
//	@Param			name			path		string							true	"the url-encoded resource name of the review, f.e. accounts%2F1%2Flocations%2F2%2Freviews%2F3"
//	@Param			request			body		ReplyToGoogleBusinessReviewArg	true	"Request params"
//	@Success		200				{object}	map[string]any
//	@Failure		400				{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/google-business/reviews/{name}/reply [POST].
func (s *service) ReplyToGoogleBusinessReview(ctx context.Context, req *server.Request[ReplyToGoogleBusinessReviewArg, map[string]any]) (*server.Response[map[string]any], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.GoogleToken, auth.ProviderGoogle)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	result, err := s.googleBusinessClient.ReplyToReview(ctx, token, req.Data.Name, req.Data.Comment)
	if err != nil {
		return nil, googleBusinessError(errors.Wrapf(err, "failed to reply to google business review:%v", req.Data.Name), err)
	}

	return server.OK(&result), nil
}

// googleBusinessError mirrors the upstream googleapi error verbatim, status code included.
func googleBusinessError(wrapped, original error) *server.Response[server.ErrorResponse] {
	var gErr *googleapi.Error
	if errors.As(original, &gErr) && gErr.Code >= http.StatusBadRequest {
		return server.ErrorWithStatus(wrapped, gErr.Code, "GOOGLE_API_ERROR", map[string]any{"originalError": gErr.Message})
	}

	return server.Unexpected(wrapped)
}
