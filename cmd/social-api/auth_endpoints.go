// SPDX-License-Identifier: ice License 1.0

package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/PierluigiRizzuExagon/social-api/auth"
	"github.com/PierluigiRizzuExagon/social-api/log"
	"github.com/PierluigiRizzuExagon/social-api/server"
)

func (s *service) registerAuthRoutes(router *server.Router) {
	// gin's routing tree rejects a static /auth/profile next to the /auth/:provider
	// wildcard, so profile is dispatched inside the wildcard handler.
	router.
		GET("/auth/:provider", func(ginCtx *gin.Context) {
			if ginCtx.Param("provider") == "profile" {
				server.RootHandler(s.GetProfile)(ginCtx)

				return
			}
			s.startSocialLogin(ginCtx)
		}).
		GET("/auth/:provider/callback", s.finishSocialLogin).
		POST("/auth/logout", server.RootHandler(s.Logout))
}

// The oauth start & callback endpoints speak in redirects, not json, so they
// bypass the generic root handler on purpose.
func (s *service) startSocialLogin(ginCtx *gin.Context) {
	provider := ginCtx.Param("provider")
	authCodeURL, err := s.authClient.AuthCodeURL(provider, uuid.NewString())
	if err != nil {
		log.Error(errors.Wrapf(err, "failed to start social login for provider:%v", provider))
		ginCtx.Redirect(http.StatusFound, auth.ErrorRedirectURL(s.authClient.FrontendURL(), err.Error()))

		return
	}
	ginCtx.Redirect(http.StatusFound, authCodeURL)
}

func (s *service) finishSocialLogin(ginCtx *gin.Context) {
	provider := ginCtx.Param("provider")
	if providerError := ginCtx.Query("error"); providerError != "" {
		log.Warn("social login denied by provider", "provider", provider, "error", providerError)
		ginCtx.Redirect(http.StatusFound, auth.ErrorRedirectURL(s.authClient.FrontendURL(), providerError))

		return
	}
	code := ginCtx.Query("code")
	if code == "" {
		ginCtx.Redirect(http.StatusFound, auth.ErrorRedirectURL(s.authClient.FrontendURL(), "missing authorization code"))

		return
	}
	result, err := s.authClient.CompleteLogin(ginCtx.Request.Context(), provider, code)
	if err != nil {
		log.Error(errors.Wrapf(err, "failed to finish social login for provider:%v", provider))
		ginCtx.Redirect(http.StatusFound, auth.ErrorRedirectURL(s.authClient.FrontendURL(), loginFailureMessage(err)))

		return
	}
	ginCtx.Redirect(http.StatusFound, auth.CallbackURL(s.authClient.FrontendURL(), result))
}

// loginFailureMessage keeps only the outermost message of the error chain: the
// redirect URL is user-visible and deeper causes can carry upstream response bodies.
func loginFailureMessage(err error) string {
	message, _, _ := strings.Cut(err.Error(), ": ")

	return message
}

// Logout godoc
//
//	@Schemes
//	@Description	Invalidates the session on the client side. Access tokens are stateless, there is nothing to revoke on the server.
//	@Tags			Auth
//	@Produce		json
//	@Param			Authorization	header	string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Success		200				{object}	map[string]string
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/auth/logout [POST].
func (s *service) Logout(_ context.Context, _ *server.Request[LogoutArg, map[string]string]) (*server.Response[map[string]string], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	return server.OK(&map[string]string{"message": "Logged out successfully"}), nil
}

// GetProfile godoc
//
//	@Schemes
//	@Description	Returns the identity baked into the caller`s access token.
//	@Tags			Auth
//	@Produce		json
//	@Param			Authorization	header	string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Success		200				{object}	auth.User
//	@Failure		401				{object}	server.ErrorResponse	"if not authorized"
//	@Router			/auth/profile [GET].
func (s *service) GetProfile(_ context.Context, req *server.Request[GetProfileArg, auth.User]) (*server.Response[auth.User], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	return server.OK(&auth.User{
		ID:       req.AuthenticatedUser.Subject,
		Email:    req.AuthenticatedUser.Email,
		Name:     req.AuthenticatedUser.Name,
		Picture:  req.AuthenticatedUser.Picture,
		Provider: req.AuthenticatedUser.Provider,
	}), nil
}

type (
	LogoutArg     struct{}
	GetProfileArg struct{}
)
