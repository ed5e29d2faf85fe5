// SPDX-License-Identifier: ice License 1.0

package main

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/pkg/errors"

	"github.com/PierluigiRizzuExagon/social-api/auth"
	"github.com/PierluigiRizzuExagon/social-api/facebook"
	"github.com/PierluigiRizzuExagon/social-api/server"
	"github.com/PierluigiRizzuExagon/social-api/terror"
)

func (s *service) registerFacebookRoutes(router *server.Router) {
	router.
		GET("/facebook/pages", server.RootHandler(s.GetFacebookPages)).
		GET("/facebook/pages/:pageId/posts", server.RootHandler(s.GetFacebookPagePosts)).
		POST("/facebook/pages/:pageId/posts", server.RootHandler(s.CreateFacebookPost)).
		GET("/facebook/pages/:pageId/insights", server.RootHandler(s.GetFacebookPageInsights)).
		PUT("/facebook/posts/:postId", server.RootHandler(s.UpdateFacebookPost)).
		DELETE("/facebook/posts/:postId", server.RootHandler(s.DeleteFacebookPost)).
		GET("/facebook/posts/:postId/comments", server.RootHandler(s.GetFacebookPostComments)).
		POST("/facebook/comments/:commentId/reply", server.RootHandler(s.ReplyToFacebookComment)).
		POST("/facebook/comments/:commentId/hide", server.RootHandler(s.HideFacebookComment)).
		POST("/facebook/comments/:commentId/likes", server.RootHandler(s.LikeFacebookComment)).
		DELETE("/facebook/comments/:commentId", server.RootHandler(s.DeleteFacebookComment))
}

type (
	GetFacebookPagesArg struct {
		FacebookToken string `header:"X-Facebook-Token" required:"true" swaggerignore:"true"`
	}
	GetFacebookPagePostsArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		PageID            string `uri:"pageId" required:"true" swaggerignore:"true"`
		Limit             int    `form:"limit"`
	}
	CreateFacebookPostArg struct {
		FacebookPageToken string                `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		PageID            string                `uri:"pageId" required:"true" swaggerignore:"true"`
		Message           string                `form:"message" formMultipart:"message"`
		Link              string                `form:"link" formMultipart:"link"`
		Image             *multipart.FileHeader `form:"image" formMultipart:"image" swaggerignore:"true"`
	}
	GetFacebookPageInsightsArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		PageID            string `uri:"pageId" required:"true" swaggerignore:"true"`
		Metrics           string `form:"metrics"`
		Period            string `form:"period"`
	}
	UpdateFacebookPostArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		PostID            string `uri:"postId" required:"true" swaggerignore:"true"`
		Message           string `json:"message" required:"true"`
		Link              string `json:"link"`
	}
	DeleteFacebookPostArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		PostID            string `uri:"postId" required:"true" swaggerignore:"true"`
	}
	GetFacebookPostCommentsArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		PostID            string `uri:"postId" required:"true" swaggerignore:"true"`
		Limit             int    `form:"limit"`
	}
	ReplyToFacebookCommentArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		CommentID         string `uri:"commentId" required:"true" swaggerignore:"true"`
		Message           string `json:"message" required:"true"`
	}
	HideFacebookCommentArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		CommentID         string `uri:"commentId" required:"true" swaggerignore:"true"`
		Hide              *bool  `json:"hide"`
	}
	LikeFacebookCommentArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		CommentID         string `uri:"commentId" required:"true" swaggerignore:"true"`
	}
	DeleteFacebookCommentArg struct {
		FacebookPageToken string `header:"X-Facebook-Page-Token" required:"true" swaggerignore:"true"`
		CommentID         string `uri:"commentId" required:"true" swaggerignore:"true"`
	}
)

// GetFacebookPages godoc
//
//	@Schemes
//	@Description	Lists the facebook pages the delegated user token can manage.
//	@Tags			Facebook
//	@Produce		json
//	@Param			Authorization		header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Token	header		string	true	"Delegated facebook user token"	default(Facebook <Add user token here>)
//	@Success		200					{array}		facebook.Page
//	@Failure		400					{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401					{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/pages [GET].
func (s *service) GetFacebookPages(ctx context.Context, req *server.Request[GetFacebookPagesArg, []*facebook.Page]) (*server.Response[[]*facebook.Page], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	pages, err := s.facebookClient.GetPages(ctx, token)
	if err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to get facebook pages"))
	}

	return server.OK(&pages), nil
}

// GetFacebookPagePosts godoc
//
//	@Schemes
//	@Description	Lists the latest posts of a page.
//	@Tags			Facebook
//	@Produce		json
//	@Param			Authorization			header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header		string	true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			pageId					path		string	true	"the id of the page"
//	@Param			limit					query		int		false	"max number of posts, defaults to 25"
//	@Success		200						{array}		facebook.Post
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/pages/{pageId}/posts [GET].
func (s *service) GetFacebookPagePosts(ctx context.Context, req *server.Request[GetFacebookPagePostsArg, []*facebook.Post]) (*server.Response[[]*facebook.Post], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	posts, err := s.facebookClient.GetPagePosts(ctx, token, req.Data.PageID, req.Data.Limit)
	if err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to get posts of pageID:%v", req.Data.PageID))
	}

	return server.OK(&posts), nil
}

// CreateFacebookPost godoc
//
//	@Schemes
//	@Description	Publishes a post to the page feed, or to the page photos if an image is attached.
//	@Tags			Facebook
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			Authorization			header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header		string	true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			pageId					path		string	true	"the id of the page"
//	@Param			message					formData	string	false	"the post text"
//	@Param			link					formData	string	false	"a link to attach"
//	@Param			image					formData	file	false	"an image to attach"
//	@Success		201						{object}	facebook.CreatedPost
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/pages/{pageId}/posts [POST].
func (s *service) CreateFacebookPost(ctx context.Context, req *server.Request[CreateFacebookPostArg, facebook.CreatedPost]) (*server.Response[facebook.CreatedPost], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	newPost := &facebook.NewPost{Message: req.Data.Message, Link: req.Data.Link}
	if req.Data.Image != nil {
		image, oErr := req.Data.Image.Open()
		if oErr != nil {
			return nil, server.UnprocessableEntity(errors.Wrapf(oErr, "failed to open uploaded image"), "STRUCTURE_VALIDATION_FAILED")
		}
		defer image.Close()
		newPost.Image = image
		newPost.ImageFilename = req.Data.Image.Filename
	}
	created, err := s.facebookClient.CreatePost(ctx, token, req.Data.PageID, newPost)
	if err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to create post on pageID:%v", req.Data.PageID))
	}

	return server.Created(created), nil
}

// GetFacebookPageInsights godoc
//
//	@Schemes
//	@Description	Fetches page level insight metrics for the last 7 days.
//	@Tags			Facebook
//	@Produce		json
//	@Param			Authorization			header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header		string	true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			pageId					path		string	true	"the id of the page"
//	@Param			metrics					query		string	false	"comma separated insight metric names, defaults to page_fans,page_impressions"
//	@Param			period					query		string	false	"aggregation period, defaults to day"
//	@Success		200						{array}		facebook.Insight
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/pages/{pageId}/insights [GET].
func (s *service) GetFacebookPageInsights(ctx context.Context, req *server.Request[GetFacebookPageInsightsArg, []*facebook.Insight]) (*server.Response[[]*facebook.Insight], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	metrics := []string{"page_fans", "page_impressions"}
	if req.Data.Metrics != "" {
		metrics = strings.Split(req.Data.Metrics, ",")
	}
	insights, err := s.facebookClient.GetPageInsights(ctx, token, req.Data.PageID, metrics, req.Data.Period)
	if err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to get insights of pageID:%v", req.Data.PageID))
	}

	return server.OK(&insights), nil
}

// UpdateFacebookPost godoc
//
//	@Schemes
//	@Description	Replaces the message of an existing post, and its link if one is given. Attached images cannot be changed.
//	@Tags			Facebook
//	@Accept			json
//	@Produce		json
//	@Param			Authorization			header		string					true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header		string					true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			postId					path		string					true	"the id of the post"
//	@Param			request					body		UpdateFacebookPostArg	true	"Request params"
//	@Success		200						{object}	map[string]bool
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/posts/{postId} [PUT].
func (s *service) UpdateFacebookPost(ctx context.Context, req *server.Request[UpdateFacebookPostArg, map[string]bool]) (*server.Response[map[string]bool], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	if err = s.facebookClient.UpdatePost(ctx, token, req.Data.PostID, req.Data.Message, req.Data.Link); err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to update postID:%v", req.Data.PostID))
	}

	return server.OK(&map[string]bool{"success": true}), nil
}

// DeleteFacebookPost godoc
//
//	@Schemes
//	@Description	Deletes a post from the page.
//	@Tags			Facebook
//	@Produce		json
//	@Param			Authorization			header	string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header	string	true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			postId					path	string	true	"the id of the post"
//	@Success		200						{object}	map[string]bool
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/posts/{postId} [DELETE].
func (s *service) DeleteFacebookPost(ctx context.Context, req *server.Request[DeleteFacebookPostArg, map[string]bool]) (*server.Response[map[string]bool], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	if err = s.facebookClient.DeletePost(ctx, token, req.Data.PostID); err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to delete postID:%v", req.Data.PostID))
	}

	return server.OK(&map[string]bool{"success": true}), nil
}

// GetFacebookPostComments godoc
//
//	@Schemes
//	@Description	Lists the comments of a post.
//	@Tags			Facebook
//	@Produce		json
//	@Param			Authorization			header		string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header		string	true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			postId					path		string	true	"the id of the post"
//	@Param			limit					query		int		false	"max number of comments, defaults to 25"
//	@Success		200						{array}		facebook.Comment
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/posts/{postId}/comments [GET].
func (s *service) GetFacebookPostComments(ctx context.Context, req *server.Request[GetFacebookPostCommentsArg, []*facebook.Comment]) (*server.Response[[]*facebook.Comment], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	comments, err := s.facebookClient.GetPostComments(ctx, token, req.Data.PostID, req.Data.Limit)
	if err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to get comments of postID:%v", req.Data.PostID))
	}

	return server.OK(&comments), nil
}

// ReplyToFacebookComment godoc
//
//	@Schemes
//	@Description	Replies to a comment on behalf of the page.
//	@Tags			Facebook
//	@Accept			json
//	@Produce		json
//	@Param			Authorization			header		string						true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header		string						true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			commentId				path		string						true	"the id of the comment"
//	@Param			request					body		ReplyToFacebookCommentArg	true	"Request params"
//	@Success		201						{object}	facebook.CreatedComment
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/comments/{commentId}/reply [POST].
func (s *service) ReplyToFacebookComment(ctx context.Context, req *server.Request[ReplyToFacebookCommentArg, facebook.CreatedComment]) (*server.Response[facebook.CreatedComment], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	created, err := s.facebookClient.ReplyToComment(ctx, token, req.Data.CommentID, req.Data.Message)
	if err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to reply to commentID:%v", req.Data.CommentID))
	}

	return server.Created(created), nil
}

// HideFacebookComment godoc
//
//	@Schemes
//	@Description	Hides or unhides a comment. Defaults to hiding when the flag is omitted.
//	@Tags			Facebook
//	@Accept			json
//	@Produce		json
//	@Param			Authorization			header		string					true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header		string					true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			commentId				path		string					true	"the id of the comment"
//	@Param			request					body		HideFacebookCommentArg	false	"Request params"
//	@Success		200						{object}	map[string]bool
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/comments/{commentId}/hide [POST].
func (s *service) HideFacebookComment(ctx context.Context, req *server.Request[HideFacebookCommentArg, map[string]bool]) (*server.Response[map[string]bool], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	hidden := true
	if req.Data.Hide != nil {
		hidden = *req.Data.Hide
	}
	if err = s.facebookClient.HideComment(ctx, token, req.Data.CommentID, hidden); err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to set hidden:%v for commentID:%v", hidden, req.Data.CommentID))
	}

	return server.OK(&map[string]bool{"success": true}), nil
}

// LikeFacebookComment godoc
//
//	@Schemes
//	@Description	Likes a comment on behalf of the page.
//	@Tags			Facebook
//	@Produce		json
//	@Param			Authorization			header	string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header	string	true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			commentId				path	string	true	"the id of the comment"
//	@Success		200						{object}	map[string]bool
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/comments/{commentId}/likes [POST].
func (s *service) LikeFacebookComment(ctx context.Context, req *server.Request[LikeFacebookCommentArg, map[string]bool]) (*server.Response[map[string]bool], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	if err = s.facebookClient.LikeComment(ctx, token, req.Data.CommentID); err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to like commentID:%v", req.Data.CommentID))
	}

	return server.OK(&map[string]bool{"success": true}), nil
}

// DeleteFacebookComment godoc
//
//	@Schemes
//	@Description	Deletes a comment from a post of the page.
//	@Tags			Facebook
//	@Produce		json
//	@Param			Authorization			header	string	true	"Insert your access token"	default(Bearer <Add access token here>)
//	@Param			X-Facebook-Page-Token	header	string	true	"Delegated facebook page token"	default(Facebook <Add page token here>)
//	@Param			commentId				path	string	true	"the id of the comment"
//	@Success		200						{object}	map[string]bool
//	@Failure		400						{object}	server.ErrorResponse	"if the delegated token is missing or malformed"
//	@Failure		401						{object}	server.ErrorResponse	"if not authorized"
//	@Router			/facebook/comments/{commentId} [DELETE].
func (s *service) DeleteFacebookComment(ctx context.Context, req *server.Request[DeleteFacebookCommentArg, map[string]bool]) (*server.Response[map[string]bool], *server.Response[server.ErrorResponse]) { //nolint:lll // .
	token, err := auth.DelegatedToken(req.Data.FacebookPageToken, auth.ProviderFacebook)
	if err != nil {
		return nil, server.BadRequest(err, delegatedTokenRequired)
	}
	if err = s.facebookClient.DeleteComment(ctx, token, req.Data.CommentID); err != nil {
		return nil, facebookError(errors.Wrapf(err, "failed to delete commentID:%v", req.Data.CommentID))
	}

	return server.OK(&map[string]bool{"success": true}), nil
}

// Graph failures come back as a 400 carrying the upstream error payload, clients branch on it.
func facebookError(err error) *server.Response[server.ErrorResponse] {
	if tErr := terror.As(err); tErr != nil {
		return server.BadRequest(err, "FACEBOOK_API_ERROR", tErr.Data)
	}

	return server.Unexpected(err)
}
