// SPDX-License-Identifier: ice License 1.0

package facebook

import (
	"context"
	"io"
	stdlibtime "time"

	"github.com/pkg/errors"
)

// Public API.

var (
	ErrGraphAPICall = errors.New("facebook graph api call failed")
)

type (
	// Page is a facebook page the user manages, together with its own page access token.
	Page struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		AccessToken string   `json:"access_token"` //nolint:tagliatelle // Graph api naming.
		Category    string   `json:"category"`
		Tasks       []string `json:"tasks,omitempty"`
	}
	Post struct {
		ID           string `json:"id"`
		Message      string `json:"message,omitempty"`
		CreatedTime  string `json:"created_time,omitempty"`  //nolint:tagliatelle // Graph api naming.
		FullPicture  string `json:"full_picture,omitempty"`  //nolint:tagliatelle // Graph api naming.
		PermalinkURL string `json:"permalink_url,omitempty"` //nolint:tagliatelle // Graph api naming.
	}
	Comment struct {
		ID           string       `json:"id"`
		Message      string       `json:"message,omitempty"`
		From         *CommentFrom `json:"from,omitempty"`
		CreatedTime  string       `json:"created_time,omitempty"` //nolint:tagliatelle // Graph api naming.
		LikeCount    int          `json:"like_count"`             //nolint:tagliatelle // Graph api naming.
		CommentCount int          `json:"comment_count"`          //nolint:tagliatelle // Graph api naming.
		IsHidden     bool         `json:"is_hidden"`              //nolint:tagliatelle // Graph api naming.
	}
	CommentFrom struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	Insight struct {
		Name   string          `json:"name"`
		Period string          `json:"period"`
		Title  string          `json:"title,omitempty"`
		Values []*InsightValue `json:"values,omitempty"`
	}
	InsightValue struct {
		Value   any    `json:"value"`
		EndTime string `json:"end_time,omitempty"` //nolint:tagliatelle // Graph api naming.
	}
	// NewPost is the payload for publishing to a page feed. An attached image
	// switches publishing to the page`s photos edge.
	NewPost struct {
		Image         io.Reader
		Message       string
		Link          string
		ImageFilename string
	}
	CreatedPost struct {
		ID     string `json:"id"`
		PostID string `json:"post_id,omitempty"` //nolint:tagliatelle // Graph api naming.
	}
	CreatedComment struct {
		ID string `json:"id"`
	}
	Client interface {
		GetPages(ctx context.Context, userAccessToken string) ([]*Page, error)
		GetPagePosts(ctx context.Context, pageAccessToken, pageID string, limit int) ([]*Post, error)
		CreatePost(ctx context.Context, pageAccessToken, pageID string, post *NewPost) (*CreatedPost, error)
		UpdatePost(ctx context.Context, pageAccessToken, postID, message, link string) error
		DeletePost(ctx context.Context, pageAccessToken, postID string) error
		GetPostComments(ctx context.Context, pageAccessToken, postID string, limit int) ([]*Comment, error)
		ReplyToComment(ctx context.Context, pageAccessToken, commentID, message string) (*CreatedComment, error)
		DeleteComment(ctx context.Context, pageAccessToken, commentID string) error
		HideComment(ctx context.Context, pageAccessToken, commentID string, hidden bool) error
		LikeComment(ctx context.Context, pageAccessToken, commentID string) error
		GetPageInsights(ctx context.Context, pageAccessToken, pageID string, metrics []string, period string) ([]*Insight, error)
	}
)

// Private API.

const (
	defaultBaseURL  = "https://graph.facebook.com/v18.0"
	defaultLimit    = 25
	insightsWindow  = 7 * 24 * stdlibtime.Hour
	requestDeadline = 25 * stdlibtime.Second

	postFields    = "id,message,created_time,full_picture,permalink_url"
	commentFields = "id,message,from,created_time,like_count,comment_count,is_hidden"
)

type (
	client struct {
		cfg *config
	}
	config struct {
		Facebook struct {
			BaseURL string `yaml:"baseUrl" mapstructure:"baseUrl"`
		} `yaml:"facebook" mapstructure:"facebook"`
	}
	listEnvelope[T any] struct {
		Data []T `json:"data"`
	}
	graphError struct {
		Error struct {
			Message      string `json:"message"`
			Type         string `json:"type"`
			Code         int    `json:"code"`
			ErrorSubcode int    `json:"error_subcode"` //nolint:tagliatelle // Graph api naming.
			FBTraceID    string `json:"fbtrace_id"`    //nolint:tagliatelle // Graph api naming.
		} `json:"error"`
	}
	successEnvelope struct {
		Success bool `json:"success"`
	}
)
