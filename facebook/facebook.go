// SPDX-License-Identifier: ice License 1.0

package facebook

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	appcfg "github.com/PierluigiRizzuExagon/social-api/config"
	"github.com/PierluigiRizzuExagon/social-api/log"
	"github.com/PierluigiRizzuExagon/social-api/terror"
)

func init() { //nolint:gochecknoinits // It's the only way to tweak the client.
	req.DefaultClient().SetJsonMarshal(json.Marshal)
	req.DefaultClient().SetJsonUnmarshal(json.Unmarshal)
	req.DefaultClient().GetClient().Timeout = requestDeadline
}

func New(applicationYAMLKey string) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	if cfg.Facebook.BaseURL == "" {
		cfg.Facebook.BaseURL = defaultBaseURL
	}
	cfg.Facebook.BaseURL = strings.TrimSuffix(cfg.Facebook.BaseURL, "/")

	return &client{cfg: &cfg}
}

func (c *client) GetPages(ctx context.Context, userAccessToken string) ([]*Page, error) {
	url := c.cfg.Facebook.BaseURL + "/me/accounts"
	body, err := c.get(ctx, url, userAccessToken, map[string]string{"fields": "id,name,access_token,category,tasks"})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list managed pages via `%v`", url)
	}
	var envelope listEnvelope[*Page]
	if uErr := json.Unmarshal([]byte(body), &envelope); uErr != nil {
		return nil, errors.Wrapf(uErr, "unmarshalling pages response from `%v` failed, response: %v", url, body)
	}

	return envelope.Data, nil
}

func (c *client) GetPagePosts(ctx context.Context, pageAccessToken, pageID string, limit int) ([]*Post, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	url := fmt.Sprintf("%v/%v/posts", c.cfg.Facebook.BaseURL, pageID)
	body, err := c.get(ctx, url, pageAccessToken, map[string]string{"fields": postFields, "limit": strconv.Itoa(limit)})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list posts of pageID:%v via `%v`", pageID, url)
	}
	var envelope listEnvelope[*Post]
	if uErr := json.Unmarshal([]byte(body), &envelope); uErr != nil {
		return nil, errors.Wrapf(uErr, "unmarshalling posts response from `%v` failed, response: %v", url, body)
	}

	return envelope.Data, nil
}

//nolint:funlen // Photo & feed publishing in one place.
func (c *client) CreatePost(ctx context.Context, pageAccessToken, pageID string, post *NewPost) (*CreatedPost, error) {
	var url string
	request := c.buildHTTPRequest(ctx, pageAccessToken)
	if post.Image != nil {
		url = fmt.Sprintf("%v/%v/photos", c.cfg.Facebook.BaseURL, pageID)
		request = request.SetFileReader("source", post.ImageFilename, post.Image)
		if post.Message != "" {
			request = request.SetFormData(map[string]string{"message": post.Message})
		}
	} else {
		url = fmt.Sprintf("%v/%v/feed", c.cfg.Facebook.BaseURL, pageID)
		formData := map[string]string{"message": post.Message}
		if post.Link != "" {
			formData["link"] = post.Link
		}
		request = request.SetFormData(formData)
	}
	resp, err := request.Post(url)
	body, err := c.processResponse(resp, err, url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to publish post to pageID:%v via `%v`", pageID, url)
	}
	var created CreatedPost
	if uErr := json.Unmarshal([]byte(body), &created); uErr != nil {
		return nil, errors.Wrapf(uErr, "unmarshalling create post response from `%v` failed, response: %v", url, body)
	}

	return &created, nil
}

// Attached images cannot be edited, the graph API only accepts new message & link values.
func (c *client) UpdatePost(ctx context.Context, pageAccessToken, postID, message, link string) error {
	formData := map[string]string{"message": message}
	if link != "" {
		formData["link"] = link
	}
	url := fmt.Sprintf("%v/%v", c.cfg.Facebook.BaseURL, postID)
	resp, err := c.buildHTTPRequest(ctx, pageAccessToken).SetFormData(formData).Post(url)

	return errors.Wrapf(c.expectSuccess(resp, err, url), "unable to update postID:%v", postID)
}

func (c *client) DeletePost(ctx context.Context, pageAccessToken, postID string) error {
	url := fmt.Sprintf("%v/%v", c.cfg.Facebook.BaseURL, postID)
	resp, err := c.buildHTTPRequest(ctx, pageAccessToken).Delete(url)

	return errors.Wrapf(c.expectSuccess(resp, err, url), "unable to delete postID:%v", postID)
}

func (c *client) GetPostComments(ctx context.Context, pageAccessToken, postID string, limit int) ([]*Comment, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	url := fmt.Sprintf("%v/%v/comments", c.cfg.Facebook.BaseURL, postID)
	body, err := c.get(ctx, url, pageAccessToken, map[string]string{"fields": commentFields, "limit": strconv.Itoa(limit)})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list comments of postID:%v via `%v`", postID, url)
	}
	var envelope listEnvelope[*Comment]
	if uErr := json.Unmarshal([]byte(body), &envelope); uErr != nil {
		return nil, errors.Wrapf(uErr, "unmarshalling comments response from `%v` failed, response: %v", url, body)
	}

	return envelope.Data, nil
}

func (c *client) ReplyToComment(ctx context.Context, pageAccessToken, commentID, message string) (*CreatedComment, error) {
	url := fmt.Sprintf("%v/%v/comments", c.cfg.Facebook.BaseURL, commentID)
	resp, err := c.buildHTTPRequest(ctx, pageAccessToken).SetFormData(map[string]string{"message": message}).Post(url)
	body, err := c.processResponse(resp, err, url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to reply to commentID:%v via `%v`", commentID, url)
	}
	var created CreatedComment
	if uErr := json.Unmarshal([]byte(body), &created); uErr != nil {
		return nil, errors.Wrapf(uErr, "unmarshalling reply response from `%v` failed, response: %v", url, body)
	}

	return &created, nil
}

func (c *client) DeleteComment(ctx context.Context, pageAccessToken, commentID string) error {
	url := fmt.Sprintf("%v/%v", c.cfg.Facebook.BaseURL, commentID)
	resp, err := c.buildHTTPRequest(ctx, pageAccessToken).Delete(url)

	return errors.Wrapf(c.expectSuccess(resp, err, url), "unable to delete commentID:%v", commentID)
}

func (c *client) HideComment(ctx context.Context, pageAccessToken, commentID string, hidden bool) error {
	url := fmt.Sprintf("%v/%v", c.cfg.Facebook.BaseURL, commentID)
	resp, err := c.buildHTTPRequest(ctx, pageAccessToken).SetFormData(map[string]string{"is_hidden": strconv.FormatBool(hidden)}).Post(url)

	return errors.Wrapf(c.expectSuccess(resp, err, url), "unable to set is_hidden:%v for commentID:%v", hidden, commentID)
}

func (c *client) LikeComment(ctx context.Context, pageAccessToken, commentID string) error {
	url := fmt.Sprintf("%v/%v/likes", c.cfg.Facebook.BaseURL, commentID)
	resp, err := c.buildHTTPRequest(ctx, pageAccessToken).Post(url)

	return errors.Wrapf(c.expectSuccess(resp, err, url), "unable to like commentID:%v", commentID)
}

func (c *client) GetPageInsights(ctx context.Context, pageAccessToken, pageID string, metrics []string, period string) ([]*Insight, error) {
	if period == "" {
		period = "day"
	}
	now := stdlibtime.Now()
	url := fmt.Sprintf("%v/%v/insights", c.cfg.Facebook.BaseURL, pageID)
	body, err := c.get(ctx, url, pageAccessToken, map[string]string{
		"metric": strings.Join(metrics, ","),
		"period": period,
		"since":  now.Add(-insightsWindow).Format(stdlibtime.DateOnly),
		"until":  now.Format(stdlibtime.DateOnly),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch insights of pageID:%v via `%v`", pageID, url)
	}
	var envelope listEnvelope[*Insight]
	if uErr := json.Unmarshal([]byte(body), &envelope); uErr != nil {
		return nil, errors.Wrapf(uErr, "unmarshalling insights response from `%v` failed, response: %v", url, body)
	}

	return envelope.Data, nil
}

func (c *client) get(ctx context.Context, url, accessToken string, queryParams map[string]string) (string, error) {
	resp, err := c.buildHTTPRequest(ctx, accessToken).
		SetRetryBackoffInterval(10*stdlibtime.Millisecond, 1*stdlibtime.Second). //nolint:mnd,gomnd // Static config.
		SetRetryCount(3).                                                        //nolint:mnd,gomnd // Static config.
		SetRetryHook(func(resp *req.Response, err error) {
			switch { //nolint:revive // .
			case err != nil:
				log.Error(errors.Wrapf(err, "facebook graph request failed, retrying... "))
			case resp.GetStatusCode() == http.StatusTooManyRequests:
				log.Error(errors.New("rate limit for facebook graph request reached, retrying... "))
			case resp.GetStatusCode() >= http.StatusInternalServerError:
				log.Error(errors.New("facebook graph request failed[internal server error], retrying... "))
			}
		}).
		SetRetryCondition(func(resp *req.Response, err error) bool {
			return err != nil || resp.GetStatusCode() == http.StatusTooManyRequests || resp.GetStatusCode() >= http.StatusInternalServerError
		}).
		SetQueryParams(queryParams).
		Get(url)

	return c.processResponse(resp, err, url)
}

// processResponse turns a graph api failure into a structured error carrying
// the upstream message, code and details. Access tokens never make it into
// the error chain.
func (c *client) processResponse(resp *req.Response, err error, url string) (string, error) {
	if err != nil {
		return "", errors.Wrapf(ErrGraphAPICall, "facebook graph request to `%v` failed, reason:%v", url, err.Error())
	}
	body, err := resp.ToString()
	if err != nil {
		return "", errors.Wrapf(err, "unable to read facebook graph response from `%v`", url)
	}
	if resp.IsErrorState() {
		var gErr graphError
		if uErr := json.Unmarshal([]byte(body), &gErr); uErr != nil || gErr.Error.Message == "" {
			return "", terror.New(errors.Wrapf(ErrGraphAPICall, "facebook graph request to `%v` failed, statusCode:%v", url, resp.GetStatusCode()),
				map[string]any{"originalError": body, "code": resp.GetStatusCode()})
		}

		return "", terror.New(errors.Wrapf(ErrGraphAPICall, "facebook graph request to `%v` failed: %v", url, gErr.Error.Message),
			map[string]any{
				"originalError": gErr.Error.Message,
				"code":          gErr.Error.Code,
				"details": map[string]any{
					"type":         gErr.Error.Type,
					"errorSubcode": gErr.Error.ErrorSubcode,
					"fbtraceId":    gErr.Error.FBTraceID,
				},
			})
	}

	return body, nil
}

func (c *client) expectSuccess(resp *req.Response, err error, url string) error {
	body, pErr := c.processResponse(resp, err, url)
	if pErr != nil {
		return pErr
	}
	var success successEnvelope
	if uErr := json.Unmarshal([]byte(body), &success); uErr != nil {
		return errors.Wrapf(uErr, "unmarshalling facebook graph response from `%v` failed, response: %v", url, body)
	}
	if !success.Success {
		return errors.Wrapf(ErrGraphAPICall, "facebook graph request to `%v` reported failure, response: %v", url, body)
	}

	return nil
}

func (c *client) buildHTTPRequest(ctx context.Context, accessToken string) *req.Request {
	return req.
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("access_token", accessToken)
}
