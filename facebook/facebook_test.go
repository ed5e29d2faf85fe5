// SPDX-License-Identifier: ice License 1.0

package facebook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PierluigiRizzuExagon/social-api/terror"
)

func newTestClient(baseURL string) *client {
	cl := &client{cfg: new(config)}
	cl.cfg.Facebook.BaseURL = baseURL

	return cl
}

func TestGetPages(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/me/accounts", request.URL.Path)
		assert.Equal(t, "EAAGuser", request.URL.Query().Get("access_token"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"data":[{"id":"111","name":"Bogus Page","access_token":"EAAGpage","category":"Business","tasks":["MANAGE"]}]}`))
	}))
	defer backend.Close()

	pages, err := newTestClient(backend.URL).GetPages(t.Context(), "EAAGuser")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "111", pages[0].ID)
	assert.Equal(t, "EAAGpage", pages[0].AccessToken)
	assert.Equal(t, []string{"MANAGE"}, pages[0].Tasks)
}

func TestGetPagePosts_DefaultLimit(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/111/posts", request.URL.Path)
		assert.Equal(t, "25", request.URL.Query().Get("limit"))
		assert.Equal(t, postFields, request.URL.Query().Get("fields"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"data":[{"id":"111_222","message":"hello"}]}`))
	}))
	defer backend.Close()

	posts, err := newTestClient(backend.URL).GetPagePosts(t.Context(), "EAAGpage", "111", 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "111_222", posts[0].ID)
}

func TestCreatePost_Feed(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/111/feed", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)
		require.NoError(t, request.ParseForm())
		assert.Equal(t, "hello", request.PostFormValue("message"))
		assert.Equal(t, "https://example.com", request.PostFormValue("link"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"111_333"}`))
	}))
	defer backend.Close()

	created, err := newTestClient(backend.URL).CreatePost(t.Context(), "EAAGpage", "111", &NewPost{Message: "hello", Link: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "111_333", created.ID)
}

func TestCreatePost_WithImage(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/111/photos", request.URL.Path)
		assert.Contains(t, request.Header.Get("Content-Type"), "multipart/form-data")
		require.NoError(t, request.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello", request.PostFormValue("message"))
		file, header, fErr := request.FormFile("source")
		require.NoError(t, fErr)
		defer file.Close()
		assert.Equal(t, "bogus.jpg", header.Filename)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"444","post_id":"111_444"}`))
	}))
	defer backend.Close()

	newPost := &NewPost{Message: "hello", Image: strings.NewReader("bogus image bytes"), ImageFilename: "bogus.jpg"}
	created, err := newTestClient(backend.URL).CreatePost(t.Context(), "EAAGpage", "111", newPost)
	require.NoError(t, err)
	assert.Equal(t, "444", created.ID)
	assert.Equal(t, "111_444", created.PostID)
}

func TestUpdatePost_SuccessEnvelope(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/111_222", request.URL.Path)
		require.NoError(t, request.ParseForm())
		assert.Equal(t, "edited", request.PostFormValue("message"))
		assert.Equal(t, "https://edited.example.com", request.PostFormValue("link"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"success":true}`))
	}))
	defer backend.Close()

	require.NoError(t, newTestClient(backend.URL).UpdatePost(t.Context(), "EAAGpage", "111_222", "edited", "https://edited.example.com"))
}

func TestDeletePost_ReportedFailure(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"success":false}`))
	}))
	defer backend.Close()

	err := newTestClient(backend.URL).DeletePost(t.Context(), "EAAGpage", "111_222")
	require.ErrorIs(t, err, ErrGraphAPICall)
}

func TestGraphError_StructuredData(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190,"error_subcode":460,"fbtrace_id":"bogus"}}`))
	}))
	defer backend.Close()

	pages, err := newTestClient(backend.URL).GetPages(t.Context(), "EAAGexpired")
	require.Error(t, err)
	require.Nil(t, pages)
	require.ErrorIs(t, err, ErrGraphAPICall)
	tErr := terror.As(err)
	require.NotNil(t, tErr)
	assert.Equal(t, "Invalid OAuth access token.", tErr.Data["originalError"])
	assert.Equal(t, 190, tErr.Data["code"])
	details, ok := tErr.Data["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "OAuthException", details["type"])
	assert.NotContains(t, err.Error(), "EAAGexpired")
}

func TestHideAndLikeComment(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(request.URL.Path, "/likes") {
			_, _ = writer.Write([]byte(`{"success":true}`))

			return
		}
		require.NoError(t, request.ParseForm())
		assert.Equal(t, "true", request.PostFormValue("is_hidden"))
		_, _ = writer.Write([]byte(`{"success":true}`))
	}))
	defer backend.Close()

	cl := newTestClient(backend.URL)
	require.NoError(t, cl.HideComment(t.Context(), "EAAGpage", "555", true))
	require.NoError(t, cl.LikeComment(t.Context(), "EAAGpage", "555"))
}

func TestGetPageInsights_QueryParams(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/111/insights", request.URL.Path)
		assert.Equal(t, "page_impressions,page_post_engagements", request.URL.Query().Get("metric"))
		assert.Equal(t, "day", request.URL.Query().Get("period"))
		assert.NotEmpty(t, request.URL.Query().Get("since"))
		assert.NotEmpty(t, request.URL.Query().Get("until"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"data":[{"name":"page_impressions","period":"day","values":[{"value":42,"end_time":"2024-01-01T08:00:00+0000"}]}]}`))
	}))
	defer backend.Close()

	insights, err := newTestClient(backend.URL).GetPageInsights(t.Context(), "EAAGpage", "111", []string{"page_impressions", "page_post_engagements"}, "")
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "page_impressions", insights[0].Name)
	require.Len(t, insights[0].Values, 1)
}

func TestConcurrentRequests_TokenIsolation(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token := request.URL.Query().Get("access_token")
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"data":[{"id":"` + token + `"}]}`))
	}))
	defer backend.Close()
	cl := newTestClient(backend.URL)

	var wg sync.WaitGroup
	for _, token := range []string{"EAAGpage1", "EAAGpage2"} {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			for range 20 {
				posts, err := cl.GetPagePosts(t.Context(), token, "111", 1)
				if !assert.NoError(t, err) || !assert.Len(t, posts, 1) {
					return
				}
				assert.Equal(t, token, posts[0].ID)
			}
		}(token)
	}
	wg.Wait()
}
