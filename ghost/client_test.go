package ghost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture records what the stub Ghost server observed for one request.
type capture struct {
	method string
	path   string
	query  map[string]string
	header http.Header
	body   []byte
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(&Config{URL: server.URL, Key: "keyid:" + testSecretHex})
	require.NoError(t, err)
	return client, server
}

func record(r *http.Request) *capture {
	data, _ := io.ReadAll(r.Body)
	query := map[string]string{}
	for k, v := range r.URL.Query() {
		query[k] = v[0]
	}
	return &capture{method: r.Method, path: r.URL.Path, query: query, header: r.Header.Clone(), body: data}
}

func TestClient_ListPostsRequestShape(t *testing.T) {
	var got *capture
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = record(r)
		_, _ = w.Write([]byte(`{"posts":[]}`))
	})

	posts, err := client.ListPosts(context.Background(), 10, "all")
	require.NoError(t, err)
	assert.Empty(t, posts)

	require.NotNil(t, got)
	assert.EqualValues(t, http.MethodGet, got.method)
	assert.EqualValues(t, "/ghost/api/v4/admin/posts/", got.path)
	assert.EqualValues(t, "html", got.query["source"])
	assert.EqualValues(t, "10", got.query["limit"])
	_, hasFilter := got.query["filter"]
	assert.False(t, hasFilter, "status=all must not add a filter")

	assert.True(t, strings.HasPrefix(got.header.Get("Authorization"), "Ghost "))
	assert.EqualValues(t, "application/json", got.header.Get("Content-Type"))
	assert.EqualValues(t, "v4", got.header.Get("Accept-Version"))
}

func TestClient_ListPostsStatusFilter(t *testing.T) {
	var got *capture
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = record(r)
		_, _ = w.Write([]byte(`{"posts":[]}`))
	})

	_, err := client.ListPosts(context.Background(), 5, "draft")
	require.NoError(t, err)
	assert.EqualValues(t, "status:draft", got.query["filter"])
	assert.EqualValues(t, "5", got.query["limit"])
}

func TestClient_UnsupportedMethodSkipsNetwork(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	for _, method := range []string{"DELETE", "delete", "PATCH", "HEAD", "OPTIONS"} {
		_, err := client.do(context.Background(), &Request{Path: "posts/", Method: method})
		var unsupported *UnsupportedMethodError
		assert.True(t, errors.As(err, &unsupported), "method %s", method)
		assert.EqualValues(t, method, unsupported.Method)
	}
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls), "no request may reach the network")
}

func TestClient_MethodCaseInsensitive(t *testing.T) {
	var got *capture
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = record(r)
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := client.do(context.Background(), &Request{Path: "site/", Method: "get"})
	require.NoError(t, err)
	assert.EqualValues(t, http.MethodGet, got.method)
}

func TestClient_InvalidKeySkipsNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client, err := NewClient(&Config{URL: server.URL, Key: "missing-separator"})
	require.NoError(t, err)

	_, err = client.ListPosts(context.Background(), 10, "all")
	assert.True(t, errors.Is(err, ErrInvalidKeyFormat))
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestClient_StatusErrorDiagnostics(t *testing.T) {
	const responseBody = `{"errors":[{"message":"Resource not found","type":"NotFoundError"}]}`
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(responseBody))
	})

	_, err := client.GetPost(context.Background(), "abc123")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.EqualValues(t, http.StatusNotFound, statusErr.StatusCode)
	assert.EqualValues(t, server.URL+"/ghost/api/v4/admin/posts/abc123/?source=html", statusErr.URL)
	assert.EqualValues(t, responseBody, statusErr.Body, "response body must be preserved verbatim")
	assert.True(t, strings.HasPrefix(statusErr.Headers.Get("Authorization"), "Ghost "))
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), responseBody)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(&Config{URL: server.URL, Key: "keyid:" + testSecretHex})
	require.NoError(t, err)
	server.Close()

	_, err = client.ListPosts(context.Background(), 10, "all")
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "expected transport error, got %v", err)
}

func TestClient_CreatePost(t *testing.T) {
	var got *capture
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = record(r)
		_, _ = w.Write([]byte(`{"posts":[{"id":"1","title":"Hello","url":"/hello/","status":"draft","created_at":"2024-01-01T00:00:00.000Z"}]}`))
	})

	created, err := client.CreatePost(context.Background(), &Post{
		Title:  "Hello",
		HTML:   "<p>hi</p>",
		Status: "draft",
		Tags:   []Tag{{Name: "news"}, {Name: "golang"}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, "1", created.ID)
	assert.EqualValues(t, "/hello/", created.URL)
	assert.EqualValues(t, "2024-01-01T00:00:00.000Z", created.CreatedAt)

	require.NotNil(t, got)
	assert.EqualValues(t, http.MethodPost, got.method)
	assert.EqualValues(t, "html", got.query["source"])

	var sent postsEnvelope
	require.NoError(t, json.Unmarshal(got.body, &sent))
	require.Len(t, sent.Posts, 1)
	assert.EqualValues(t, "Hello", sent.Posts[0].Title)
	assert.EqualValues(t, "<p>hi</p>", sent.Posts[0].HTML)
	assert.EqualValues(t, []Tag{{Name: "news"}, {Name: "golang"}}, sent.Posts[0].Tags)
}

// Update payloads must carry title, html and status even when empty, so an
// explicitly cleared field reaches the wire instead of keeping its stored
// value.
func TestClient_UpdatePostSendsEmptyValues(t *testing.T) {
	var got *capture
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = record(r)
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1","title":"","status":"draft","updated_at":"2024-03-01T12:05:00.000Z"}]}`))
	})

	_, err := client.UpdatePost(context.Background(), &Post{
		ID:        "p1",
		Title:     "",
		HTML:      "",
		Status:    "draft",
		UpdatedAt: "2024-03-01T12:00:00.000Z",
	})
	require.NoError(t, err)

	var sent struct {
		Posts []map[string]interface{} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(got.body, &sent))
	require.Len(t, sent.Posts, 1)
	update := sent.Posts[0]
	for _, key := range []string{"title", "html", "status", "updated_at"} {
		_, present := update[key]
		assert.True(t, present, "update payload must always carry %q", key)
	}
	assert.EqualValues(t, "", update["title"])
	assert.EqualValues(t, "", update["html"])
	assert.EqualValues(t, "2024-03-01T12:00:00.000Z", update["updated_at"])
}

func TestClient_EncodeErrorSkipsNetwork(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := client.do(context.Background(), &Request{
		Path:   "posts/",
		Method: http.MethodPost,
		Body:   func() {},
	})
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "got %v", err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}

func TestClient_ShapeError(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"empty posts", `{"posts":[]}`},
		{"missing posts", `{"pages":[]}`},
		{"not json", `<html>gateway error</html>`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.GetPost(context.Background(), "1")
			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr), "got %v", err)
			assert.EqualValues(t, tc.body, shapeErr.Raw)
		})
	}
}

func TestClient_CheckConnection(t *testing.T) {
	longBody := strings.Repeat("x", 700)
	var siteHits, apiHits int32
	var siteHeader, apiHeader http.Header
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ghost/":
			atomic.AddInt32(&siteHits, 1)
			siteHeader = r.Header.Clone()
			_, _ = w.Write([]byte("Ghost is running"))
		case "/ghost/api/v4/admin/site/":
			atomic.AddInt32(&apiHits, 1)
			apiHeader = r.Header.Clone()
			_, _ = w.Write([]byte(longBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	report, err := client.CheckConnection(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&siteHits))
	assert.EqualValues(t, 1, atomic.LoadInt32(&apiHits))

	assert.EqualValues(t, http.StatusOK, report.SiteStatus)
	assert.EqualValues(t, server.URL+"/ghost/", report.SiteURL)
	assert.EqualValues(t, http.StatusOK, report.APIStatus)
	assert.EqualValues(t, server.URL+"/ghost/api/v4/admin/site/", report.APIURL)
	assert.Len(t, report.APIResponse, 500, "snippet must be truncated to 500 characters")

	// The unauthenticated probe must not carry credentials; the admin probe must.
	assert.Empty(t, siteHeader.Get("Authorization"))
	assert.True(t, strings.HasPrefix(apiHeader.Get("Authorization"), "Ghost "))
	assert.True(t, strings.HasPrefix(report.HeadersSent["Authorization"], "Ghost "))
	assert.EqualValues(t, "v4", report.HeadersSent["Accept-Version"])
}

// The report snippet counts characters, not bytes, and must never cut a
// multi-byte rune in half.
func TestClient_CheckConnectionMultibyteSnippet(t *testing.T) {
	longBody := strings.Repeat("日", 600)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ghost/":
			_, _ = w.Write([]byte("Ghost is running"))
		default:
			_, _ = w.Write([]byte(longBody))
		}
	})

	report, err := client.CheckConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(report.APIResponse))
	assert.EqualValues(t, 500, utf8.RuneCountInString(report.APIResponse))
}

func TestConfig_EnvFallback(t *testing.T) {
	t.Setenv("GHOST_BASE_URL", "https://env.example.com/")
	t.Setenv("GHOST_ADMIN_API_KEY", "envid:"+testSecretHex)

	cfg := &Config{}
	cfg.Init()
	assert.EqualValues(t, "https://env.example.com", cfg.URL, "trailing slash is trimmed")
	assert.EqualValues(t, "envid:"+testSecretHex, cfg.Key)
	assert.EqualValues(t, DefaultVersion, cfg.Version)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ValidateMissing(t *testing.T) {
	t.Setenv("GHOST_BASE_URL", "")
	t.Setenv("GHOST_ADMIN_API_KEY", "")
	cfg := &Config{}
	cfg.Init()
	assert.Error(t, cfg.Validate())
}
