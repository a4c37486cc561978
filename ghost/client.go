package ghost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// requestTimeout bounds every outbound call; exceeding it surfaces as a
// transport error, not a distinguishable cancellation.
const requestTimeout = 30 * time.Second

// snippetLimit caps the response excerpt included in connection reports.
const snippetLimit = 500

// Client dispatches authenticated requests against the Ghost Admin API.  It
// holds no mutable state beyond the shared http.Client, so a single instance
// may serve concurrent tool invocations.
type Client struct {
	baseURL string
	version string
	tokens  *TokenSource
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client from the supplied configuration.  The
// configuration is normalized and validated once here; request handling never
// re-reads environment state.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.Init()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		baseURL: cfg.URL,
		version: cfg.Version,
		tokens:  NewTokenSource(cfg.Key, cfg.Version),
		http:    &http.Client{Timeout: requestTimeout},
		logger:  slog.Default(),
	}, nil
}

// Version returns the Admin API version the client targets.
func (c *Client) Version() string { return c.version }

// do performs exactly one authenticated round trip and returns the raw
// response body.  Every failure mode comes back as a typed error value; the
// method gate and token minting both run before any network I/O.
func (c *Client) do(ctx context.Context, request *Request) ([]byte, error) {
	method, err := normalizeMethod(request.Method)
	if err != nil {
		return nil, err
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	target := request.resolve(c.baseURL, c.version)
	var body io.Reader
	if method != http.MethodGet && request.Body != nil {
		data, err := json.Marshal(request.Body)
		if err != nil {
			return nil, &TransportError{Err: fmt.Errorf("encode request body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header.Set("Authorization", "Ghost "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept-Version", c.version)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	c.logger.Debug("ghost api call", "method", method, "url", target, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Headers:    httpReq.Header.Clone(),
			Body:       string(data),
		}
	}
	return data, nil
}

func normalizeMethod(method string) (string, error) {
	switch strings.ToUpper(method) {
	case "", http.MethodGet:
		return http.MethodGet, nil
	case http.MethodPost:
		return http.MethodPost, nil
	case http.MethodPut:
		return http.MethodPut, nil
	}
	return "", &UnsupportedMethodError{Method: method}
}

// CreatePost publishes a new post and returns the stored representation.
func (c *Client) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	raw, err := c.do(ctx, &Request{
		Path:   "posts/",
		Method: http.MethodPost,
		Query:  sourceQuery(),
		Body:   postsEnvelope{Posts: []Post{*post}},
	})
	if err != nil {
		return nil, err
	}
	return firstPost(raw)
}

// ListPosts fetches up to limit posts, optionally filtered by status.  The
// slice preserves the order returned by the API; an empty result is not an
// error.
func (c *Client) ListPosts(ctx context.Context, limit int, status string) ([]Post, error) {
	query := sourceQuery()
	query.Set("limit", strconv.Itoa(limit))
	if status != "" && status != "all" {
		query.Set("filter", "status:"+status)
	}
	raw, err := c.do(ctx, &Request{Path: "posts/", Method: http.MethodGet, Query: query})
	if err != nil {
		return nil, err
	}
	env, err := decodePosts(raw)
	if err != nil {
		return nil, err
	}
	return env.Posts, nil
}

// GetPost reads a single post by id, including its current updated_at value.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	raw, err := c.do(ctx, &Request{
		Path:   "posts/" + url.PathEscape(id) + "/",
		Method: http.MethodGet,
		Query:  sourceQuery(),
	})
	if err != nil {
		return nil, err
	}
	return firstPost(raw)
}

// UpdatePost writes the supplied post back.  The post must carry the
// updated_at value obtained from a prior GetPost so Ghost can detect
// conflicting concurrent edits; a stale timestamp is rejected upstream and
// surfaces as a StatusError.
func (c *Client) UpdatePost(ctx context.Context, post *Post) (*Post, error) {
	raw, err := c.do(ctx, &Request{
		Path:   "posts/" + url.PathEscape(post.ID) + "/",
		Method: http.MethodPut,
		Query:  sourceQuery(),
		Body: updateEnvelope{Posts: []postUpdate{{
			Title:     post.Title,
			HTML:      post.HTML,
			Status:    post.Status,
			Tags:      post.Tags,
			UpdatedAt: post.UpdatedAt,
		}}},
	})
	if err != nil {
		return nil, err
	}
	return firstPost(raw)
}

func decodePosts(raw []byte) (*postsEnvelope, error) {
	var env postsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ShapeError{Msg: "malformed posts response", Raw: string(raw)}
	}
	if env.Posts == nil {
		return nil, &ShapeError{Msg: "response is missing the posts element", Raw: string(raw)}
	}
	return &env, nil
}

func firstPost(raw []byte) (*Post, error) {
	env, err := decodePosts(raw)
	if err != nil {
		return nil, err
	}
	if len(env.Posts) == 0 {
		return nil, &ShapeError{Msg: "response contains no post", Raw: string(raw)}
	}
	return &env.Posts[0], nil
}

// ConnectionReport summarizes the two probes performed by CheckConnection.
// APIResponse is truncated to at most 500 characters.
type ConnectionReport struct {
	SiteStatus  int               `json:"site_status"`
	SiteURL     string            `json:"site_url"`
	APIStatus   int               `json:"api_status"`
	APIURL      string            `json:"api_url"`
	APIResponse string            `json:"api_response"`
	HeadersSent map[string]string `json:"headers_sent"`
}

// CheckConnection probes the unauthenticated site root followed by the signed
// admin site endpoint.  It reports status codes rather than failing on
// non-2xx responses, so operators can tell credential problems apart from
// connectivity problems.
func (c *Client) CheckConnection(ctx context.Context) (*ConnectionReport, error) {
	siteURL := c.baseURL + "/ghost/"
	siteStatus, _, err := c.probe(ctx, siteURL, nil)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	headers := map[string]string{
		"Authorization":  "Ghost " + token,
		"Content-Type":   "application/json",
		"Accept-Version": c.version,
	}
	apiURL := (&Request{Path: "site/"}).resolve(c.baseURL, c.version)
	apiStatus, apiBody, err := c.probe(ctx, apiURL, headers)
	if err != nil {
		return nil, err
	}
	return &ConnectionReport{
		SiteStatus:  siteStatus,
		SiteURL:     siteURL,
		APIStatus:   apiStatus,
		APIURL:      apiURL,
		APIResponse: truncate(apiBody, snippetLimit),
		HeadersSent: headers,
	}, nil
}

// probe issues a plain GET and returns status and body without interpreting
// the status code.
func (c *Client) probe(ctx context.Context, target string, headers map[string]string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, "", &TransportError{Err: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", &TransportError{Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", &TransportError{Err: err}
	}
	return resp.StatusCode, string(data), nil
}

// truncate cuts after limit characters, never splitting a multi-byte rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
