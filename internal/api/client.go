package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ecoskun/newsdeck/internal/session"
)

// TokenSource supplies the bearer token attached to authenticated
// requests. *session.Store satisfies it.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the extraction service's REST API. It performs no
// retries; every recoverable failure is reported to the caller once.
type Client struct {
	base   string
	http   *resty.Client
	tokens TokenSource
}

func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   c,
		tokens: tokens,
	}
}

// do issues one request. A token, when present, is attached as a bearer
// header; requests are still attempted without one and the server
// decides. Transport failures collapse into ErrUnreachable.
func (c *Client) do(ctx context.Context, method, path string, configure func(*resty.Request), out any) error {
	req := c.http.R().SetContext(ctx)
	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok != "" {
			req.SetAuthToken(tok)
		}
	}
	if configure != nil {
		configure(req)
	}

	resp, err := req.Execute(method, c.base+path)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, path, err)
	}
	if resp.IsError() {
		return apiError(resp.StatusCode(), resp.Body())
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// IssueToken exchanges credentials for an access token. The exchange is
// form-encoded, matching the service's OAuth2 password flow.
func (c *Client) IssueToken(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/token", func(r *resty.Request) {
		r.SetFormData(map[string]string{
			"username": username,
			"password": password,
		})
	}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (session.User, error) {
	var u session.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u)
	return u, err
}

// Register creates an account. No token is issued; the caller logs in
// separately.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		})
	}, nil)
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var articles []Article
	err := c.do(ctx, http.MethodGet, "/api/news/", nil, &articles)
	return articles, err
}

// ExtractArticle submits a URL for extraction and returns the stored
// record once the service has processed it.
func (c *Client) ExtractArticle(ctx context.Context, url string) (Article, error) {
	var a Article
	err := c.do(ctx, http.MethodPost, "/api/news/extract", func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(map[string]string{"url": url})
	}, &a)
	return a, err
}

func (c *Client) GetArticle(ctx context.Context, id int64) (Article, error) {
	var a Article
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/news/%d", id), nil, &a)
	return a, err
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/news/%d", id), nil, nil)
}

func (c *Client) OverviewStats(ctx context.Context) (OverviewStats, error) {
	var stats OverviewStats
	err := c.do(ctx, http.MethodGet, "/api/analytics/stats/overview", nil, &stats)
	return stats, err
}

func (c *Client) TimelineStats(ctx context.Context, days int) ([]TimelinePoint, error) {
	var points []TimelinePoint
	err := c.do(ctx, http.MethodGet, "/api/analytics/stats/timeline", func(r *resty.Request) {
		r.SetQueryParam("days", fmt.Sprintf("%d", days))
	}, &points)
	return points, err
}

func (c *Client) DomainStats(ctx context.Context) ([]DomainCount, error) {
	var domains []DomainCount
	err := c.do(ctx, http.MethodGet, "/api/analytics/stats/domains", nil, &domains)
	return domains, err
}
