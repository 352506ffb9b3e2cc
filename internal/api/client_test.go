package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticTokens string

func (s staticTokens) Token() (string, error) {
	if s == "" {
		return "", errors.New("no token stored")
	}
	return string(s), nil
}

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens("tok123"))
	if _, err := c.ListArticles(context.Background()); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestNoBearerHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens(""))
	if _, err := c.ListArticles(context.Background()); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestListArticlesDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/news/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id": 1, "title": "First", "url": "https://a.example/x",
			 "meta_lang": "tr", "created_at": "2025-08-01T10:30:00"},
			{"id": 2, "title": "", "url": "https://b.example/y",
			 "publish_date": "2025-07-15T08:00:00.123456",
			 "created_at": "2025-08-02T11:00:00Z"}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens("t"))
	articles, err := c.ListArticles(context.Background())
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Title != "First" || articles[0].MetaLang != "tr" {
		t.Errorf("first article = %+v", articles[0])
	}
	if articles[0].CreatedAt.IsZero() {
		t.Error("naive ISO created_at should parse")
	}
	if articles[1].PublishDate == nil || articles[1].PublishDate.IsZero() {
		t.Error("fractional naive publish_date should parse")
	}
	if articles[0].PublishDate != nil {
		t.Error("absent publish_date should stay nil")
	}
}

func TestExtractArticlePostsURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/news/extract" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["url"] != "https://news.example/story" {
			t.Errorf("url = %q", body["url"])
		}
		w.Write([]byte(`{"id": 9, "title": "Extracted", "url": "https://news.example/story", "created_at": "2025-08-01T00:00:00"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens("t"))
	a, err := c.ExtractArticle(context.Background(), "https://news.example/story")
	if err != nil {
		t.Fatalf("ExtractArticle: %v", err)
	}
	if a.ID != 9 || a.Title != "Extracted" {
		t.Errorf("article = %+v", a)
	}
}

func TestServerDetailSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Could not extract article from URL"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens("t"))
	_, err := c.ExtractArticle(context.Background(), "https://bad.example")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Detail != "Could not extract article from URL" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
	if UserMessage(err) != "Could not extract article from URL" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
}

func TestErrorWithoutDetailGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens("t"))
	err := c.DeleteArticle(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Error() != "server returned status 500" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestTransportFailureMapsToFixedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, time.Second, staticTokens("t"))
	_, err := c.ListArticles(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
	if UserMessage(err) != "connection error: server unreachable" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
	// The underlying transport cause stays in the wrapped error so it
	// can be logged; only UserMessage flattens to the fixed string.
	if err.Error() == ErrUnreachable.Error() {
		t.Errorf("err = %q, want the transport cause attached", err)
	}
}

func TestTimelineStatsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("days"); got != "14" {
			t.Errorf("days = %q", got)
		}
		w.Write([]byte(`[{"date": "2025-08-01", "count": 3}, {"date": "2025-08-02", "count": 0}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens("t"))
	points, err := c.TimelineStats(context.Background(), 14)
	if err != nil {
		t.Fatalf("TimelineStats: %v", err)
	}
	if len(points) != 2 || points[0].Date != "2025-08-01" || points[0].Count != 3 {
		t.Errorf("points = %+v", points)
	}
}

func TestIssueTokenFormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("username") != "ayse" || r.PostForm.Get("password") != "s3cret" {
			t.Errorf("form = %v", r.PostForm)
		}
		w.Write([]byte(`{"access_token": "jwt-here"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticTokens(""))
	tok, err := c.IssueToken(context.Background(), "ayse", "s3cret")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if tok != "jwt-here" {
		t.Errorf("token = %q", tok)
	}
}
