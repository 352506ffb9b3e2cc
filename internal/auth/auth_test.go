package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/session"
)

// makeToken builds an unsigned JWT with the given payload. The expiry
// check never verifies signatures, so a dummy one is enough.
func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	enc := base64.RawURLEncoding
	return fmt.Sprintf("%s.%s.%s",
		enc.EncodeToString(header),
		enc.EncodeToString(body),
		enc.EncodeToString([]byte("sig")))
}

func TestTokenFresh(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"future expiry", makeToken(t, map[string]any{"exp": now.Add(time.Hour).Unix()}), true},
		{"past expiry", makeToken(t, map[string]any{"exp": now.Add(-time.Hour).Unix()}), false},
		{"no exp claim", makeToken(t, map[string]any{"sub": "u"}), false},
		{"not a jwt", "just-an-opaque-string", false},
		{"two segments", "abc.def", false},
		{"garbage middle segment", "aGVhZGVy.!!!notbase64!!!.c2ln", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		if got := tokenFresh(tt.token, now); got != tt.want {
			t.Errorf("%s: tokenFresh = %v, want %v", tt.name, got, tt.want)
		}
	}
}

type tokenFunc func() (string, error)

func (f tokenFunc) Token() (string, error) { return f() }

func TestIsAuthenticated(t *testing.T) {
	missing := tokenFunc(func() (string, error) { return "", session.ErrNoToken })
	if IsAuthenticated(missing) {
		t.Error("missing token should not authenticate")
	}

	valid := makeToken(t, map[string]any{"exp": time.Now().Add(time.Hour).Unix()})
	present := tokenFunc(func() (string, error) { return valid, nil })
	if !IsAuthenticated(present) {
		t.Error("fresh token should authenticate")
	}
}

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoginStoresTokenAndProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/token", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("username") != "ayse" || r.PostForm.Get("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Incorrect username or password"}`))
			return
		}
		w.Write([]byte(`{"access_token": "issued-token"}`))
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Not authenticated"}`))
			return
		}
		w.Write([]byte(`{"id": 3, "username": "ayse", "email": "ayse@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newTestStore(t)
	client := api.New(srv.URL, time.Second, store)

	res := Login(context.Background(), client, store, "ayse", "pw")
	if !res.Success {
		t.Fatalf("login failed: %q", res.Error)
	}

	tok, err := store.Token()
	if err != nil || tok != "issued-token" {
		t.Errorf("stored token = %q, err = %v", tok, err)
	}
	user, err := store.CurrentUser()
	if err != nil || user.Username != "ayse" {
		t.Errorf("stored user = %+v, err = %v", user, err)
	}
}

func TestLoginRejectedLeavesStoreUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	client := api.New(srv.URL, time.Second, store)

	res := Login(context.Background(), client, store, "ayse", "wrong")
	if res.Success {
		t.Fatal("login should fail")
	}
	if res.Error != "Incorrect username or password" {
		t.Errorf("Error = %q, want server detail verbatim", res.Error)
	}
	if _, err := store.Token(); !errors.Is(err, session.ErrNoToken) {
		t.Errorf("store should be untouched, Token err = %v", err)
	}
}

func TestLoginConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store := newTestStore(t)
	client := api.New(srv.URL, time.Second, store)

	res := Login(context.Background(), client, store, "ayse", "pw")
	if res.Success {
		t.Fatal("login should fail")
	}
	if res.Error != "connection error: server unreachable" {
		t.Errorf("Error = %q, want the fixed connection message", res.Error)
	}
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] == "taken" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "Username already registered"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := api.New(srv.URL, time.Second, nil)

	if res := Register(context.Background(), client, "fresh", "f@example.com", "pw"); !res.Success {
		t.Errorf("register failed: %q", res.Error)
	}
	res := Register(context.Background(), client, "taken", "t@example.com", "pw")
	if res.Success || res.Error != "Username already registered" {
		t.Errorf("result = %+v", res)
	}
}

func TestLogout(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := Logout(store); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Token(); !errors.Is(err, session.ErrNoToken) {
		t.Errorf("token should be cleared, err = %v", err)
	}
}
