package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecoskun/newsdeck/internal/api"
	"github.com/ecoskun/newsdeck/internal/session"
)

// Result is the outcome of a login or registration attempt. Error holds
// the user-displayable message when Success is false.
type Result struct {
	Success bool
	Error   string
}

// IsAuthenticated reports whether the stored token looks usable: present
// and with an `exp` claim in the future. The claims are read without
// signature verification; this is a local heuristic to decide whether to
// show the login screen, and the server remains the authority.
func IsAuthenticated(store api.TokenSource) bool {
	tok, err := store.Token()
	if err != nil || tok == "" {
		return false
	}
	return tokenFresh(tok, time.Now())
}

func tokenFresh(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(now)
}

// Login exchanges credentials for a token, stores it, then fetches and
// caches the caller's profile. On a rejected exchange nothing is stored.
func Login(ctx context.Context, client *api.Client, store *session.Store, username, password string) Result {
	token, err := client.IssueToken(ctx, username, password)
	if err != nil {
		return Result{Error: api.UserMessage(err)}
	}
	if err := store.SetToken(token); err != nil {
		return Result{Error: err.Error()}
	}

	user, err := client.Me(ctx)
	if err != nil {
		return Result{Error: api.UserMessage(err)}
	}
	if err := store.SetCurrentUser(user); err != nil {
		return Result{Error: err.Error()}
	}

	return Result{Success: true}
}

// Register creates an account. No token is issued and nothing is stored.
func Register(ctx context.Context, client *api.Client, username, email, password string) Result {
	if err := client.Register(ctx, username, email, password); err != nil {
		return Result{Error: api.UserMessage(err)}
	}
	return Result{Success: true}
}

// Logout drops the stored token and cached profile.
func Logout(store *session.Store) error {
	return store.Clear()
}
