package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var (
	// ErrNoToken means no bearer token is stored.
	ErrNoToken = errors.New("no token stored")
	// ErrNoUser means no profile is cached.
	ErrNoUser = errors.New("no user cached")
)

// User is the cached profile returned by the service's /api/auth/me.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store persists the bearer token and cached profile between runs.
// It is a small sqlite key/value table; the service remains the
// authority on whether the token is actually valid.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

const (
	keyToken = "token"
	keyUser  = "user"
)

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.readDB.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) put(key, value string) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Token returns the stored bearer token, or ErrNoToken.
func (s *Store) Token() (string, error) {
	tok, err := s.get(keyToken)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return tok, nil
}

func (s *Store) SetToken(token string) error {
	return s.put(keyToken, token)
}

// Clear removes both the token and the cached profile.
func (s *Store) Clear() error {
	_, err := s.writeDB.Exec("DELETE FROM session WHERE key IN (?, ?)", keyToken, keyUser)
	return err
}

// CurrentUser returns the cached profile. A value that fails to parse
// is reported as an error; callers treat that the same as no user.
func (s *Store) CurrentUser() (User, error) {
	raw, err := s.get(keyUser)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNoUser
	}
	if err != nil {
		return User{}, fmt.Errorf("reading user: %w", err)
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, fmt.Errorf("parsing cached user: %w", err)
	}
	return u, nil
}

func (s *Store) SetCurrentUser(u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	return s.put(keyUser, string(data))
}
