// Package credentials keeps the opaque backend access token and user id
// of a browser session, mirrored into a cookie for server-side route guards.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cradoe/profilegate/internal/cache"
	"github.com/google/uuid"
	"github.com/pascaldekloe/jwt"
)

const (
	SessionCookieName = "profilegate_sid"
	defaultTTL        = 24 * time.Hour
)

var (
	ErrMissingToken = errors.New("access token is required")
	ErrTokenExpired = errors.New("access token has expired")
)

type Credentials struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// FromToken builds credentials from a backend-issued token. The gateway does not
// hold the signing key, so the claims are only read for the subject and expiry;
// the backend remains the authority on validity. Tokens that are not JWTs are
// accepted as fully opaque.
func FromToken(token, userID string, now time.Time) (*Credentials, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	creds := &Credentials{AccessToken: token, UserID: userID}

	claims, err := jwt.ParseWithoutCheck([]byte(token))
	if err != nil {
		return creds, nil
	}

	if creds.UserID == "" {
		creds.UserID = claims.Subject
	}
	if claims.Expires != nil {
		creds.ExpiresAt = claims.Expires.Time()
	}
	if !claims.Valid(now) {
		return nil, ErrTokenExpired
	}

	return creds, nil
}

func (c *Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// TTL is the remaining lifetime, defaulting to a day for opaque tokens.
func (c *Credentials) TTL(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() {
		return defaultTTL
	}
	return c.ExpiresAt.Sub(now)
}

type Store interface {
	Get(ctx context.Context, sessionID string) (*Credentials, bool, error)
	Set(ctx context.Context, creds *Credentials) (string, error)
	Clear(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewRedisStore(c *cache.Cache) *RedisStore {
	return &RedisStore{cache: c, now: time.Now}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Credentials, bool, error) {
	if sessionID == "" {
		return nil, false, nil
	}

	var creds Credentials
	err := s.cache.GetJSON(ctx, sessionKey(sessionID), &creds)
	if errors.Is(err, cache.ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if creds.Expired(s.now()) {
		return nil, false, nil
	}

	return &creds, true, nil
}

// Set stores the credentials under a new session id and returns it.
func (s *RedisStore) Set(ctx context.Context, creds *Credentials) (string, error) {
	ttl := creds.TTL(s.now())
	if ttl <= 0 {
		return "", ErrTokenExpired
	}

	sessionID := uuid.NewString()
	if err := s.cache.SetJSON(ctx, sessionKey(sessionID), creds, ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	return sessionID, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.cache.Delete(ctx, sessionKey(sessionID))
}

// SetCookie mirrors the session into a cookie readable by route guards.
func SetCookie(w http.ResponseWriter, sessionID string, creds *Credentials, secure bool) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !creds.ExpiresAt.IsZero() {
		cookie.Expires = creds.ExpiresAt
	} else {
		cookie.MaxAge = int(defaultTTL.Seconds())
	}

	http.SetCookie(w, cookie)
}

func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func SessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
