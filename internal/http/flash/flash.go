// Package flash carries one-shot user messages across a redirect.
//
// Pending messages live client-side in a cookie holding an HS256-signed JWT,
// so a message set while handling a POST shows up on the page the browser is
// redirected to and is then cleared. A cookie that fails verification or has
// expired is treated as empty.
package flash

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Message categories understood by the page templates.
const (
	CategorySuccess = "success"
	CategoryError   = "error"
)

const (
	defaultCookieName = "registry_flash"
	defaultTTL        = 5 * time.Minute
)

// Message is a single flash message.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type flashClaims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

// Store reads and writes flash cookies signed with a secret key.
type Store struct {
	key        []byte
	cookieName string
	ttl        time.Duration
}

// NewStore returns a Store that signs cookies with secret.
func NewStore(secret string) *Store {
	return &Store{
		key:        []byte(secret),
		cookieName: defaultCookieName,
		ttl:        defaultTTL,
	}
}

// Add appends a message to the ones already pending on r and writes the
// updated cookie to w.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, category, text string) error {
	messages := append(s.read(r), Message{Category: category, Text: text})

	claims := flashClaims{
		Messages: messages,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return fmt.Errorf("flash: sign: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Pop returns the pending messages and clears the cookie.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if _, err := r.Cookie(s.cookieName); err != nil {
		return nil
	}

	messages := s.read(r)

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return messages
}

func (s *Store) read(r *http.Request) []Message {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var claims flashClaims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	return claims.Messages
}
