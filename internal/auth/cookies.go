package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// TokenCookieName is the cookie that carries the session token.
const TokenCookieName = "token"

// clearedCookieTTL keeps a logged-out placeholder around briefly.
const clearedCookieTTL = 10 * time.Second

var errNoToken = errors.New("no token in request")

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Days   int
	Secure bool // production only
}

// SetTokenCookie sets an HTTP-only token cookie expiring Days from now.
func SetTokenCookie(w http.ResponseWriter, token string, opts CookieOptions) {
	expires := time.Now().Add(time.Duration(opts.Days) * 24 * time.Hour)
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie overwrites the token cookie with a short-lived placeholder.
func ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(clearedCookieTTL),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFromRequest prefers an "Authorization: Bearer" header and falls back
// to the token cookie.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && scheme == "Bearer" && token != "" {
			return token, nil
		}
	}

	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" || cookie.Value == "none" {
		return "", errNoToken
	}
	return cookie.Value, nil
}
